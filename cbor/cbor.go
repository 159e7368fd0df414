// Package cbor wraps github.com/fxamacker/cbor with the encoding and
// decoding options this module relies on:
//
//  1. CBOR is encoded using Core Deterministic Encoding defined in RFC 8949,
//     so the byte representation of a value is stable across runs.
//  2. The decoder detects and rejects duplicate map keys, which matters when
//     parsing security sensitive inputs such as keystore files.
package cbor

import (
	"os"

	"github.com/fxamacker/cbor/v2"
)

const maxContainerElements = 1024 * 256

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		InfConvert:    cbor.InfConvertFloat16,
		IndefLength:   cbor.IndefLengthForbidden,
		NaNConvert:    cbor.NaNConvert7e00,
		ShortestFloat: cbor.ShortestFloat16,
		Sort:          cbor.SortCoreDeterministic,
		TagsMd:        cbor.TagsForbidden,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		IndefLength:      cbor.IndefLengthForbidden,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: maxContainerElements,
		MaxMapPairs:      maxContainerElements,
		TagsMd:           cbor.TagsForbidden,
		TimeTag:          cbor.DecTagIgnored,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes src into a CBOR-encoded byte slice.
func Marshal(src interface{}) ([]byte, error) {
	return encMode.Marshal(src)
}

// Unmarshal decodes CBOR in data into dst.
func Unmarshal(data []byte, dst interface{}) error {
	return decMode.Unmarshal(data, dst)
}

// WriteFile marshals src and writes it to path with owner-only permissions.
func WriteFile(path string, src interface{}) error {
	bts, err := Marshal(src)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bts, 0o600)
}

// ReadFile reads path and unmarshals its contents into dst.
func ReadFile(path string, dst interface{}) error {
	bts, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Unmarshal(bts, dst)
}
