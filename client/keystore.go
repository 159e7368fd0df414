package client

import (
	"os"

	"github.com/go-errors/errors"

	"github.com/zkpass/zkauth"
	"github.com/zkpass/zkauth/cbor"
)

// keystoreFile is the on-disk form of a generated secret, bound to the
// realization it was drawn for so it is never replayed against another
// group.
type keystoreFile struct {
	Flavor string `cbor:"flavor"`
	Curve  string `cbor:"curve,omitempty"`
	Secret []byte `cbor:"secret"`
}

// SaveSecret persists a secret to path so a later run can authenticate with
// the same identity. The file is written with owner-only permissions.
func SaveSecret[E, S any](path string, proto zkauth.Protocol[E, S], flavor zkauth.Flavor, curve zkauth.CurveName, x S) error {
	ks := keystoreFile{
		Flavor: string(flavor),
		Secret: proto.Scalars().Encode(x),
	}
	if flavor == zkauth.FlavorEllipticCurve {
		ks.Curve = string(curve)
	}
	return cbor.WriteFile(path, &ks)
}

// LoadSecret reads a secret previously written by SaveSecret. It reports ok
// as false, with no error, when no keystore exists at path; a keystore
// written for a different flavor or curve is an error.
func LoadSecret[E, S any](path string, proto zkauth.Protocol[E, S], flavor zkauth.Flavor, curve zkauth.CurveName) (S, bool, error) {
	var zero S
	var ks keystoreFile
	if err := cbor.ReadFile(path, &ks); err != nil {
		if os.IsNotExist(err) {
			return zero, false, nil
		}
		return zero, false, errors.WrapPrefix(err, "keystore", 0)
	}
	if ks.Flavor != string(flavor) {
		return zero, false, errors.Errorf("keystore %s was written for flavor %s", path, ks.Flavor)
	}
	if flavor == zkauth.FlavorEllipticCurve && ks.Curve != string(curve) {
		return zero, false, errors.Errorf("keystore %s was written for curve %s", path, ks.Curve)
	}
	x, err := proto.Scalars().Decode(ks.Secret)
	if err != nil {
		return zero, false, errors.WrapPrefix(err, "keystore secret", 0)
	}
	return x, true, nil
}
