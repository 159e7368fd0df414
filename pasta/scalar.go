package pasta

import (
	"math/big"

	"github.com/go-errors/errors"

	"github.com/zkpass/zkauth/internal/common"
)

// ScalarBytesLen is the length of the canonical scalar encoding.
const ScalarBytesLen = 32

// scalarWideLen bounds the input of ScalarFromUniformBytes; longer buffers
// are truncated before the wide reduction.
const scalarWideLen = 64

// Scalar is an element of a curve's scalar field, always reduced modulo the
// group order. Scalars are immutable; operations return fresh values.
type Scalar struct {
	c *Curve
	v *big.Int
}

// NewScalar returns the scalar with the given small value.
func (c *Curve) NewScalar(v uint64) *Scalar {
	return &Scalar{c: c, v: new(big.Int).SetUint64(v)}
}

// RandomScalar draws a uniformly random field element.
func (c *Curve) RandomScalar() *Scalar {
	return &Scalar{c: c, v: common.FastRandomBigInt(c.q)}
}

// ScalarFromBigInt reduces v modulo the group order.
func (c *Curve) ScalarFromBigInt(v *big.Int) *Scalar {
	return &Scalar{c: c, v: new(big.Int).Mod(v, c.q)}
}

// ScalarFromUniformBytes maps an arbitrary byte string onto the field by
// zero-padding it to 64 bytes, reading it little-endian and reducing modulo
// the order. The mapping is total, so hashed or caller-supplied byte strings
// of any length always yield a valid scalar; bytes beyond the 64th are
// ignored.
func (c *Curve) ScalarFromUniformBytes(data []byte) *Scalar {
	wide := make([]byte, scalarWideLen)
	copy(wide, data)
	v := setLittleEndian(wide)
	return &Scalar{c: c, v: v.Mod(v, c.q)}
}

// DecodeScalar parses the strict canonical 32-byte little-endian encoding,
// rejecting values at or above the group order.
func (c *Curve) DecodeScalar(data []byte) (*Scalar, error) {
	if len(data) != ScalarBytesLen {
		return nil, errors.Errorf("%s: scalar encoding must be exactly %d bytes", c.name, ScalarBytesLen)
	}
	v := setLittleEndian(data)
	if v.Cmp(c.q) >= 0 {
		return nil, errors.Errorf("%s: scalar not reduced", c.name)
	}
	return &Scalar{c: c, v: v}, nil
}

func (s *Scalar) Curve() *Curve { return s.c }

// Bytes returns the canonical 32-byte little-endian encoding.
func (s *Scalar) Bytes() []byte {
	out := make([]byte, ScalarBytesLen)
	fillLittleEndian(out, s.v)
	return out
}

// BigInt returns a copy of the scalar value.
func (s *Scalar) BigInt() *big.Int { return new(big.Int).Set(s.v) }

func (s *Scalar) checkCurve(other *Scalar) {
	if s.c != other.c {
		panic("pasta: mixed scalars of different curves")
	}
}

// Add returns s + other in the scalar field.
func (s *Scalar) Add(other *Scalar) *Scalar {
	s.checkCurve(other)
	v := new(big.Int).Add(s.v, other.v)
	return &Scalar{c: s.c, v: v.Mod(v, s.c.q)}
}

// Mul returns s * other in the scalar field.
func (s *Scalar) Mul(other *Scalar) *Scalar {
	s.checkCurve(other)
	v := new(big.Int).Mul(s.v, other.v)
	return &Scalar{c: s.c, v: v.Mod(v, s.c.q)}
}

func (s *Scalar) Equal(other *Scalar) bool {
	return s.c == other.c && s.v.Cmp(other.v) == 0
}
