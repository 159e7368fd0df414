package pasta

import (
	"fmt"
	"math/big"

	"github.com/go-errors/errors"
)

// PointBytesLen is the length of the canonical compressed point encoding.
const PointBytesLen = 32

var (
	ErrPointBytesLen = errors.New("point encoding must be exactly 32 bytes")
	ErrNotOnCurve    = errors.New("bytes do not encode a point on the curve")
)

// Point is a point on one of the Pasta curves, in affine coordinates, or the
// point at infinity. Points are immutable; all operations return fresh
// values. Mixing points of different curves in one operation is a
// programming error and panics.
type Point struct {
	c    *Curve
	x, y *big.Int
	inf  bool
}

func (pt *Point) clone() *Point {
	if pt.inf {
		return &Point{c: pt.c, inf: true}
	}
	return &Point{c: pt.c, x: new(big.Int).Set(pt.x), y: new(big.Int).Set(pt.y)}
}

func (pt *Point) Curve() *Curve { return pt.c }

// X returns a copy of the affine x coordinate; nil for the identity.
func (pt *Point) X() *big.Int {
	if pt.inf {
		return nil
	}
	return new(big.Int).Set(pt.x)
}

// Y returns a copy of the affine y coordinate; nil for the identity.
func (pt *Point) Y() *big.Int {
	if pt.inf {
		return nil
	}
	return new(big.Int).Set(pt.y)
}

func (pt *Point) IsIdentity() bool { return pt.inf }

func (pt *Point) Equal(other *Point) bool {
	if pt.c != other.c {
		return false
	}
	if pt.inf || other.inf {
		return pt.inf == other.inf
	}
	return pt.x.Cmp(other.x) == 0 && pt.y.Cmp(other.y) == 0
}

func (pt *Point) checkCurve(other *Point) {
	if pt.c != other.c {
		panic("pasta: mixed points of different curves")
	}
}

// Add returns pt + other.
func (pt *Point) Add(other *Point) *Point {
	pt.checkCurve(other)
	if pt.inf {
		return other.clone()
	}
	if other.inf {
		return pt.clone()
	}
	p := pt.c.p
	if pt.x.Cmp(other.x) == 0 {
		// Either a doubling or two opposite points summing to infinity.
		if pt.y.Cmp(other.y) != 0 {
			return pt.c.Identity()
		}
		return pt.double()
	}

	// lambda = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(other.y, pt.y)
	den := new(big.Int).Sub(other.x, pt.x)
	den.ModInverse(den, p)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, p)

	return pt.c.chord(lambda, pt, other)
}

func (pt *Point) double() *Point {
	if pt.inf || pt.y.Sign() == 0 {
		return pt.c.Identity()
	}
	p := pt.c.p

	// lambda = 3x² / 2y (the a-coefficient of both Pasta curves is zero)
	num := new(big.Int).Mul(pt.x, pt.x)
	num.Mul(num, big.NewInt(3))
	den := new(big.Int).Lsh(pt.y, 1)
	den.ModInverse(den, p)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, p)

	return pt.c.chord(lambda, pt, pt)
}

// chord completes the chord-and-tangent rule for a given slope lambda:
// x3 = lambda² - x1 - x2, y3 = lambda(x1 - x3) - y1.
func (c *Curve) chord(lambda *big.Int, p1, p2 *Point) *Point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p1.x)
	x3.Sub(x3, p2.x)
	x3.Mod(x3, c.p)

	y3 := new(big.Int).Sub(p1.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p1.y)
	y3.Mod(y3, c.p)

	return &Point{c: c, x: x3, y: y3}
}

// Neg returns -pt.
func (pt *Point) Neg() *Point {
	if pt.inf {
		return pt.c.Identity()
	}
	y := new(big.Int).Sub(pt.c.p, pt.y)
	y.Mod(y, pt.c.p)
	return &Point{c: pt.c, x: new(big.Int).Set(pt.x), y: y}
}

// ScalarMul returns s*pt, computed by plain double-and-add.
func (pt *Point) ScalarMul(s *Scalar) *Point {
	if pt.c != s.c {
		panic("pasta: scalar of different curve")
	}
	acc := pt.c.Identity()
	if pt.inf || s.v.Sign() == 0 {
		return acc
	}
	for i := s.v.BitLen() - 1; i >= 0; i-- {
		acc = acc.double()
		if s.v.Bit(i) == 1 {
			acc = acc.Add(pt)
		}
	}
	return acc
}

// Bytes returns the canonical 32-byte encoding: x in little-endian order
// with the parity of y in the most significant bit, and all zeros for the
// identity.
func (pt *Point) Bytes() []byte {
	out := make([]byte, PointBytesLen)
	if pt.inf {
		return out
	}
	fillLittleEndian(out, pt.x)
	out[31] |= byte(pt.y.Bit(0)) << 7
	return out
}

// DecodePoint parses the canonical 32-byte encoding, recomputing y from x by
// taking the square root of x³ + 5 and matching the stored parity. It fails
// if the input is not exactly 32 bytes, if x is not a field element, or if
// x³ + 5 has no square root (so the bytes name no point on the curve).
func (c *Curve) DecodePoint(data []byte) (*Point, error) {
	if len(data) != PointBytesLen {
		return nil, errors.Wrap(fmt.Errorf("%s: %w", c.name, ErrPointBytesLen), 0)
	}
	sign := data[31] >> 7
	buf := make([]byte, PointBytesLen)
	copy(buf, data)
	buf[31] &= 0x7f

	x := setLittleEndian(buf)
	if x.Sign() == 0 && sign == 0 && isAllZero(buf) {
		return c.Identity(), nil
	}
	if x.Cmp(c.p) >= 0 {
		return nil, errors.Wrap(fmt.Errorf("%s: %w", c.name, ErrNotOnCurve), 0)
	}

	// y² = x³ + b
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, c.b)
	rhs.Mod(rhs, c.p)

	y := new(big.Int).ModSqrt(rhs, c.p)
	if y == nil {
		return nil, errors.Wrap(fmt.Errorf("%s: %w", c.name, ErrNotOnCurve), 0)
	}
	if uint(sign) != y.Bit(0) {
		y.Sub(c.p, y)
	}
	return &Point{c: c, x: x, y: y}, nil
}

func fillLittleEndian(dst []byte, v *big.Int) {
	be := v.Bytes()
	for i, b := range be {
		dst[len(be)-1-i] = b
	}
}

func setLittleEndian(src []byte) *big.Int {
	be := make([]byte, len(src))
	for i, b := range src {
		be[len(src)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

func isAllZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
