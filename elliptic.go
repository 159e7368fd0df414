package zkauth

import (
	"fmt"

	"github.com/go-errors/errors"

	"github.com/zkpass/zkauth/pasta"
)

// EllipticCurve realizes the protocol over the point group of one of the two
// Pasta curves. Exponentiation becomes scalar multiplication and the
// response arithmetic happens in the curve's scalar field, which handles
// wraparound natively; no signed-residue juggling is needed.
//
// The shared GroupParams shape requires modulus and order slots even though
// the curve order is implicit in the scalar field, so P and Q are degenerate
// identity points.
type EllipticCurve struct {
	curve  *pasta.Curve
	params *GroupParams[*pasta.Point]
}

var _ Protocol[*pasta.Point, *pasta.Scalar] = (*EllipticCurve)(nil)

// NewEllipticCurve builds the realization for the given curve, with the
// standard base point as g and the curve's derived second generator as h.
func NewEllipticCurve(curve *pasta.Curve) *EllipticCurve {
	return &EllipticCurve{
		curve: curve,
		params: &GroupParams[*pasta.Point]{
			G: curve.Generator(),
			H: curve.AltGenerator(),
			P: curve.Identity(),
			Q: curve.Identity(),
		},
	}
}

func (ec *EllipticCurve) Params() *GroupParams[*pasta.Point] { return ec.params }

func (ec *EllipticCurve) Elements() Codec[*pasta.Point] { return pointCodec{ec.curve} }

func (ec *EllipticCurve) Scalars() Codec[*pasta.Scalar] { return curveScalarCodec{ec.curve} }

func (ec *EllipticCurve) Commitment(x *pasta.Scalar) (*CommitParams[*pasta.Point], *pasta.Scalar, error) {
	k := ec.curve.RandomScalar()
	cp := &CommitParams[*pasta.Point]{
		Y1: ec.params.G.ScalarMul(x),
		Y2: ec.params.H.ScalarMul(x),
		R1: ec.params.G.ScalarMul(k),
		R2: ec.params.H.ScalarMul(k),
	}
	return cp, k, nil
}

func (ec *EllipticCurve) Challenge() (*pasta.Scalar, error) {
	return ec.curve.RandomScalar(), nil
}

// ChallengeResponse computes s = k + c*x in the scalar field.
func (ec *EllipticCurve) ChallengeResponse(k, c, x *pasta.Scalar) *pasta.Scalar {
	return k.Add(c.Mul(x))
}

// Verify checks g*s == r1 + y1*c and h*s == r2 + y2*c.
func (ec *EllipticCurve) Verify(s, c *pasta.Scalar, cp *CommitParams[*pasta.Point]) bool {
	lhs1 := ec.params.G.ScalarMul(s)
	rhs1 := cp.R1.Add(cp.Y1.ScalarMul(c))
	if !lhs1.Equal(rhs1) {
		return false
	}
	lhs2 := ec.params.H.ScalarMul(s)
	rhs2 := cp.R2.Add(cp.Y2.ScalarMul(c))
	return lhs2.Equal(rhs2)
}

// pointCodec encodes curve points in their fixed 32-byte compressed form.
// Decode rejects buffers of any other length and bytes that name no point on
// the curve.
type pointCodec struct {
	curve *pasta.Curve
}

func (pc pointCodec) Encode(v *pasta.Point) []byte { return v.Bytes() }

func (pc pointCodec) Decode(data []byte) (*pasta.Point, error) {
	pt, err := pc.curve.DecodePoint(data)
	if err != nil {
		return nil, errors.Wrap(fmt.Errorf("%w: %w", ErrDecode, err), 0)
	}
	return pt, nil
}

func (pc pointCodec) Random() (*pasta.Point, error) {
	return pc.curve.Generator().ScalarMul(pc.curve.RandomScalar()), nil
}

// curveScalarCodec encodes scalars as 32 little-endian bytes. Decode is
// total: any buffer is zero-padded to 64 bytes and reduced onto the field,
// so hashed secrets of arbitrary digest size always map to a valid scalar.
type curveScalarCodec struct {
	curve *pasta.Curve
}

func (sc curveScalarCodec) Encode(v *pasta.Scalar) []byte { return v.Bytes() }

func (sc curveScalarCodec) Decode(data []byte) (*pasta.Scalar, error) {
	return sc.curve.ScalarFromUniformBytes(data), nil
}

func (sc curveScalarCodec) Random() (*pasta.Scalar, error) {
	return sc.curve.RandomScalar(), nil
}
