package pasta

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bothCurves() map[string]*Curve {
	return map[string]*Curve{"pallas": Pallas(), "vesta": Vesta()}
}

func onCurve(c *Curve, pt *Point) bool {
	if pt.IsIdentity() {
		return true
	}
	x, y := pt.X(), pt.Y()
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, c.p)
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, c.b)
	rhs.Mod(rhs, c.p)
	return lhs.Cmp(rhs) == 0
}

func TestGenerators(t *testing.T) {
	for name, c := range bothCurves() {
		t.Run(name, func(t *testing.T) {
			g := c.Generator()
			assert.True(t, onCurve(c, g), "base point not on curve")
			assert.Equal(t, 0, g.X().Cmp(new(big.Int).Sub(c.p, big.NewInt(1))), "base point x must be -1")
			assert.Equal(t, 0, g.Y().Cmp(big.NewInt(2)), "base point y must be 2")

			h := c.AltGenerator()
			assert.True(t, onCurve(c, h))
			assert.False(t, h.IsIdentity())
			assert.False(t, h.Equal(g))
			assert.True(t, h.Equal(c.AltGenerator()), "derived generator must be deterministic")

			// g has order q: (q-1)*g = -g.
			qMinusOne := c.ScalarFromBigInt(new(big.Int).Sub(c.Order(), big.NewInt(1)))
			assert.True(t, g.ScalarMul(qMinusOne).Equal(g.Neg()))
		})
	}
}

func TestGroupLaws(t *testing.T) {
	for name, c := range bothCurves() {
		t.Run(name, func(t *testing.T) {
			g := c.Generator()

			assert.True(t, g.Add(c.Identity()).Equal(g))
			assert.True(t, c.Identity().Add(g).Equal(g))
			assert.True(t, g.Add(g.Neg()).IsIdentity())

			two := g.Add(g)
			assert.True(t, onCurve(c, two))
			assert.True(t, two.Equal(g.ScalarMul(c.NewScalar(2))))
			assert.True(t, two.Add(g).Equal(g.ScalarMul(c.NewScalar(3))))

			a := c.RandomScalar()
			b := c.RandomScalar()
			left := g.ScalarMul(a.Add(b))
			right := g.ScalarMul(a).Add(g.ScalarMul(b))
			assert.True(t, left.Equal(right), "(a+b)*g != a*g + b*g")

			assert.True(t, g.ScalarMul(c.NewScalar(0)).IsIdentity())
		})
	}
}

func TestPointEncoding(t *testing.T) {
	for name, c := range bothCurves() {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 8; i++ {
				pt := c.Generator().ScalarMul(c.RandomScalar())
				enc := pt.Bytes()
				require.Len(t, enc, PointBytesLen)
				got, err := c.DecodePoint(enc)
				require.NoError(t, err)
				assert.True(t, got.Equal(pt), "round trip changed the point")
			}

			// Both parities must survive a round trip.
			pt := c.Generator()
			for _, q := range []*Point{pt, pt.Neg()} {
				got, err := c.DecodePoint(q.Bytes())
				require.NoError(t, err)
				assert.True(t, got.Equal(q))
			}

			id, err := c.DecodePoint(make([]byte, PointBytesLen))
			require.NoError(t, err)
			assert.True(t, id.IsIdentity())
			assert.Equal(t, make([]byte, PointBytesLen), c.Identity().Bytes())
		})
	}
}

func TestDecodePointRejects(t *testing.T) {
	c := Pallas()

	for _, n := range []int{0, 1, 31, 33, 64} {
		_, err := c.DecodePoint(make([]byte, n))
		assert.ErrorIs(t, err, ErrPointBytesLen, "length %d accepted", n)
	}

	// An x coordinate at or above the field modulus is rejected even when
	// x³ + 5 would have a root after reduction.
	buf := make([]byte, PointBytesLen)
	fillLittleEndian(buf, c.p)
	_, err := c.DecodePoint(buf)
	assert.ErrorIs(t, err, ErrNotOnCurve)

	// Roughly half of all field elements are not the x coordinate of any
	// point; scanning a few small ones must hit at least one.
	rejected := false
	for x := int64(0); x < 32 && !rejected; x++ {
		buf := make([]byte, PointBytesLen)
		fillLittleEndian(buf, big.NewInt(x))
		if _, err := c.DecodePoint(buf); err != nil {
			assert.ErrorIs(t, err, ErrNotOnCurve)
			rejected = true
		}
	}
	assert.True(t, rejected, "no off-curve x rejected")
}

func TestScalars(t *testing.T) {
	for name, c := range bothCurves() {
		t.Run(name, func(t *testing.T) {
			s := c.RandomScalar()
			assert.True(t, s.BigInt().Cmp(c.Order()) < 0)

			got, err := c.DecodeScalar(s.Bytes())
			require.NoError(t, err)
			assert.True(t, got.Equal(s))

			_, err = c.DecodeScalar(make([]byte, ScalarBytesLen-1))
			assert.Error(t, err)

			// The canonical encoding of the order itself is not reduced.
			buf := make([]byte, ScalarBytesLen)
			fillLittleEndian(buf, c.Order())
			_, err = c.DecodeScalar(buf)
			assert.Error(t, err)
		})
	}
}

func TestScalarFromUniformBytes(t *testing.T) {
	c := Vesta()

	wide := make([]byte, 64)
	for i := range wide {
		wide[i] = 0xff
	}
	s := c.ScalarFromUniformBytes(wide)
	assert.True(t, s.BigInt().Cmp(c.Order()) < 0)

	// Short input zero-pads, so a canonical encoding maps to itself.
	orig := c.RandomScalar()
	assert.True(t, c.ScalarFromUniformBytes(orig.Bytes()).Equal(orig))

	assert.True(t, c.ScalarFromUniformBytes(nil).BigInt().Sign() == 0)
}

func TestScalarArithmetic(t *testing.T) {
	c := Pallas()

	a := c.RandomScalar()
	b := c.RandomScalar()
	assert.True(t, a.Add(b).Equal(b.Add(a)))
	assert.True(t, a.Mul(b).Equal(b.Mul(a)))
	assert.True(t, a.Mul(c.NewScalar(1)).Equal(a))
	assert.True(t, a.Add(c.NewScalar(0)).Equal(a))

	// a + (q-1)*a = q*a = 0, exercising reduction.
	qMinusOne := c.ScalarFromBigInt(new(big.Int).Sub(c.Order(), big.NewInt(1)))
	assert.True(t, a.Add(qMinusOne.Mul(a)).BigInt().Sign() == 0)
}

func TestCurvesAreDistinct(t *testing.T) {
	assert.NotEqual(t, 0, Pallas().Order().Cmp(Vesta().Order()))
	// The cycle property: each curve's base field is the other's scalar field.
	assert.Equal(t, 0, Pallas().p.Cmp(Vesta().Order()))
	assert.Equal(t, 0, Vesta().p.Cmp(Pallas().Order()))
}
