// Package pasta implements the Pallas and Vesta elliptic curves, the
// mutually-dual "Pasta" cycle designed for Zcash's Halo 2. Both curves have
// the short Weierstrass form y² = x³ + 5; the base field of each curve is
// the scalar field of the other. Points use the canonical 32-byte compressed
// encoding: the x coordinate in little-endian byte order with the parity of
// y stored in the top bit, and the identity encoded as all zeros.
//
// No mainstream Go crypto library ships these curves, so the group and field
// arithmetic is implemented here directly over math/big.
package pasta

import (
	"crypto/sha256"
	"math/big"
)

// Curve describes one of the two Pasta curves. The two instances are
// process-wide constants; use Pallas() or Vesta() to obtain them.
type Curve struct {
	name   string
	p      *big.Int // base field modulus
	q      *big.Int // scalar field modulus, the group order
	b      *big.Int // constant term of y² = x³ + b
	gen    *Point
	altGen *Point
}

var (
	pallasP, _ = new(big.Int).SetString("40000000000000000000000000000000224698fc094cf91b992d30ed00000001", 16)
	vestaP, _  = new(big.Int).SetString("40000000000000000000000000000000224698fc0994a8dd8c46eb2100000001", 16)

	pallas, vesta *Curve
)

func init() {
	pallas = newCurve("pallas", pallasP, vestaP)
	vesta = newCurve("vesta", vestaP, pallasP)
}

func newCurve(name string, p, q *big.Int) *Curve {
	c := &Curve{
		name: name,
		p:    p,
		q:    q,
		b:    big.NewInt(5),
	}
	// The standard generator of both Pasta curves is (-1, 2):
	// (-1)³ + 5 = 4 = 2².
	c.gen = &Point{
		c: c,
		x: new(big.Int).Sub(p, big.NewInt(1)),
		y: big.NewInt(2),
	}
	// Second generator, transparently derived by hashing a fixed domain
	// tag onto the scalar field. The derivation scalar is public; the
	// two-generator equality relation only needs h to be fixed.
	sum := sha256.Sum256([]byte("zkauth/pasta: generator H: " + name))
	c.altGen = c.gen.ScalarMul(c.ScalarFromUniformBytes(sum[:]))
	return c
}

// Pallas returns the Pallas curve.
func Pallas() *Curve { return pallas }

// Vesta returns the Vesta curve.
func Vesta() *Curve { return vesta }

func (c *Curve) Name() string { return c.name }

// Generator returns the base point (-1, 2).
func (c *Curve) Generator() *Point { return c.gen.clone() }

// AltGenerator returns the derived second generator used as h in the
// two-generator Chaum-Pedersen relation.
func (c *Curve) AltGenerator() *Point { return c.altGen.clone() }

// Identity returns the point at infinity.
func (c *Curve) Identity() *Point { return &Point{c: c, inf: true} }

// Order returns a copy of the group order, i.e. the scalar field modulus.
func (c *Curve) Order() *big.Int { return new(big.Int).Set(c.q) }
