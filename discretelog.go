package zkauth

import (
	"fmt"
	"math/big"

	"github.com/bwesterb/go-exptable"
	"github.com/go-errors/errors"

	"github.com/zkpass/zkauth/internal/common"
)

// DiscreteLog realizes the protocol over the multiplicative group of
// integers modulo the prime P, with generators G and H of the subgroup of
// prime order Q. Group elements and scalars share the big.Int
// representation; encoding is variable-length big-endian bytes.
type DiscreteLog struct {
	params *GroupParams[*big.Int]

	// Precomputed fixed-base tables for the two generators. Exponentiations
	// with any other base fall back to big.Int.Exp.
	gTable exptable.Table
	hTable exptable.Table
}

var (
	_ Protocol[*big.Int, *big.Int] = (*DiscreteLog)(nil)

	bigOne = big.NewInt(1)
)

// NewDiscreteLog builds the realization for the given parameters,
// precomputing the exponentiation tables for g and h.
func NewDiscreteLog(params *GroupParams[*big.Int]) *DiscreteLog {
	dl := &DiscreteLog{params: params}
	dl.gTable.Compute(params.G, params.P, 7)
	dl.hTable.Compute(params.H, params.P, 7)
	return dl
}

func (dl *DiscreteLog) Params() *GroupParams[*big.Int] { return dl.params }

func (dl *DiscreteLog) Elements() Codec[*big.Int] { return bigIntCodec{} }

func (dl *DiscreteLog) Scalars() Codec[*big.Int] { return bigIntCodec{} }

// expG computes g^x mod p, through the fixed-base table when x is within its
// range.
func (dl *DiscreteLog) expG(x *big.Int) *big.Int {
	return dl.exp(&dl.gTable, dl.params.G, x)
}

func (dl *DiscreteLog) expH(x *big.Int) *big.Int {
	return dl.exp(&dl.hTable, dl.params.H, x)
}

func (dl *DiscreteLog) exp(table *exptable.Table, base, x *big.Int) *big.Int {
	ret := new(big.Int)
	if x.Sign() >= 0 && x.Cmp(dl.params.P) < 0 {
		table.Exp(ret, x)
		return ret
	}
	return ret.Exp(base, x, dl.params.P)
}

func (dl *DiscreteLog) Commitment(x *big.Int) (*CommitParams[*big.Int], *big.Int, error) {
	k := common.FastRandomBigInt(dl.params.P)
	cp := &CommitParams[*big.Int]{
		Y1: dl.expG(x),
		Y2: dl.expH(x),
		R1: dl.expG(k),
		R2: dl.expH(k),
	}
	return cp, k, nil
}

func (dl *DiscreteLog) Challenge() (*big.Int, error) {
	return common.FastRandomBigInt(dl.params.P), nil
}

// ChallengeResponse computes s = (k - c*x) mod q. big.Int residues are kept
// non-negative throughout: when c*x exceeds k the subtraction is flipped and
// the result taken off q instead of reducing a negative value.
func (dl *DiscreteLog) ChallengeResponse(k, c, x *big.Int) *big.Int {
	cx := new(big.Int).Mul(c, x)
	if k.Cmp(cx) >= 0 {
		s := new(big.Int).Sub(k, cx)
		return s.Mod(s, dl.params.Q)
	}
	s := cx.Sub(cx, k)
	s.Mod(s, dl.params.Q)
	return s.Sub(dl.params.Q, s)
}

// Verify checks g^s * y1^(p-c-1) == r1 mod p and the twin relation for h,
// y2, r2. The exponent p-c-1 folds the subtraction of c into a non-negative
// exponent and is equivalent to checking g^s == r1 * y1^c.
func (dl *DiscreteLog) Verify(s, c *big.Int, cp *CommitParams[*big.Int]) bool {
	p := dl.params.P
	e := new(big.Int).Sub(p, c)
	e.Sub(e, bigOne)

	lhs1 := dl.expG(s)
	rhs1 := new(big.Int).Exp(cp.Y1, e, p)
	rhs1.Mul(rhs1, cp.R1).Mod(rhs1, p)

	lhs2 := dl.expH(s)
	rhs2 := new(big.Int).Exp(cp.Y2, e, p)
	rhs2.Mul(rhs2, cp.R2).Mod(rhs2, p)

	return lhs1.Cmp(rhs1) == 0 && lhs2.Cmp(rhs2) == 0
}

// bigIntCodec encodes big.Int group elements and scalars as variable-length
// big-endian bytes. Every byte string decodes to a valid non-negative
// integer, so Decode is total; Random draws a fresh 256-bit value.
type bigIntCodec struct{}

func (bigIntCodec) Encode(v *big.Int) []byte { return v.Bytes() }

func (bigIntCodec) Decode(data []byte) (*big.Int, error) {
	if data == nil {
		return nil, errors.Wrap(fmt.Errorf("nil big integer encoding: %w", ErrDecode), 0)
	}
	return new(big.Int).SetBytes(data), nil
}

func (bigIntCodec) Random() (*big.Int, error) {
	return new(big.Int).SetBytes(common.FastRandomBytes(32)), nil
}
