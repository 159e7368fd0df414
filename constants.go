package zkauth

import (
	"math/big"

	"github.com/zkpass/zkauth/pasta"
)

// The discrete-log flavor uses the 1024-bit MODP group with a 160-bit prime
// order subgroup from RFC 5114 section 2.1. The second generator h is
// derived from g by a fixed, transparently chosen public exponent, so both
// sides reconstruct the same h from the group constants alone. The equality
// relation proven here does not require h's discrete log to be secret.
const (
	dlogPHex = "B10B8F96A080E01DDE92DE5EAE5D54EC52C99FBCFB06A3C69A6A9DCA52D23B61" +
		"6073E28675A23D189838EF1E2EE652C013ECB4AEA906112324975C3CD49B83BF" +
		"ACCBDD7D90C4BD7098488E9C219A73724EFFD6FAE5644738FAA31A4FF55BCCC0" +
		"A151AF5F0DC8B4BD45BF37DF365C1A65E68CFDA76D4DA708DF1FB2BC2E4A4371"
	dlogQHex = "F518AA8781A8DF278ABA4E7D64B7CB9D49462353"
	dlogGHex = "A4D1CBD5C3FD34126765A442EFB99905F8104DD258AC507FD6406CFF14266D31" +
		"266FEA1E5C41564B777E690F5504F213160217B4B01B886A5E91547F9E2749F4" +
		"D7FBD7D3B9A92EE1909D0D2263F80A76A6A24C087A091F531DBF0A0169B6A28A" +
		"D662A4D18E73AFA32D779D5918D08BC8858F4DCEF97C2A24855E6EEB22B3B2E5"

	hDeriveExp = 0x5A6B4175746847 // "ZkAuthG"
)

var dlogParams *GroupParams[*big.Int]

func init() {
	p := mustParseHex(dlogPHex)
	g := mustParseHex(dlogGHex)
	dlogParams = &GroupParams[*big.Int]{
		G: g,
		H: new(big.Int).Exp(g, big.NewInt(hDeriveExp), p),
		P: p,
		Q: mustParseHex(dlogQHex),
	}
}

func mustParseHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("zkauth: invalid group parameter literal")
	}
	return v
}

// DiscreteLogParams returns the process-wide discrete-log group parameters.
// The returned value is shared and must not be mutated.
func DiscreteLogParams() *GroupParams[*big.Int] {
	return dlogParams
}

// CurveByName maps a CurveName onto its pasta.Curve instance.
func CurveByName(name CurveName) *pasta.Curve {
	switch name {
	case CurveVesta:
		return pasta.Vesta()
	default:
		return pasta.Pallas()
	}
}
