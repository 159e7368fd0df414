package client

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkpass/zkauth"
	"github.com/zkpass/zkauth/pasta"
)

func TestSecretFromPassword(t *testing.T) {
	var proto zkauth.Protocol[*big.Int, *big.Int] = zkauth.NewDiscreteLog(zkauth.DiscreteLogParams())

	a, err := SecretFromPassword(proto, "hunter2")
	require.NoError(t, err)
	b, err := SecretFromPassword(proto, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, 0, a.Cmp(b), "same password must derive the same secret")

	c, err := SecretFromPassword(proto, "hunter3")
	require.NoError(t, err)
	assert.NotEqual(t, 0, a.Cmp(c))
}

func TestSecretFromPasswordCurve(t *testing.T) {
	var proto zkauth.Protocol[*pasta.Point, *pasta.Scalar] = zkauth.NewEllipticCurve(pasta.Pallas())

	a, err := SecretFromPassword(proto, "hunter2")
	require.NoError(t, err)
	b, err := SecretFromPassword(proto, "hunter2")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.True(t, a.BigInt().Cmp(pasta.Pallas().Order()) < 0)
}

func TestSecretOrRandom(t *testing.T) {
	var proto zkauth.Protocol[*big.Int, *big.Int] = zkauth.NewDiscreteLog(zkauth.DiscreteLogParams())

	derived, err := SecretOrRandom(proto, "hunter2")
	require.NoError(t, err)
	fromPassword, err := SecretFromPassword(proto, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, 0, derived.Cmp(fromPassword))

	r1, err := SecretOrRandom(proto, "")
	require.NoError(t, err)
	r2, err := SecretOrRandom(proto, "")
	require.NoError(t, err)
	assert.NotEqual(t, 0, r1.Cmp(r2), "random secrets must differ between draws")
}
