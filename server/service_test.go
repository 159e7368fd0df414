package server

import (
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/zkpass/zkauth"
	"github.com/zkpass/zkauth/pasta"
)

func newDlogService() (*AuthService[*big.Int, *big.Int], zkauth.Protocol[*big.Int, *big.Int]) {
	proto := zkauth.NewDiscreteLog(zkauth.DiscreteLogParams())
	return NewAuthService[*big.Int, *big.Int](proto, NewInMemoryUserStore[*big.Int, *big.Int]()), proto
}

func newCurveService(curve *pasta.Curve) (*AuthService[*pasta.Point, *pasta.Scalar], zkauth.Protocol[*pasta.Point, *pasta.Scalar]) {
	proto := zkauth.NewEllipticCurve(curve)
	return NewAuthService[*pasta.Point, *pasta.Scalar](proto, NewInMemoryUserStore[*pasta.Point, *pasta.Scalar]()), proto
}

// handshake runs the full client side of one authentication cycle against
// the service and returns the minted session id.
func handshake[E, S any](t *testing.T, svc *AuthService[E, S], proto zkauth.Protocol[E, S], user string, x S) string {
	t.Helper()
	elements, scalars := proto.Elements(), proto.Scalars()

	cp, k, err := proto.Commitment(x)
	require.NoError(t, err)
	require.NoError(t, svc.Register(user, elements.Encode(cp.Y1), elements.Encode(cp.Y2)))

	authID, cBytes, err := svc.CreateAuthenticationChallenge(user, elements.Encode(cp.R1), elements.Encode(cp.R2))
	require.NoError(t, err)
	c, err := scalars.Decode(cBytes)
	require.NoError(t, err)

	sessionID, err := svc.VerifyAuthentication(authID, scalars.Encode(proto.ChallengeResponse(k, c, x)))
	require.NoError(t, err)
	return sessionID
}

func TestHandshake(t *testing.T) {
	t.Run("discrete_log", func(t *testing.T) {
		svc, proto := newDlogService()
		x, err := proto.Scalars().Random()
		require.NoError(t, err)

		sessionID := handshake(t, svc, proto, "peggy", x)
		_, err = uuid.Parse(sessionID)
		assert.NoError(t, err, "session id is not a uuid")

		// The user record persists, so a second cycle works immediately.
		assert.NotEqual(t, sessionID, handshake(t, svc, proto, "peggy", x))
	})

	for _, curve := range []*pasta.Curve{pasta.Pallas(), pasta.Vesta()} {
		t.Run(curve.Name(), func(t *testing.T) {
			svc, proto := newCurveService(curve)
			x, err := proto.Scalars().Random()
			require.NoError(t, err)
			assert.NotEmpty(t, handshake(t, svc, proto, "peggy", x))
		})
	}
}

func TestChallengeUnknownUser(t *testing.T) {
	svc, proto := newDlogService()
	x, err := proto.Scalars().Random()
	require.NoError(t, err)
	cp, _, err := proto.Commitment(x)
	require.NoError(t, err)

	elements := proto.Elements()
	_, _, err = svc.CreateAuthenticationChallenge("victor", elements.Encode(cp.R1), elements.Encode(cp.R2))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyUnknownAuthID(t *testing.T) {
	svc, _ := newDlogService()
	_, err := svc.VerifyAuthentication(uuid.NewString(), []byte{1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyConsumesChallenge(t *testing.T) {
	svc, proto := newDlogService()
	elements, scalars := proto.Elements(), proto.Scalars()

	x, err := scalars.Random()
	require.NoError(t, err)
	cp, k, err := proto.Commitment(x)
	require.NoError(t, err)
	require.NoError(t, svc.Register("peggy", elements.Encode(cp.Y1), elements.Encode(cp.Y2)))

	issue := func() (string, *big.Int) {
		authID, cBytes, err := svc.CreateAuthenticationChallenge("peggy", elements.Encode(cp.R1), elements.Encode(cp.R2))
		require.NoError(t, err)
		c, err := scalars.Decode(cBytes)
		require.NoError(t, err)
		return authID, c
	}

	// A consumed challenge cannot be answered again, even with the correct
	// response.
	authID, c := issue()
	s := scalars.Encode(proto.ChallengeResponse(k, c, x))
	sessionID, err := svc.VerifyAuthentication(authID, s)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.NotEqual(t, authID, sessionID)
	_, err = svc.VerifyAuthentication(authID, s)
	assert.ErrorIs(t, err, ErrNotFound)

	// A failed proof burns the challenge too: no second guess against the
	// same c.
	authID, c = issue()
	wrong, err := scalars.Random()
	require.NoError(t, err)
	_, err = svc.VerifyAuthentication(authID, scalars.Encode(wrong))
	assert.ErrorIs(t, err, ErrInvalidAuthentication)
	_, err = svc.VerifyAuthentication(authID, scalars.Encode(proto.ChallengeResponse(k, c, x)))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterRejectsMalformedElements(t *testing.T) {
	svc, proto := newCurveService(pasta.Pallas())
	elements := proto.Elements()

	x, err := proto.Scalars().Random()
	require.NoError(t, err)
	cp, _, err := proto.Commitment(x)
	require.NoError(t, err)

	err = svc.Register("peggy", make([]byte, 31), elements.Encode(cp.Y2))
	assert.ErrorIs(t, err, zkauth.ErrDecode)

	require.NoError(t, svc.Register("peggy", elements.Encode(cp.Y1), elements.Encode(cp.Y2)))
	_, _, err = svc.CreateAuthenticationChallenge("peggy", elements.Encode(cp.R1), make([]byte, 33))
	assert.ErrorIs(t, err, zkauth.ErrDecode)
}

func TestConcurrentChallenges(t *testing.T) {
	svc, proto := newCurveService(pasta.Vesta())
	elements, scalars := proto.Elements(), proto.Scalars()

	x, err := scalars.Random()
	require.NoError(t, err)
	cp, k, err := proto.Commitment(x)
	require.NoError(t, err)
	require.NoError(t, svc.Register("peggy", elements.Encode(cp.Y1), elements.Encode(cp.Y2)))

	// All racing challenges share the same commitment, so each issued
	// challenge must be answerable regardless of interleaving.
	const n = 16
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			authID, cBytes, err := svc.CreateAuthenticationChallenge("peggy", elements.Encode(cp.R1), elements.Encode(cp.R2))
			if err != nil {
				return err
			}
			c, err := scalars.Decode(cBytes)
			if err != nil {
				return err
			}
			_, err = svc.VerifyAuthentication(authID, scalars.Encode(proto.ChallengeResponse(k, c, x)))
			return err
		})
	}
	require.NoError(t, g.Wait())
}
