package server

import (
	"context"
	"math/big"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/zkpass/zkauth"
	"github.com/zkpass/zkauth/client"
	"github.com/zkpass/zkauth/pasta"
	"github.com/zkpass/zkauth/zkpauthpb"
)

// startServer runs a wire server for the given realization on an in-process
// listener and returns a connected client.
func startServer(t *testing.T, fl zkauth.Flavor, cn zkauth.CurveName) zkpauthpb.AuthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer()
	zkpauthpb.RegisterAuthServer(grpcServer, NewAuthServer(fl, cn))
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return zkpauthpb.NewAuthClient(conn)
}

func TestEndToEndDiscreteLog(t *testing.T) {
	rpc := startServer(t, zkauth.FlavorDiscreteLog, zkauth.CurvePallas)

	var proto zkauth.Protocol[*big.Int, *big.Int] = zkauth.NewDiscreteLog(zkauth.DiscreteLogParams())
	x, err := client.SecretFromPassword(proto, "hunter2")
	require.NoError(t, err)

	sessionID, err := client.NewDriver(proto, rpc).Run(context.Background(), "peggy", x)
	require.NoError(t, err)
	_, err = uuid.Parse(sessionID)
	assert.NoError(t, err, "session id is not a uuid")
}

func TestEndToEndEllipticCurve(t *testing.T) {
	for _, cn := range []zkauth.CurveName{zkauth.CurvePallas, zkauth.CurveVesta} {
		t.Run(string(cn), func(t *testing.T) {
			rpc := startServer(t, zkauth.FlavorEllipticCurve, cn)

			var proto zkauth.Protocol[*pasta.Point, *pasta.Scalar] = zkauth.NewEllipticCurve(zkauth.CurveByName(cn))
			x, err := client.SecretFromPassword(proto, "correct horse battery staple")
			require.NoError(t, err)

			sessionID, err := client.NewDriver(proto, rpc).Run(context.Background(), "peggy", x)
			require.NoError(t, err)
			assert.NotEmpty(t, sessionID)
		})
	}
}

func TestStatusCodes(t *testing.T) {
	rpc := startServer(t, zkauth.FlavorEllipticCurve, zkauth.CurvePallas)
	ctx := context.Background()
	var proto zkauth.Protocol[*pasta.Point, *pasta.Scalar] = zkauth.NewEllipticCurve(pasta.Pallas())
	elements, scalars := proto.Elements(), proto.Scalars()

	// Malformed group elements.
	_, err := rpc.Register(ctx, &zkpauthpb.RegisterRequest{User: "peggy", Y1: make([]byte, 31), Y2: make([]byte, 32)})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	// Challenge for a user that was never registered.
	x, err := scalars.Random()
	require.NoError(t, err)
	cp, _, err := proto.Commitment(x)
	require.NoError(t, err)
	_, err = rpc.CreateAuthenticationChallenge(ctx, &zkpauthpb.AuthenticationChallengeRequest{
		User: "nobody", R1: elements.Encode(cp.R1), R2: elements.Encode(cp.R2),
	})
	assert.Equal(t, codes.NotFound, status.Code(err))

	// Answer to a challenge that was never issued.
	_, err = rpc.VerifyAuthentication(ctx, &zkpauthpb.AuthenticationAnswerRequest{
		AuthId: uuid.NewString(), S: scalars.Encode(x),
	})
	assert.Equal(t, codes.NotFound, status.Code(err))

	// A well-formed but wrong response is Unauthenticated, not
	// InvalidArgument.
	_, err = rpc.Register(ctx, &zkpauthpb.RegisterRequest{
		User: "peggy", Y1: elements.Encode(cp.Y1), Y2: elements.Encode(cp.Y2),
	})
	require.NoError(t, err)
	challenge, err := rpc.CreateAuthenticationChallenge(ctx, &zkpauthpb.AuthenticationChallengeRequest{
		User: "peggy", R1: elements.Encode(cp.R1), R2: elements.Encode(cp.R2),
	})
	require.NoError(t, err)
	wrong, err := scalars.Random()
	require.NoError(t, err)
	_, err = rpc.VerifyAuthentication(ctx, &zkpauthpb.AuthenticationAnswerRequest{
		AuthId: challenge.GetAuthId(), S: scalars.Encode(wrong),
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
