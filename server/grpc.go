package server

import (
	"context"
	"math/big"

	"github.com/go-errors/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/zkpass/zkauth"
	"github.com/zkpass/zkauth/pasta"
	"github.com/zkpass/zkauth/zkpauthpb"
)

// GRPC adapts an AuthService onto the zkp_auth wire service, translating the
// error taxonomy into gRPC status codes.
type GRPC[E, S any] struct {
	zkpauthpb.UnimplementedAuthServer
	svc *AuthService[E, S]
}

func NewGRPC[E, S any](svc *AuthService[E, S]) *GRPC[E, S] {
	return &GRPC[E, S]{svc: svc}
}

func (g *GRPC[E, S]) Register(_ context.Context, req *zkpauthpb.RegisterRequest) (*zkpauthpb.RegisterResponse, error) {
	if err := g.svc.Register(req.GetUser(), req.GetY1(), req.GetY2()); err != nil {
		return nil, toStatus(err)
	}
	return &zkpauthpb.RegisterResponse{}, nil
}

func (g *GRPC[E, S]) CreateAuthenticationChallenge(_ context.Context, req *zkpauthpb.AuthenticationChallengeRequest) (*zkpauthpb.AuthenticationChallengeResponse, error) {
	authID, c, err := g.svc.CreateAuthenticationChallenge(req.GetUser(), req.GetR1(), req.GetR2())
	if err != nil {
		return nil, toStatus(err)
	}
	return &zkpauthpb.AuthenticationChallengeResponse{AuthId: authID, C: c}, nil
}

func (g *GRPC[E, S]) VerifyAuthentication(_ context.Context, req *zkpauthpb.AuthenticationAnswerRequest) (*zkpauthpb.AuthenticationAnswerResponse, error) {
	sessionID, err := g.svc.VerifyAuthentication(req.GetAuthId(), req.GetS())
	if err != nil {
		return nil, toStatus(err)
	}
	return &zkpauthpb.AuthenticationAnswerResponse{SessionId: sessionID}, nil
}

// toStatus maps the error taxonomy onto status codes. A failed proof gets
// its own code (Unauthenticated) rather than being folded into
// InvalidArgument, so clients can tell a rejected proof from a malformed
// request.
func toStatus(err error) error {
	switch {
	case errors.Is(err, zkauth.ErrDecode):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrInvalidAuthentication):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// NewAuthServer is the startup-time factory: given the flavor and curve
// chosen by configuration it builds one fully-typed orchestrator over a
// fresh in-memory store and returns it behind the wire interface. No
// re-dispatch happens per request.
func NewAuthServer(flavor zkauth.Flavor, curve zkauth.CurveName) zkpauthpb.AuthServer {
	switch flavor {
	case zkauth.FlavorEllipticCurve:
		proto := zkauth.NewEllipticCurve(zkauth.CurveByName(curve))
		store := NewInMemoryUserStore[*pasta.Point, *pasta.Scalar]()
		return NewGRPC(NewAuthService[*pasta.Point, *pasta.Scalar](proto, store))
	default:
		proto := zkauth.NewDiscreteLog(zkauth.DiscreteLogParams())
		store := NewInMemoryUserStore[*big.Int, *big.Int]()
		return NewGRPC(NewAuthService[*big.Int, *big.Int](proto, store))
	}
}
