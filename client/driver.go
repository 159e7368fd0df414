// Package client drives the prover side of the authentication handshake: it
// computes a commitment locally, registers the public parts, requests a
// challenge, and answers it, holding the secret and the commitment
// randomness for the duration of one run only.
package client

import (
	"context"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/zkpass/zkauth"
	"github.com/zkpass/zkauth/zkpauthpb"
)

// Driver sequences the three RPCs of the handshake using one protocol
// realization and a locally-held secret. It keeps no state between runs; any
// RPC failure aborts the sequence and surfaces the underlying error.
type Driver[E, S any] struct {
	proto zkauth.Protocol[E, S]
	rpc   zkpauthpb.AuthClient
	log   *logrus.Entry
}

func NewDriver[E, S any](proto zkauth.Protocol[E, S], rpc zkpauthpb.AuthClient) *Driver[E, S] {
	return &Driver[E, S]{
		proto: proto,
		rpc:   rpc,
		log:   zkauth.Logger.WithField("component", "prover"),
	}
}

// Run performs the full handshake for the given user and secret and returns
// the session id minted by the server.
func (d *Driver[E, S]) Run(ctx context.Context, user string, x S) (string, error) {
	cp, k, err := d.proto.Commitment(x)
	if err != nil {
		return "", errors.WrapPrefix(err, "commitment", 0)
	}

	elements := d.proto.Elements()
	scalars := d.proto.Scalars()

	_, err = d.rpc.Register(ctx, &zkpauthpb.RegisterRequest{
		User: user,
		Y1:   elements.Encode(cp.Y1),
		Y2:   elements.Encode(cp.Y2),
	})
	if err != nil {
		return "", errors.WrapPrefix(err, "register", 0)
	}
	d.log.WithField("user", user).Info("registered")

	challenge, err := d.rpc.CreateAuthenticationChallenge(ctx, &zkpauthpb.AuthenticationChallengeRequest{
		User: user,
		R1:   elements.Encode(cp.R1),
		R2:   elements.Encode(cp.R2),
	})
	if err != nil {
		return "", errors.WrapPrefix(err, "create authentication challenge", 0)
	}

	c, err := scalars.Decode(challenge.GetC())
	if err != nil {
		return "", errors.WrapPrefix(err, "challenge scalar", 0)
	}
	s := d.proto.ChallengeResponse(k, c, x)

	answer, err := d.rpc.VerifyAuthentication(ctx, &zkpauthpb.AuthenticationAnswerRequest{
		AuthId: challenge.GetAuthId(),
		S:      scalars.Encode(s),
	})
	if err != nil {
		return "", errors.WrapPrefix(err, "verify authentication", 0)
	}

	d.log.WithFields(logrus.Fields{"user": user, "session_id": answer.GetSessionId()}).Info("authenticated")
	return answer.GetSessionId(), nil
}
