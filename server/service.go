package server

import (
	"fmt"
	"sync"

	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zkpass/zkauth"
)

// AuthService is the server-side state machine of the handshake. A user
// session moves Unregistered -> Registered -> Challenged -> Authenticated;
// the user record persists after authentication, so a new cycle may start at
// the challenge step at any time.
//
// All three operations take the service mutex for their whole duration, so
// each read-modify-write sequence commits atomically even when requests for
// the same user race.
type AuthService[E, S any] struct {
	mu    sync.Mutex
	proto zkauth.Protocol[E, S]
	store UserStore[E, S]
	log   *logrus.Entry
}

func NewAuthService[E, S any](proto zkauth.Protocol[E, S], store UserStore[E, S]) *AuthService[E, S] {
	return &AuthService[E, S]{
		proto: proto,
		store: store,
		log:   zkauth.Logger.WithField("component", "authservice"),
	}
}

// Register decodes the public key material y1 = g^x, y2 = h^x and upserts
// the user record. Re-registering wipes any pending commitment randomness.
func (s *AuthService[E, S]) Register(username string, y1, y2 []byte) error {
	elements := s.proto.Elements()
	decodedY1, err := elements.Decode(y1)
	if err != nil {
		return errors.WrapPrefix(err, "y1", 0)
	}
	decodedY2, err := elements.Decode(y2)
	if err != nil {
		return errors.WrapPrefix(err, "y2", 0)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Create(&User[E]{Username: username, Y1: decodedY1, Y2: decodedY2})
	s.log.WithField("user", username).Info("registered")
	return nil
}

// CreateAuthenticationChallenge stores the prover's commitment randomness
// r1 = g^k, r2 = h^k on the user record, draws a fresh challenge and files
// it under a new one-time id. The id and the encoded challenge scalar are
// returned to the prover.
func (s *AuthService[E, S]) CreateAuthenticationChallenge(username string, r1, r2 []byte) (string, []byte, error) {
	elements := s.proto.Elements()
	decodedR1, err := elements.Decode(r1)
	if err != nil {
		return "", nil, errors.WrapPrefix(err, "r1", 0)
	}
	decodedR2, err := elements.Decode(r2)
	if err != nil {
		return "", nil, errors.WrapPrefix(err, "r2", 0)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.Read(username)
	if !ok {
		return "", nil, errors.Wrap(fmt.Errorf("user %s: %w", username, ErrNotFound), 0)
	}
	user.R1 = &decodedR1
	user.R2 = &decodedR2
	s.store.Update(username, user)

	c, err := s.proto.Challenge()
	if err != nil {
		return "", nil, err
	}
	authID := s.store.CreateAuthChallenge(username, c)
	s.log.WithFields(logrus.Fields{"user": username, "auth_id": authID}).Info("challenge issued")
	return authID, s.proto.Scalars().Encode(c), nil
}

// VerifyAuthentication checks the response against the pending challenge.
// The challenge is consumed exactly once, whether or not the proof holds; a
// successful proof mints a fresh opaque session id.
func (s *AuthService[E, S]) VerifyAuthentication(authID string, response []byte) (string, error) {
	decodedS, err := s.proto.Scalars().Decode(response)
	if err != nil {
		return "", errors.WrapPrefix(err, "s", 0)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.store.GetAuthChallenge(authID)
	if !ok {
		return "", errors.Wrap(fmt.Errorf("auth_id %s: %w", authID, ErrNotFound), 0)
	}
	user, ok := s.store.Read(challenge.Username)
	if !ok {
		// A challenge must not outlive its user; reaching this means the
		// store was mutated behind the orchestrator's back.
		s.log.WithFields(logrus.Fields{"user": challenge.Username, "auth_id": authID}).
			Error("pending challenge references missing user")
		return "", errors.Wrap(fmt.Errorf("user %s: %w", challenge.Username, ErrNotFound), 0)
	}
	if user.R1 == nil || user.R2 == nil {
		s.log.WithField("user", user.Username).Error("user record has no commitment randomness")
		return "", errors.Wrap(ErrPrecondition, 0)
	}

	s.store.DeleteAuthChallenge(authID)

	ok = s.proto.Verify(decodedS, challenge.C, &zkauth.CommitParams[E]{
		Y1: user.Y1,
		Y2: user.Y2,
		R1: *user.R1,
		R2: *user.R2,
	})
	if !ok {
		s.log.WithField("user", user.Username).Warn("authentication failed")
		return "", errors.Wrap(ErrInvalidAuthentication, 0)
	}

	sessionID := uuid.NewString()
	s.log.WithFields(logrus.Fields{"user": user.Username, "session_id": sessionID}).Info("authenticated")
	return sessionID, nil
}
