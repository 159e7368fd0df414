package client

import (
	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"

	"github.com/zkpass/zkauth"
)

// SecretFromPassword turns a human password into a group-compatible secret
// by hashing it with SHA-512 and mapping the digest through the
// realization's total scalar decoding. The same password always yields the
// same secret for a given realization.
func SecretFromPassword[E, S any](proto zkauth.Protocol[E, S], password string) (S, error) {
	var zero S
	mh, err := multihash.Sum([]byte(password), multihash.SHA2_512, -1)
	if err != nil {
		return zero, errors.WrapPrefix(err, "hashing secret", 0)
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		return zero, errors.WrapPrefix(err, "hashing secret", 0)
	}
	return proto.Scalars().Decode(decoded.Digest)
}

// SecretOrRandom derives the secret from password when one is given and
// draws a fresh random scalar otherwise.
func SecretOrRandom[E, S any](proto zkauth.Protocol[E, S], password string) (S, error) {
	if password == "" {
		return proto.Scalars().Random()
	}
	return SecretFromPassword(proto, password)
}
