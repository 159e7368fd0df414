// Package server binds a user store and a protocol realization into the
// verifier side of the authentication handshake: registration of public key
// material, issuance of one-time challenges, and verification of proof
// responses. The gRPC adapter in this package maps the orchestrator onto the
// zkp_auth wire service.
//
// This package owns session-state consistency: each of the three handshake
// operations runs as one atomic critical section, so concurrent requests for
// the same user cannot interleave their read-modify-write sequences. The
// store itself is a passive key-value surface and enforces no protocol
// invariants.
package server
