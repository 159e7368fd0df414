// Package zkauth implements the Chaum-Pedersen zero-knowledge interactive
// proof over two independent group generators: a prover holding a secret x
// publishes y1 = g^x and y2 = h^x, commits to fresh randomness k with
// r1 = g^k and r2 = h^k, receives a random challenge c from the verifier, and
// answers with a response s such that g^s combined with y1^c reproduces r1
// (and likewise on the h side). The verifier learns nothing about x beyond
// the fact that the prover knows it.
//
// The protocol is realized over two kinds of groups behind one abstraction:
// multiplicative integers modulo a prime (DiscreteLog) and the Pallas and
// Vesta elliptic curves (EllipticCurve, backed by the pasta subpackage). The
// server and client subpackages turn the three-message proof into a gRPC
// registration/authentication handshake.
package zkauth
