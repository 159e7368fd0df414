package zkauth

// GroupParams is the immutable algebraic context of one protocol
// realization: two independent generators G and H, the modulus P and the
// subgroup order Q. One instance exists per (flavor, curve) combination,
// constructed at startup from fixed literals and never mutated afterwards.
//
// For the discrete-log realization P and Q are the actual prime modulus and
// subgroup order. For elliptic-curve realizations the group order is implicit
// in the scalar field, so P and Q are degenerate (identity) elements that
// exist only to satisfy the shared parameter shape.
type GroupParams[E any] struct {
	G E
	H E
	P E
	Q E
}

// CommitParams bundles the four public group elements of one proof session:
// Y1 = g^x and Y2 = h^x bind the secret, R1 = g^k and R2 = h^k commit to the
// fresh per-session randomness k. Y1 and Y2 live as long as the user record;
// R1 and R2 only for the lifetime of one pending challenge.
type CommitParams[E any] struct {
	Y1 E
	Y2 E
	R1 E
	R2 E
}

// Codec converts group elements or scalars to and from their canonical byte
// encoding, and draws fresh uniformly random values. Encode is deterministic
// and injective on valid values, so Decode(Encode(v)) == v and equality of
// decoded values implies equality of the encoded sources. Decode fails with
// an error wrapping ErrDecode when the input is malformed.
type Codec[T any] interface {
	Encode(v T) []byte
	Decode(data []byte) (T, error)
	Random() (T, error)
}

// Protocol is the generic commit/challenge/respond/verify algorithm,
// parameterized over the realization's group element type E and scalar type
// S. A realization is bound to its GroupParams at construction; see
// NewDiscreteLog and NewEllipticCurve.
type Protocol[E, S any] interface {
	// Commitment computes y1 = g^x and y2 = h^x for the secret x, draws a
	// fresh random scalar k and commits to it with r1 = g^k and r2 = h^k.
	// Every call consumes fresh entropy; reusing k across sessions breaks
	// soundness.
	Commitment(x S) (*CommitParams[E], S, error)

	// Challenge draws the verifier's uniformly random challenge scalar.
	Challenge() (S, error)

	// ChallengeResponse computes the prover's response from the commitment
	// randomness k, the challenge c and the secret x.
	ChallengeResponse(k, c, x S) S

	// Verify checks the proof relation for the response s against the
	// challenge c and the commitment bundle. It returns false on a failed
	// check and never errors; malformed inputs are rejected upstream by the
	// codecs.
	Verify(s, c S, cp *CommitParams[E]) bool

	Params() *GroupParams[E]
	Elements() Codec[E]
	Scalars() Codec[S]
}
