package zkauth

import (
	"github.com/go-errors/errors"
)

// ErrDecode is returned (possibly wrapped) by Codec.Decode when a byte buffer
// is not a valid canonical encoding of a group element or scalar: wrong
// length, a coordinate outside the field, or an x that is not on the curve.
var ErrDecode = errors.New("malformed group element or scalar encoding")
