package zkauth

import (
	"github.com/go-errors/errors"
)

// Flavor selects the algebraic realization of the protocol. It is chosen
// once at process startup (typically from a CLI flag) and dispatched into a
// concrete Protocol instance; nothing re-dispatches per request.
type Flavor string

const (
	FlavorDiscreteLog   Flavor = "discrete_log"
	FlavorEllipticCurve Flavor = "elliptic_curve"
)

// CurveName names one of the two supported elliptic curves. Only meaningful
// when the flavor is FlavorEllipticCurve.
type CurveName string

const (
	CurvePallas CurveName = "pallas"
	CurveVesta  CurveName = "vesta"
)

func ParseFlavor(s string) (Flavor, error) {
	switch Flavor(s) {
	case FlavorDiscreteLog, FlavorEllipticCurve:
		return Flavor(s), nil
	}
	return "", errors.Errorf("unknown flavor %q (want %q or %q)", s, FlavorDiscreteLog, FlavorEllipticCurve)
}

func ParseCurveName(s string) (CurveName, error) {
	switch CurveName(s) {
	case CurvePallas, CurveVesta:
		return CurveName(s), nil
	}
	return "", errors.Errorf("unknown curve %q (want %q or %q)", s, CurvePallas, CurveVesta)
}
