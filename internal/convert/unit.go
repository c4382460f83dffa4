package convert

import (
	"encoding/json"
	"fmt"
)

// Unit is one of the supported weight units, identified by its wire code.
type Unit string

const (
	Pound     Unit = "lb"
	Kilogram  Unit = "kg"
	Gram      Unit = "g"
	MetricTon Unit = "metric ton"
)

// Units lists every supported unit in declaration order.
func Units() []Unit {
	return []Unit{Pound, Kilogram, Gram, MetricTon}
}

// ParseUnit resolves a wire code to a Unit.
func ParseUnit(token string) (Unit, error) {
	switch token {
	case "lb":
		return Pound, nil
	case "kg":
		return Kilogram, nil
	case "g":
		return Gram, nil
	case "metric ton":
		return MetricTon, nil
	default:
		return "", &UnknownUnitError{Token: token}
	}
}

// Metric reports whether the unit belongs to the metric system.
func (u Unit) Metric() bool {
	return u == Kilogram || u == Gram || u == MetricTon
}

func (u Unit) String() string {
	return string(u)
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("decode unit: %w", err)
	}

	parsed, err := ParseUnit(token)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}

// UnknownUnitError reports a unit code outside the supported set.
type UnknownUnitError struct {
	Token string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("cannot process unit %q, use either \"lb\", \"g\", \"kg\", or \"metric ton\"", e.Token)
}
