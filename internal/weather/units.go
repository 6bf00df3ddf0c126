package weather

import (
	"fmt"
	"strings"
)

// UnitSystem is the measurement system requested from the upstream API.
type UnitSystem int

const (
	Standard UnitSystem = iota
	Metric
	Imperial
)

// ParseUnitSystem accepts standard, metric or imperial in any case.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return Standard, nil
	case "metric":
		return Metric, nil
	case "imperial":
		return Imperial, nil
	default:
		return Metric, fmt.Errorf("unknown unit system %q", s)
	}
}

// APIValue returns the value of the upstream "units" query parameter.
func (u UnitSystem) APIValue() string {
	switch u {
	case Standard:
		return "standard"
	case Imperial:
		return "imperial"
	default:
		return "metric"
	}
}

func (u UnitSystem) String() string {
	return u.APIValue()
}

// TemperatureSymbol is appended directly to rendered temperatures.
// Kelvin carries a leading space so that "280 K" does not read as "280K".
func (u UnitSystem) TemperatureSymbol() string {
	switch u {
	case Standard:
		return " K"
	case Imperial:
		return "°F"
	default:
		return "°C"
	}
}

// WindSymbol is the wind speed unit. It is the same for every system.
func (u UnitSystem) WindSymbol() string {
	return "m/s"
}
