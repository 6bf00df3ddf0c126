package weather

import (
	"math"
	"strconv"
	"time"
)

// Document is the untyped JSON body returned by the upstream weather API.
type Document map[string]any

// Temperature is a reading expressed in the unit system it was requested in.
type Temperature struct {
	Value float64
	Unit  UnitSystem
}

func (t Temperature) String() string {
	return FormatNumber(t.Value) + t.Unit.TemperatureSymbol()
}

// Celsius converts the reading to degrees Celsius.
func (t Temperature) Celsius() float64 {
	switch t.Unit {
	case Standard:
		return t.Value - 273.15
	case Imperial:
		return (t.Value - 32) * 5 / 9
	default:
		return t.Value
	}
}

// Wind holds speed and bearing. Gust is nil when the payload omits it.
type Wind struct {
	Speed   float64
	Bearing int
	Gust    *float64
}

// Condition is the textual weather condition plus relative humidity.
type Condition struct {
	Category    string
	Description string
	Humidity    float64
}

// Icon returns the glyph for the condition category.
func (c Condition) Icon() string {
	icon, _ := ConditionIcon(c.Category)
	return icon
}

// Snapshot is one normalized reading. All temperatures share Unit.
type Snapshot struct {
	City        string
	ObservedAt  time.Time
	RefreshedAt time.Time
	Unit        UnitSystem

	Temperature Temperature
	FeelsLike   Temperature
	Min         Temperature
	Max         Temperature

	Wind      Wind
	Condition Condition

	// Pressure in hPa, nil when the payload omits it.
	Pressure *float64
}

// round rounds half away from zero and folds negative zero into zero.
func round(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		return 0
	}
	return r
}

// FormatNumber renders a value without trailing zeros, e.g. 5 or 2.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
