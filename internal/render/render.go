// Package render substitutes snapshot values into user templates.
package render

import (
	"strconv"
	"strings"

	"github.com/i474232898/waybar-weather/internal/weather"
)

// Style classes, chosen from the temperature in degrees Celsius.
// The bounds below are in °C whatever the snapshot unit, so 50°F is cold.
// Thresholds are checked top to bottom and the first match wins.
const (
	ClassHot     = "hot"     // above HotAbove
	ClassWarm    = "warm"    // above WarmAbove
	ClassCold    = "cold"    // at or below ColdAtMost
	ClassRegular = "regular" // anything else

	HotAbove   = 29.0
	WarmAbove  = 19.0
	ColdAtMost = 10.0
)

// Tokens is the closed placeholder vocabulary, in substitution order.
var Tokens = []string{
	"{city}",
	"{humidity}",
	"{pressure}",
	"{temperature}",
	"{temperatureFeel}",
	"{temperatureMin}",
	"{temperatureMax}",
	"{time}",
	"{refreshedAt}",
	"{weather}",
	"{weatherIcon}",
	"{weatherDesc}",
	"{windDirection}",
	"{windDegrees}",
	"{windCompass}",
	"{windArrow}",
	"{windSpeed}",
	"{windGust}",
}

// Templates holds the user format strings. An empty Secondary means no
// tooltip is configured.
type Templates struct {
	Primary   string
	Secondary string
}

// Output is the channel-agnostic result of rendering. Secondary is only
// emitted when HasSecondary is set, even if it rendered to an empty string.
// An empty StyleClass is absent.
type Output struct {
	Primary      string
	Secondary    string
	HasSecondary bool
	StyleClass   string
}

// Renderer renders snapshots through a fixed pair of templates.
type Renderer struct {
	templates Templates
}

func New(templates Templates) *Renderer {
	return &Renderer{templates: templates}
}

// Result renders whichever of snapshot or err is the outcome of a cycle.
func (r *Renderer) Result(snap weather.Snapshot, err error) Output {
	if err != nil {
		return Error(weather.AsErrorState(err))
	}
	return r.Render(snap)
}

// Render substitutes every known token in both templates.
func (r *Renderer) Render(snap weather.Snapshot) Output {
	rep := strings.NewReplacer(pairs(snap)...)
	out := Output{
		Primary:    rep.Replace(r.templates.Primary),
		StyleClass: StyleClass(snap.Temperature),
	}
	if r.templates.Secondary != "" {
		out.Secondary = rep.Replace(r.templates.Secondary)
		out.HasSecondary = true
	}
	return out
}

// Error renders a failed cycle. The error text is never run through the
// placeholder engine.
func Error(es *weather.ErrorState) Output {
	return Output{
		Primary:      es.Label,
		Secondary:    es.Detail,
		HasSecondary: es.Detail != "",
	}
}

// StyleClass classifies a temperature.
func StyleClass(t weather.Temperature) string {
	c := t.Celsius()
	switch {
	case c > HotAbove:
		return ClassHot
	case c > WarmAbove:
		return ClassWarm
	case c <= ColdAtMost:
		return ClassCold
	default:
		return ClassRegular
	}
}

func pairs(snap weather.Snapshot) []string {
	unit := snap.Unit
	w := snap.Wind

	return []string{
		"{city}", snap.City,
		"{humidity}", weather.FormatNumber(snap.Condition.Humidity) + "%",
		"{pressure}", optional(snap.Pressure, " hPa"),
		"{temperature}", snap.Temperature.String(),
		"{temperatureFeel}", snap.FeelsLike.String(),
		"{temperatureMin}", snap.Min.String(),
		"{temperatureMax}", snap.Max.String(),
		"{time}", snap.ObservedClock(),
		"{refreshedAt}", snap.RefreshedClock(),
		"{weather}", snap.Condition.Category,
		"{weatherIcon}", snap.Condition.Icon(),
		"{weatherDesc}", snap.Condition.Description,
		"{windDirection}", weather.CompassPoint(w.Bearing) + weather.CompassArrow(w.Bearing),
		"{windDegrees}", strconv.Itoa(w.Bearing) + "°",
		"{windCompass}", weather.CompassPoint(w.Bearing),
		"{windArrow}", weather.CompassArrow(w.Bearing),
		"{windSpeed}", weather.FormatNumber(w.Speed) + unit.WindSymbol(),
		"{windGust}", optional(w.Gust, unit.WindSymbol()),
	}
}

func optional(v *float64, symbol string) string {
	if v == nil {
		return ""
	}
	return weather.FormatNumber(*v) + symbol
}
