package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	statusOK           = 200
	apiFallbackMessage = "Something went wrong"
	clockLayout        = "15:04"
)

// Normalize turns an upstream current-weather document into a Snapshot.
// The returned error is always an *ErrorState. Temperatures are taken as
// already expressed in unit; only the metadata is attached here.
// Times are converted into the location of refreshedAt.
func Normalize(doc Document, unit UnitSystem, refreshedAt time.Time) (Snapshot, error) {
	if code, failed := statusCode(doc); failed {
		msg, _ := doc["message"].(string)
		if msg == "" {
			msg = apiFallbackMessage
		}
		return Snapshot{}, &ErrorState{
			Kind:   APIError,
			Label:  "Error: " + code,
			Detail: msg,
		}
	}

	main := object(doc, "main")
	windDoc := object(doc, "wind")
	cond := firstObject(doc, "weather")

	category, _ := cond["main"].(string)
	if _, ok := ConditionIcon(category); !ok {
		return Snapshot{}, NewErrorState(UnknownCondition,
			fmt.Sprintf("unrecognized weather condition %q", category))
	}
	description, _ := cond["description"].(string)

	snap := Snapshot{
		City:        stringField(doc, "name"),
		RefreshedAt: refreshedAt,
		Unit:        unit,
		Temperature: Temperature{Value: round(number(main, "temp")), Unit: unit},
		FeelsLike:   Temperature{Value: round(number(main, "feels_like")), Unit: unit},
		Min:         Temperature{Value: round(number(main, "temp_min")), Unit: unit},
		Max:         Temperature{Value: round(number(main, "temp_max")), Unit: unit},
		Wind: Wind{
			Speed:   round(number(windDoc, "speed")),
			Bearing: int(number(windDoc, "deg")),
			Gust:    optionalNumber(windDoc, "gust"),
		},
		Condition: Condition{
			Category:    category,
			Description: cases.Title(language.Und).String(description),
			Humidity:    round(number(main, "humidity")),
		},
		Pressure: optionalNumber(main, "pressure"),
	}

	if dt, ok := numberOK(doc, "dt"); ok {
		snap.ObservedAt = time.Unix(int64(dt), 0).In(refreshedAt.Location())
	} else {
		snap.ObservedAt = refreshedAt
	}

	return snap, nil
}

// ObservedClock formats the observation time as hour:minute.
func (s Snapshot) ObservedClock() string {
	return s.ObservedAt.Format(clockLayout)
}

// RefreshedClock formats the refresh time as hour:minute.
func (s Snapshot) RefreshedClock() string {
	return s.RefreshedAt.Format(clockLayout)
}

// statusCode reads "cod", which the API sends as a number on success and
// as a string on most errors. Any present value other than 200 is a failure
// and is returned as text; a missing or null "cod" counts as success.
func statusCode(doc Document) (string, bool) {
	switch v := doc["cod"].(type) {
	case nil:
		return "", false
	case float64:
		return FormatNumber(v), v != statusOK
	case int:
		return strconv.Itoa(v), v != statusOK
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return v, err != nil || n != statusOK
	default:
		return fmt.Sprint(v), true
	}
}

func object(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}

func firstObject(m map[string]any, key string) map[string]any {
	items, _ := m[key].([]any)
	if len(items) == 0 {
		return nil
	}
	o, _ := items[0].(map[string]any)
	return o
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func numberOK(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func number(m map[string]any, key string) float64 {
	v, _ := numberOK(m, key)
	return v
}

func optionalNumber(m map[string]any, key string) *float64 {
	v, ok := numberOK(m, key)
	if !ok {
		return nil
	}
	r := round(v)
	return &r
}
