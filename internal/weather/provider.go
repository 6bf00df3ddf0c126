package weather

import (
	"context"
)

// Client abstracts the upstream weather source (OpenWeatherMap).
// Fetch returns the decoded body, or an *ErrorState carrying a transport kind.
type Client interface {
	Name() string
	Fetch(ctx context.Context, location string, unit UnitSystem) (Document, error)
}
