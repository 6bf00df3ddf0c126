package weather

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Service runs one refresh: fetch from the client, then normalize.
type Service struct {
	client   Client
	location string
	unit     UnitSystem
	now      func() time.Time
}

// NewService creates a new Service for a single location.
func NewService(client Client, location string, unit UnitSystem) *Service {
	return &Service{
		client:   client,
		location: location,
		unit:     unit,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock, used for refresh timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Refresh fetches and normalizes the current weather. A non-nil error is
// always an *ErrorState; the snapshot is only meaningful when it is nil.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	log.WithFields(log.Fields{
		"provider": s.client.Name(),
		"location": s.location,
		"unit":     s.unit.String(),
	}).Debug("fetching current weather")

	doc, err := s.client.Fetch(ctx, s.location, s.unit)
	if err != nil {
		es := AsErrorState(err)
		log.WithField("kind", es.Kind.String()).Warnf("fetch failed for %s: %s", s.location, es.Detail)
		return Snapshot{}, es
	}

	snap, err := Normalize(doc, s.unit, s.now())
	if err != nil {
		log.Warnf("normalize failed for %s: %v", s.location, err)
		return Snapshot{}, err
	}
	return snap, nil
}
