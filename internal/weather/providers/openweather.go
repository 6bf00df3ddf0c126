package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/waybar-weather/internal/weather"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements weather.Client for the OpenWeatherMap
// current weather endpoint.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
}

// Option customizes an OpenWeatherProvider.
type Option func(*OpenWeatherProvider)

// WithBaseURL points the provider at another endpoint, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(p *OpenWeatherProvider) {
		p.baseURL = u
	}
}

// WithMinInterval sets the minimum spacing between upstream calls.
// Zero disables the limiter.
func WithMinInterval(d time.Duration) Option {
	return func(p *OpenWeatherProvider) {
		if d <= 0 {
			p.httpCfg.Limiter = nil
			return
		}
		p.httpCfg.Limiter = newLimiter(d)
	}
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: openWeatherURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			// Free tier allows 60 calls per minute.
			Limiter: newLimiter(time.Second),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, location string, unit weather.UnitSystem) (weather.Document, error) {
	if p.apiKey == "" {
		return nil, weather.NewErrorState(weather.RequestError, "openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", location)
	values.Set("appid", p.apiKey)
	values.Set("units", unit.APIValue())

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, weather.NewErrorState(weather.RequestError, "invalid request url")
	}
	req.Header.Set("Accept", "application/json")

	return doRequest(ctx, p.httpCfg, req)
}
