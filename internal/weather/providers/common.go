package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/i474232898/waybar-weather/internal/weather"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// HTTPClientConfig bundles the HTTP client and its request budget.
type HTTPClientConfig struct {
	Client *http.Client
	// Limiter spaces out upstream calls. Nil disables limiting.
	Limiter *rate.Limiter
}

var (
	errNoHTTPClient = errors.New("http client not configured")
	errEmptyBody    = errors.New("empty response body")
)

// doRequest performs exactly one request and decodes the JSON body.
// Failures are classified into transport error kinds; there is no retry.
func doRequest(ctx context.Context, cfg HTTPClientConfig, req *http.Request) (weather.Document, error) {
	if cfg.Client == nil {
		return nil, weather.NewErrorState(weather.RequestError, errNoHTTPClient.Error())
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, classify(fmt.Errorf("rate limit wait canceled: %w", err))
		}
	}

	resp, err := cfg.Client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, weather.NewErrorState(weather.HTTPError, statusDetail(resp, body))
	}

	if len(body) == 0 {
		return nil, weather.NewErrorState(weather.RequestError, errEmptyBody.Error())
	}

	var doc weather.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, weather.NewErrorState(weather.RequestError, fmt.Sprintf("invalid response body: %v", err))
	}
	return doc, nil
}

// statusDetail renders "404 Not Found: city not found", using the API's
// message field when the error body carries one.
func statusDetail(resp *http.Response, body []byte) string {
	detail := resp.Status
	if detail == "" {
		detail = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		detail += ": " + payload.Message
	}
	return detail
}

// classify maps a client-side failure to a transport ErrorState.
// URLs are stripped from the detail since they carry the API key.
func classify(err error) *weather.ErrorState {
	detail := err.Error()
	var uerr *url.Error
	if errors.As(err, &uerr) {
		detail = fmt.Sprintf("%s request failed: %v", uerr.Op, uerr.Err)
	}

	var nerr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.As(err, &nerr) && nerr.Timeout():
		return weather.NewErrorState(weather.TimeoutError, detail)
	case isConnectionError(err):
		return weather.NewErrorState(weather.ConnectionError, detail)
	default:
		return weather.NewErrorState(weather.RequestError, detail)
	}
}

func isConnectionError(err error) bool {
	var (
		opErr  *net.OpError
		dnsErr *net.DNSError
	)
	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &dnsErr),
		errors.As(err, &opErr):
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}

// newLimiter allows one request per interval with no burst beyond it.
func newLimiter(every time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(every), 1)
}
