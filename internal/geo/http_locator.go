package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPLocator resolves the position of the machine's public IP through a
// JSON endpoint with the ip-api.com response shape:
//
//	{"status":"success","lat":38.72,"lon":-9.13}
type HTTPLocator struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
}

// NewHTTPLocator creates an HTTPLocator with its own client.
func NewHTTPLocator(endpoint string, timeout time.Duration) *HTTPLocator {
	return &HTTPLocator{
		Endpoint: endpoint,
		Client:   &http.Client{},
		Timeout:  timeout,
	}
}

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l *HTTPLocator) CurrentPosition(ctx context.Context) (Position, error) {
	if l.Endpoint == "" {
		return Position{}, ErrUnavailable
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Endpoint, nil)
	if err != nil {
		return Position{}, fmt.Errorf("building geolocation request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Position{}, fmt.Errorf("geolocation request: status %d: %s", resp.StatusCode, body)
	}

	var out ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Position{}, fmt.Errorf("decoding geolocation response: %w", err)
	}
	if out.Status != "" && out.Status != "success" {
		return Position{}, fmt.Errorf("geolocation lookup failed: %s", out.Message)
	}

	pos := Position{Latitude: out.Lat, Longitude: out.Lon}
	if !pos.Valid() {
		return Position{}, fmt.Errorf("geolocation returned invalid position %v,%v", out.Lat, out.Lon)
	}
	return pos, nil
}
