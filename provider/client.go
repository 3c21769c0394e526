package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

const userAgent = "commute-monitor/1.0 (+https://github.com/theoremus-urban-solutions/commute-monitor)"

// Client is the HTTP implementation of ItineraryProvider and
// StationProvider against a HAFAS-style REST API. The upstream throttles
// batched lookups, so every request passes through a shared rate limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxResults int
}

// NewClient creates a client for the given base URL. requestsPerSecond
// bounds outbound call volume across all concurrent route evaluations.
func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		maxResults: 5,
	}
}

var _ ItineraryProvider = (*Client)(nil)
var _ StationProvider = (*Client)(nil)

// getWithRetries performs a GET with up to 3 attempts for transient
// failures (502/503/504 and transport errors). Public transit APIs often
// block default Go user agents, so a project User-Agent is always set.
func (c *Client) getWithRetries(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			switch {
			case resp.StatusCode == http.StatusOK && readErr == nil:
				return body, nil
			case resp.StatusCode == http.StatusBadGateway,
				resp.StatusCode == http.StatusServiceUnavailable,
				resp.StatusCode == http.StatusGatewayTimeout:
				lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
			case readErr != nil:
				lastErr = readErr
			default:
				return nil, fmt.Errorf("%w: HTTP %d from %s", transit.ErrUpstreamUnavailable, resp.StatusCode, reqURL)
			}
		}

		if attempt < 2 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt+1) * time.Second):
			}
		}
	}
	return nil, fmt.Errorf("%w: failed after 3 attempts: %v", transit.ErrUpstreamUnavailable, lastErr)
}

// SearchTrips implements ItineraryProvider.
func (c *Client) SearchTrips(ctx context.Context, originStopID, destStopID string, at time.Time, mode transit.TimeMode) ([]RawTrip, error) {
	timeParam := "departure"
	if mode == transit.TimeModeArrive {
		timeParam = "arrival"
	}
	reqURL := fmt.Sprintf("%s/journeys?from=%s&to=%s&%s=%s&results=%d",
		c.baseURL,
		url.QueryEscape(originStopID),
		url.QueryEscape(destStopID),
		timeParam,
		url.QueryEscape(at.Format(time.RFC3339)),
		c.maxResults)

	body, err := c.getWithRetries(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("trip search: %w", err)
	}

	var jr journeysResponse
	if err := json.Unmarshal(body, &jr); err != nil {
		return nil, fmt.Errorf("%w: decoding journeys: %v", transit.ErrMalformedUpstreamData, err)
	}
	if len(jr.Journeys) == 0 {
		return nil, fmt.Errorf("%w: %s -> %s", transit.ErrNoItineraryFound, originStopID, destStopID)
	}
	return jr.Journeys, nil
}

// Search implements StationProvider. Non-station location types (POIs,
// addresses) are filtered out.
func (c *Client) Search(ctx context.Context, query string) ([]transit.StopArea, error) {
	reqURL := fmt.Sprintf("%s/locations?query=%s&results=%d",
		c.baseURL, url.QueryEscape(query), c.maxResults)

	body, err := c.getWithRetries(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("station search: %w", err)
	}

	var lr locationsResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("%w: decoding locations: %v", transit.ErrMalformedUpstreamData, err)
	}

	stops := make([]transit.StopArea, 0, len(lr.Locations))
	for _, loc := range lr.Locations {
		if loc.Type != "station" && loc.Type != "stop" {
			continue
		}
		stops = append(stops, transit.StopArea{
			ID:       loc.ID,
			Name:     loc.Name,
			Lat:      loc.Lat,
			Lon:      loc.Lon,
			Category: StopCategoryFromCode(loc.CategoryCode),
		})
	}
	return stops, nil
}

// Stop complex category codes as the upstream reports them.
const (
	stopCodeRail        = 1
	stopCodeMetro       = 2
	stopCodeBusTerminal = 3
)

// StopCategoryFromCode maps the upstream stop category code to the
// canonical category. Unknown codes map to CategoryOther.
func StopCategoryFromCode(code int) transit.StopCategory {
	switch code {
	case stopCodeRail:
		return transit.CategoryRail
	case stopCodeMetro:
		return transit.CategoryMetro
	case stopCodeBusTerminal:
		return transit.CategoryBusTerminal
	default:
		return transit.CategoryOther
	}
}
