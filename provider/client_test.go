package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, 100)
}

func TestSearchTrips_NoItineraryFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"journeys": []}`))
	})

	_, err := c.SearchTrips(context.Background(), "9001", "9202", time.Now(), transit.TimeModeDepart)
	if !errors.Is(err, transit.ErrNoItineraryFound) {
		t.Errorf("err = %v, want ErrNoItineraryFound", err)
	}
}

func TestSearchTrips_UpstreamError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.SearchTrips(context.Background(), "9001", "9202", time.Now(), transit.TimeModeDepart)
	if !errors.Is(err, transit.ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestSearchTrips_RetriesTransientStatus(t *testing.T) {
	attempts := 0
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"journeys": [{"id": "t1", "legs": []}]}`))
	})

	trips, err := c.SearchTrips(context.Background(), "9001", "9202", time.Now(), transit.TimeModeDepart)
	if err != nil {
		t.Fatalf("SearchTrips: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2 (one retry)", attempts)
	}
	if len(trips) != 1 || trips[0].ID != "t1" {
		t.Errorf("trips = %+v, want one trip t1", trips)
	}
}

func TestSearchTrips_ArriveModeParameter(t *testing.T) {
	var query string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"journeys": [{"id": "t1", "legs": []}]}`))
	})

	_, err := c.SearchTrips(context.Background(), "9001", "9202", time.Now(), transit.TimeModeArrive)
	if err != nil {
		t.Fatalf("SearchTrips: %v", err)
	}
	if !strings.Contains(query, "arrival=") || strings.Contains(query, "departure=") {
		t.Errorf("query = %q, want an arrival parameter", query)
	}
}

func TestSearch_FiltersNonStations(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"locations": [
			{"type": "station", "id": "9001", "name": "Central Station", "categoryCode": 1},
			{"type": "poi", "id": "p1", "name": "Museum"},
			{"type": "stop", "id": "9002", "name": "T-Centralen", "categoryCode": 2}
		]}`))
	})

	stops, err := c.Search(context.Background(), "central")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("stops = %d, want 2 (POI filtered out)", len(stops))
	}
	if stops[0].Category != transit.CategoryRail || stops[1].Category != transit.CategoryMetro {
		t.Errorf("categories = %v/%v, want rail/metro", stops[0].Category, stops[1].Category)
	}
}

func TestStopCategoryFromCode_Unknown(t *testing.T) {
	if got := StopCategoryFromCode(42); got != transit.CategoryOther {
		t.Errorf("unknown code mapped to %v, want other", got)
	}
}
