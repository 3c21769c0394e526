package realtime

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Schedule relationship values from the GTFS-RT spec.
const (
	stopSkipped  = 1
	tripCanceled = 3
)

// Feed stores the most recent GTFS-RT TripUpdates data in memory for fast
// per-trip lookups. Refresh replaces the indexes wholesale; reads and
// refreshes may run concurrently.
type Feed struct {
	tripUpdatesURL string
	httpClient     *http.Client

	mu              sync.RWMutex
	headerTimestamp int64
	etaByStop       map[string]map[string]int64 // trip_id -> stop_id -> arrival epoch
	etdByStop       map[string]map[string]int64 // trip_id -> stop_id -> departure epoch
	skippedStops    map[string]map[string]bool  // trip_id -> stop_id -> skipped
	cancelledTrips  map[string]bool             // trip_id -> trip-level cancellation
}

// NewFeed creates a Feed for the given TripUpdates URL. An empty URL
// yields a feed that knows nothing and annotates nothing.
func NewFeed(tripUpdatesURL string, timeout time.Duration) *Feed {
	return &Feed{
		tripUpdatesURL: tripUpdatesURL,
		httpClient:     &http.Client{Timeout: timeout},
		etaByStop:      map[string]map[string]int64{},
		etdByStop:      map[string]map[string]int64{},
		skippedStops:   map[string]map[string]bool{},
		cancelledTrips: map[string]bool{},
	}
}

// Refresh fetches and re-indexes the TripUpdates feed.
func (f *Feed) Refresh(ctx context.Context) error {
	if f.tripUpdatesURL == "" {
		return nil
	}
	fm, err := f.fetchFeed(ctx, f.tripUpdatesURL)
	if err != nil {
		return fmt.Errorf("refreshing trip updates: %w", err)
	}

	eta := map[string]map[string]int64{}
	etd := map[string]map[string]int64{}
	skipped := map[string]map[string]bool{}
	cancelled := map[string]bool{}
	var headerTS int64
	if fm.Header != nil && fm.Header.Timestamp != nil {
		headerTS = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil || tu.Trip == nil || tu.Trip.TripId == nil {
			continue
		}
		tripID := *tu.Trip.TripId
		if tu.Trip.ScheduleRelationship != nil && int32(*tu.Trip.ScheduleRelationship) == tripCanceled {
			cancelled[tripID] = true
		}
		for _, stu := range tu.StopTimeUpdate {
			if stu.StopId == nil {
				continue
			}
			sid := *stu.StopId
			if stu.Arrival != nil && stu.Arrival.Time != nil {
				if eta[tripID] == nil {
					eta[tripID] = map[string]int64{}
				}
				eta[tripID][sid] = *stu.Arrival.Time
			}
			if stu.Departure != nil && stu.Departure.Time != nil {
				if etd[tripID] == nil {
					etd[tripID] = map[string]int64{}
				}
				etd[tripID][sid] = *stu.Departure.Time
			}
			if stu.ScheduleRelationship != nil && int32(*stu.ScheduleRelationship) == stopSkipped {
				if skipped[tripID] == nil {
					skipped[tripID] = map[string]bool{}
				}
				skipped[tripID][sid] = true
			}
		}
	}

	f.mu.Lock()
	f.headerTimestamp = headerTS
	f.etaByStop = eta
	f.etdByStop = etd
	f.skippedStops = skipped
	f.cancelledTrips = cancelled
	f.mu.Unlock()
	return nil
}

func (f *Feed) fetchFeed(ctx context.Context, url string) (*gtfsrtpb.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}

// Timestamp returns the feed header timestamp of the last refresh.
func (f *Feed) Timestamp() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.headerTimestamp
}

// expectedArrival returns the live arrival epoch for a trip at a stop.
func (f *Feed) expectedArrival(tripID, stopID string) (int64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ts, ok := f.etaByStop[tripID][stopID]
	return ts, ok
}

func (f *Feed) expectedDeparture(tripID, stopID string) (int64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ts, ok := f.etdByStop[tripID][stopID]
	return ts, ok
}

// isCancelled reports trip-level cancellation or a skip of the given stop.
func (f *Feed) isCancelled(tripID, stopID string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cancelledTrips[tripID] || f.skippedStops[tripID][stopID]
}
