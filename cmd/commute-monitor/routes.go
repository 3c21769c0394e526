package main

import (
	"context"
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// fileRouteStore serves the routes declared in the config file. It stands
// in for the product's persistence layer behind the same read-only
// snapshot interface; routes were validated at config load.
type fileRouteStore struct {
	routes []transit.CommuteRoute
}

func newFileRouteStore(routes []transit.CommuteRoute) *fileRouteStore {
	return &fileRouteStore{routes: routes}
}

// ActiveRoutesForWeekday implements monitor.RouteStore.
func (s *fileRouteStore) ActiveRoutesForWeekday(_ context.Context, weekday time.Weekday) ([]transit.CommuteRoute, error) {
	out := make([]transit.CommuteRoute, 0, len(s.routes))
	for _, r := range s.routes {
		if r.ActiveOn(weekday) {
			out = append(out, r)
		}
	}
	return out, nil
}
