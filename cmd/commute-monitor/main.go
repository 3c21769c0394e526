package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/theoremus-urban-solutions/commute-monitor/config"
	"github.com/theoremus-urban-solutions/commute-monitor/internal"
	"github.com/theoremus-urban-solutions/commute-monitor/monitor"
	"github.com/theoremus-urban-solutions/commute-monitor/notify"
	"github.com/theoremus-urban-solutions/commute-monitor/provider"
	"github.com/theoremus-urban-solutions/commute-monitor/realtime"
	"github.com/theoremus-urban-solutions/commute-monitor/stations"
	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

func main() {
	mode := flag.String("mode", "monitor", "monitor|oneshot|stations")
	configPath := flag.String("config", "", "path to config.yml (default: ./config.yml)")
	query := flag.String("query", "", "station search query (stations mode)")
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	routes, err := cfg.CommuteRoutes()
	if err != nil {
		log.Fatalf("loading routes: %v", err)
	}

	client := provider.NewClient(cfg.Provider.BaseURL, cfg.ProviderTimeout(), cfg.Provider.RequestsPerSecond)

	var feed *realtime.Feed
	if cfg.Realtime.TripUpdatesURL != "" {
		feed = realtime.NewFeed(cfg.Realtime.TripUpdatesURL, cfg.RealtimeTimeout())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "stations":
		resolver := stations.NewResolver(client, cfg.FallbackStopAreas())
		stops := resolver.Resolve(ctx, *query)
		buf, _ := json.MarshalIndent(stops, "", "  ")
		fmt.Println(string(buf))

	case "oneshot":
		recorder := notify.NewRecorder(100)
		sched := newScheduler(cfg, client, feed, routes, recorder)
		sched.Tick(ctx)
		buf, _ := json.MarshalIndent(recorder.Events(), "", "  ")
		fmt.Println(string(buf))

	case "monitor":
		sched := newScheduler(cfg, client, feed, routes, notify.LogDispatcher{})
		log.Printf("monitoring %d route(s)", len(routes))
		if err := sched.Run(ctx); err != nil {
			log.Fatalf("scheduler: %v", err)
		}

	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func newScheduler(cfg config.AppConfig, client *provider.Client, feed *realtime.Feed, routes []transit.CommuteRoute, dispatcher monitor.Dispatcher) *monitor.Scheduler {
	sched, err := monitor.NewScheduler(monitor.SchedulerConfig{
		Provider:        client,
		Dispatcher:      dispatcher,
		Routes:          newFileRouteStore(routes),
		Feed:            feed,
		CallTimeout:     cfg.CallTimeout(),
		MaxConcurrent:   cfg.Monitor.MaxConcurrent,
		DebounceMinutes: cfg.Monitor.DebounceMinutes,
	})
	if err != nil {
		log.Fatalf("building scheduler: %v", err)
	}
	return sched
}
