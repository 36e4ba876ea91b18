package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	configs "github.com/avvvet/torcedor-hub/configs"
	mongodb "github.com/avvvet/torcedor-hub/internal/db"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/backend"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/broker"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/clock"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/config"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/db"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/handlers"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/service"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/store"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/ticker"
	natscli "github.com/avvvet/torcedor-hub/internal/nats"
)

const SERVICE_NAME = "hub"

var instanceId string

func init() {
	instanceId = "001"
	configs.Logging(SERVICE_NAME + "_service_" + instanceId)
	configs.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg := config.Load()
	configs.CreateUniqueInstance(SERVICE_NAME)

	snapshots, closeSnapshots, err := openSnapshots(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s snapshot store: %v", cfg.SnapshotBackend, err)
	}
	defer closeSnapshots()
	log.Infof("snapshot store: %s", cfg.SnapshotBackend)

	api := backend.NewClient(backend.Config{BaseURL: cfg.APIURL, Timeout: cfg.HTTPTimeout})
	clk := clock.Real{}

	matchService := service.NewMatchService(api, snapshots, clk)
	predictionService := service.NewPredictionService(api, snapshots, matchService, clk)
	metricsService := service.NewMetricsService(api)
	leagueService := service.NewLeagueService(api, snapshots, cfg.LeagueID, cfg.Season)
	dashboardService := service.NewDashboardService(matchService, predictionService, metricsService, clk)

	// Connect to NATS
	n, err := natscli.Connect(SERVICE_NAME + "_service_" + instanceId)
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// countdown ticks for watching sockets
	b := broker.NewBroker(n.Conn)
	board := func(ctx context.Context) service.MatchList {
		return matchService.Upcoming(ctx)
	}
	b.Ticker = ticker.New(clk, cfg.TickInterval, cfg.BoardRefresh, board, b.PublishTick)
	defer b.Ticker.Stop()

	sub, err := b.SubscribSocketService(natscli.TopicSocketService)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := configs.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(configs.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(handlers.Services{
		Dashboard:   dashboardService,
		Matches:     matchService,
		Predictions: predictionService,
		League:      leagueService,
		Metrics:     metricsService,
	})
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}

// openSnapshots picks where last-good API responses are kept.
func openSnapshots(cfg config.Config) (store.SnapshotStore, func(), error) {
	switch cfg.SnapshotBackend {
	case config.SnapshotMemory:
		return store.NewMemorySnapshotStore(cfg.SnapshotTTL), func() {}, nil

	case config.SnapshotPostgres:
		pool, err := db.Connect(cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("pg connection established successfully")
		return store.NewPgSnapshotStore(pool, cfg.SnapshotTTL), db.ClosePool, nil

	case config.SnapshotMongo:
		database, cancel, err := mongodb.ConnectToDB(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		cancel()

		ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := mongodb.CreateTTLIndexForCollection(ctx, database, store.SnapshotCollection); err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := database.Client().Disconnect(ctx); err != nil {
				log.Errorf("Error disconnecting mongodb: %s", err)
			}
		}
		return store.NewMongoSnapshotStore(database, cfg.SnapshotTTL), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
