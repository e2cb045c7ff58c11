package app

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/db"
	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/domain/auth"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/ledger"
	"github.com/xenking/storefront-checkout/internal/domain/order"
	"github.com/xenking/storefront-checkout/internal/events"
	"github.com/xenking/storefront-checkout/internal/handler"
	"github.com/xenking/storefront-checkout/internal/seed"
	"github.com/xenking/storefront-checkout/internal/storage/memory"
	"github.com/xenking/storefront-checkout/internal/storage/postgres"
	"github.com/xenking/storefront-checkout/pkg/health"
	"github.com/xenking/storefront-checkout/pkg/httpmiddleware"
)

// stores groups the repositories of one backend.
type stores struct {
	products  catalog.Repository
	discounts discount.Repository
	ledger    ledger.Ledger
	orders    order.Repository
	tx        order.Transactor
	apikeys   auth.Repository
}

// openStores connects the configured backend and registers its readiness
// check. The returned func releases it.
func openStores(ctx context.Context, cfg *Config, hc *health.Health) (*stores, func(), error) {
	lg := zctx.From(ctx)
	switch cfg.Storage {
	case StorageMemory:
		lg.Warn("Using in-memory storage, data is lost on restart")
		s := memory.New()
		products, err := seed.ParseProducts(db.SeedProducts)
		if err != nil {
			return nil, nil, err
		}
		target := seed.Target{Product: s.UpsertProduct, Discount: s.UpsertDiscount}
		if err := seed.Apply(ctx, target, products, seed.Discounts(time.Now())); err != nil {
			return nil, nil, errors.Wrap(err, "seed memory store")
		}
		if cfg.OperatorAPIKey != "" {
			hash := auth.HashAPIKey(cfg.OperatorAPIKey, []byte(cfg.APIKeyPepper))
			if err := s.UpsertAPIKey(ctx, auth.APIKeyInfo{
				ID:      "operator",
				KeyHash: hash,
				Name:    "operator",
				Scopes:  []string{auth.ScopeOrdersRead, auth.ScopeOrdersWrite},
			}); err != nil {
				return nil, nil, errors.Wrap(err, "seed api key")
			}
		}
		return &stores{
			products:  s,
			discounts: s,
			ledger:    s,
			orders:    s,
			tx:        s,
			apikeys:   s,
		}, func() {}, nil

	default:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "create db pool")
		}
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, nil, errors.Wrap(err, "run migrations")
		}
		hc.AddReadinessCheck("postgres", 5*time.Second, health.PingCheck(pool))
		return &stores{
			products:  postgres.NewProductRepository(pool),
			discounts: postgres.NewDiscountRepository(pool),
			ledger:    postgres.NewLedger(pool),
			orders:    postgres.NewOrderRepository(pool),
			tx:        postgres.NewTransactor(pool),
			apikeys:   postgres.NewAPIKeyRepository(pool),
		}, pool.Close, nil
	}
}

// openPublisher returns the Kafka publisher, or a no-op one when no
// brokers are configured.
func openPublisher(cfg *Config, m Telemetry, hc *health.Health) (order.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return order.NopPublisher{}, func() {}, nil
	}
	p, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic,
		events.WithTracerProvider(m.TracerProvider()),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create kafka publisher")
	}
	hc.AddReadinessCheck("kafka", 5*time.Second, health.KafkaCheck(cfg.Kafka.Brokers))
	return p, func() { _ = p.Close() }, nil
}

// Telemetry provides the OpenTelemetry providers. *app.Telemetry from
// go-faster/sdk satisfies it.
type Telemetry interface {
	TracerProvider() trace.TracerProvider
	MeterProvider() metric.MeterProvider
}

// NewHandler wires storage, services and middleware into the root HTTP
// handler. Readiness checks are registered on hc. The returned func
// releases storage and the event publisher.
func NewHandler(ctx context.Context, lg *zap.Logger, m Telemetry, cfg *Config, hc *health.Health) (http.Handler, func(), error) {
	var closers []func()
	release := func() {
		for _, c := range slices.Backward(closers) {
			c()
		}
	}
	done := false
	defer func() {
		if !done {
			release()
		}
	}()

	st, closeStores, err := openStores(ctx, cfg, hc)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStores)

	publisher, closePublisher, err := openPublisher(cfg, m, hc)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closePublisher)

	calc, err := cfg.Pricing.Calculator()
	if err != nil {
		return nil, nil, errors.Wrap(err, "create calculator")
	}
	tolerance, err := cfg.Pricing.Tolerance()
	if err != nil {
		return nil, nil, err
	}
	orderService, err := order.NewService(order.Deps{
		Products:       st.products,
		Discounts:      st.discounts,
		Orders:         st.orders,
		Ledger:         st.ledger,
		Transactor:     st.tx,
		Calculator:     calc,
		Events:         publisher,
		Tolerance:      tolerance,
		PublishTimeout: cfg.Kafka.Timeout,
		TracerProvider: m.TracerProvider(),
		MeterProvider:  m.MeterProvider(),
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "create order service")
	}

	tokens, err := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create token issuer")
	}

	h := handler.New(
		handler.Config{ImageBaseURL: cfg.ImageBaseURL},
		st.products,
		orderService,
		cfg.Pricing.Policy(),
	)
	security := handler.NewSecurityHandler(tokens, st.apikeys, []byte(cfg.APIKeyPepper))

	oasServer, err := handler.NewServer(h, security,
		oas.WithTracerProvider(m.TracerProvider()),
		oas.WithMeterProvider(m.MeterProvider()),
	)
	if err != nil {
		return nil, nil, err
	}

	// Mux: health endpoints + ogen API routes on one server.
	routeFinder := httpmiddleware.MakeRouteFinder[oas.Route](oasServer)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", hc.LiveEndpoint)
	mux.HandleFunc("GET /readyz", hc.ReadyEndpoint)
	mux.Handle("/api/", oasServer)

	done = true
	return httpmiddleware.Wrap(mux,
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins:     cfg.CORS.Origins,
			AllowHeaders:     []string{"Content-Type", "Authorization", handler.APIKeyHeader, httpmiddleware.RequestIDHeader},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           86400,
		}),
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Max:      cfg.RateLimit.Max,
			WriteMax: cfg.RateLimit.WriteMax,
			Window:   cfg.RateLimit.Window,
			KeyFunc:  httpmiddleware.KeyBySubject(security.Subject),
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(lg),
		httpmiddleware.Instrument("storefront-checkout", routeFinder, m),
		httpmiddleware.LogRequests(routeFinder),
		httpmiddleware.Labeler(routeFinder),
	), release, nil
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("storage", cfg.Storage),
		zap.String("currency", cfg.Pricing.Currency),
	)
	ctx = zctx.Base(ctx, lg)

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	root, release, err := NewHandler(ctx, lg, m, cfg, healthSvc)
	if err != nil {
		return err
	}
	defer release()

	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler:           root,
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
