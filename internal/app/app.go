package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/elyvra/commerce-api/internal/domain/admin"
	"github.com/elyvra/commerce-api/internal/domain/cart"
	"github.com/elyvra/commerce-api/internal/domain/content"
	"github.com/elyvra/commerce-api/internal/domain/coupon"
	"github.com/elyvra/commerce-api/internal/domain/order"
	"github.com/elyvra/commerce-api/internal/domain/product"
	"github.com/elyvra/commerce-api/internal/domain/stats"
	"github.com/elyvra/commerce-api/internal/handler"
	"github.com/elyvra/commerce-api/internal/storage/mongodb"
	"github.com/elyvra/commerce-api/pkg/health"
	"github.com/elyvra/commerce-api/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	db, err := mongodb.Connect(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		return errors.Wrap(err, "connect mongo")
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			lg.Error("Mongo disconnect error", zap.Error(err))
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "ensure indexes")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("mongo", 5*time.Second, health.MongoPingCheck(db.Client()))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories.
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	couponRepo := mongodb.NewCouponRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	blogRepo := mongodb.NewBlogPostRepository(db)
	pageRepo := mongodb.NewStaticPageRepository(db)

	// Domain services.
	couponValidator := coupon.NewRepoValidator(couponRepo)
	productSvc := product.NewService(productRepo)
	cartSvc := cart.NewService(cartRepo, productRepo)
	orderSvc := order.NewService(orderRepo, customerRepo, couponValidator)
	couponSvc := coupon.NewService(couponRepo)
	adminSvc := admin.NewService(adminRepo)
	contentSvc := content.NewService(blogRepo, pageRepo)
	statsSvc := stats.NewService(orderRepo, productRepo, cartRepo, customerRepo)

	// HTTP surface: health endpoints + API routes on one mux.
	h := handler.NewHandler(productSvc, cartSvc, orderSvc, couponSvc, customerRepo, adminSvc, contentSvc, statsSvc)
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Routes(mux)

	wrapped := httpmiddleware.Wrap(mux,
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins:     cfg.CORS.Origins,
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           86400,
		}),
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.LogRequests(),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(wrapped, "elyvra-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
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
