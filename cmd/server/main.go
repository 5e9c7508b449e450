package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"adsnow-blog/internal/bootstrap"
	"adsnow-blog/internal/common/pagination"
	"adsnow-blog/internal/config"
	"adsnow-blog/internal/extractor"
	"adsnow-blog/internal/infra/adapter/persistence/jsonfile"
	"adsnow-blog/internal/observability/logging"
	"adsnow-blog/internal/observability/slo"
	"adsnow-blog/internal/observability/tracing"
	"adsnow-blog/internal/repository"

	indexUC "adsnow-blog/internal/usecase/index"
	postUC "adsnow-blog/internal/usecase/post"
	publishUC "adsnow-blog/internal/usecase/publish"

	hhttp "adsnow-blog/internal/handler/http"
	hauth "adsnow-blog/internal/handler/http/auth"
	hfeed "adsnow-blog/internal/handler/http/feed"
	hpost "adsnow-blog/internal/handler/http/post"
	hpublish "adsnow-blog/internal/handler/http/publish"
	"adsnow-blog/internal/handler/http/requestid"
	authservice "adsnow-blog/internal/service/auth"

	_ "adsnow-blog/docs" // swagger docs
)

// @title           AdsNow Blog API
// @version         1.0
// @description     AdsNow マーケティングブログのバックエンド API
// @description     記事の作成・インポート、GitHub への公開、Google Indexing API への URL 送信を提供します。

// @contact.name   AdsNow
// @contact.url    https://adsnow.ro

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

const (
	maxBodyBytes   = 2 << 20
	maxHeaderBytes = 1 << 20
)

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	components, err := setupServer(cfg)
	if err != nil {
		logger.Error("failed to initialize server", slog.Any("error", err))
		os.Exit(1)
	}
	logComponents(logger, cfg, components)

	shutdownTracing := tracing.Init(cfg.TraceSampleRatio)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	handler := applyMiddleware(logger, setupRoutes(cfg, components), components.Tracker)
	if err := runServer(logger, cfg, handler, components.Tracker); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes the JSON logger and makes it the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// ServerComponents holds the services the routes are built from.
type ServerComponents struct {
	Store    repository.PostStore
	Posts    *postUC.Service
	Auth     *authservice.Service
	Indexer  *indexUC.Service
	Pipeline *publishUC.Pipeline // nil when no repository is configured
	Tracker  *slo.Tracker
}

// setupServer builds the services from cfg.
func setupServer(cfg *config.Config) (*ServerComponents, error) {
	auth, err := authservice.NewService(authservice.Config{
		AdminUser:     cfg.Auth.AdminUser,
		AdminPassword: cfg.Auth.AdminPassword,
		Secret:        cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
	})
	if err != nil {
		return nil, err
	}

	imp, err := bootstrap.Importer(cfg.Import)
	if err != nil {
		return nil, err
	}
	indexer, err := bootstrap.Indexer(*cfg)
	if err != nil {
		return nil, fmt.Errorf("indexing: %w", err)
	}
	gh, err := bootstrap.GitHub(cfg.GitHub)
	if err != nil {
		return nil, err
	}

	store := jsonfile.NewPostStore(cfg.ContentFile)
	ext := extractor.New(bootstrap.ExtractorOptions(cfg.Site))

	return &ServerComponents{
		Store:    store,
		Posts:    postUC.NewService(store, ext, imp),
		Auth:     auth,
		Indexer:  indexer,
		Pipeline: bootstrap.Pipeline(cfg.GitHub, gh, indexer),
		Tracker:  slo.NewTracker(),
	}, nil
}

func logComponents(logger *slog.Logger, cfg *config.Config, c *ServerComponents) {
	logger.Info("content store", slog.String("path", cfg.ContentFile))
	if c.Pipeline == nil {
		logger.Warn("publishing is disabled: GITHUB_OWNER and GITHUB_REPO are not set")
	} else {
		logger.Info("publishing enabled", slog.String("target", cfg.GitHub.Target()))
	}
	if !c.Indexer.Enabled() {
		logger.Warn("indexing is disabled: no Google service account configured")
	}
	if !cfg.Import.Enabled {
		logger.Info("import from URL is disabled")
	}
	if cfg.Site.URL == "" {
		logger.Warn("SITE_URL is not set: sitemap.xml and rss.xml are not served")
	}
}

// setupRoutes registers all HTTP routes (public and admin).
func setupRoutes(cfg *config.Config, c *ServerComponents) *http.ServeMux {
	mux := http.NewServeMux()

	// レート制限: 認証エンドポイントは1分間に AuthRateLimit リクエストまで
	authLimiter := hhttp.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	mux.Handle("POST /auth/token", authLimiter.Limit(hauth.TokenHandler(c.Auth)))

	// ヘルスチェックエンドポイント（認証不要）
	indexingSite := ""
	if c.Indexer.Enabled() {
		indexingSite = cfg.Site.URL
	}
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Store:        c.Store,
		Version:      cfg.Version,
		GitHubTarget: cfg.GitHub.Target(),
		SiteURL:      indexingSite,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: c.Store})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Swagger UI（認証不要）
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	requireAuth := hauth.Require(c.Auth)
	timeout := hhttp.Timeout(cfg.RequestTimeout)

	hpost.Register(mux, hpost.Handler{
		Svc:           c.Posts,
		PaginationCfg: pagination.DefaultConfig(),
	}, func(next http.Handler) http.Handler {
		return requireAuth(timeout(next))
	})

	site := bootstrap.Site(cfg.Site)
	// 公開は複数の API 呼び出しと検証待ちを含むため、タイムアウトをかけない
	hpublish.Register(mux, hpublish.Handler{
		Pipeline:    c.Pipeline,
		Posts:       c.Posts,
		Site:        site,
		SitemapPath: bootstrap.SitemapPath(cfg.GitHub),
	}, hpublish.IndexHandler{Svc: c.Indexer}, requireAuth)

	if site.URL != "" {
		hfeed.Register(mux, hfeed.Handler{
			Posts:    c.Posts,
			Site:     site,
			RSSItems: cfg.Site.RSSItems,
		})
	}
	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Middleware order: CORS → Request ID → Recovery → Logging → Body Limit → Tracing → Metrics → SLO
func applyMiddleware(logger *slog.Logger, handler http.Handler, tracker *slo.Tracker) http.Handler {
	// Apply in reverse order (innermost to outermost).
	// Metrics and SLO read the route pattern, so they sit directly on the mux.
	chain := hhttp.TrackSLO(tracker)(handler)
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.LimitRequestBody(maxBodyBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.CORS(chain)
	return chain
}

// runServer serves until SIGINT or SIGTERM, then drains connections for at
// most cfg.ShutdownTimeout.
func runServer(logger *slog.Logger, cfg *config.Config, handler http.Handler, tracker *slo.Tracker) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		MaxHeaderBytes:    maxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return tracker.Run(gctx, slo.DefaultWindow)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
