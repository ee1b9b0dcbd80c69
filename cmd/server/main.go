package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/memberdesk/memberdesk/internal/cache"
	"github.com/memberdesk/memberdesk/internal/common"
	"github.com/memberdesk/memberdesk/internal/config"
	"github.com/memberdesk/memberdesk/internal/http/health"
	"github.com/memberdesk/memberdesk/internal/http/v1/routes"
	appmiddleware "github.com/memberdesk/memberdesk/internal/middleware"
	"github.com/memberdesk/memberdesk/internal/respond"
	memberssvc "github.com/memberdesk/memberdesk/internal/service/members"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	storeTimeout   = 30 * time.Second
	refreshTimeout = 10 * time.Second
)

func main() {
	defer func() {
		if err := common.Sync(); err != nil {
			appmiddleware.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := common.Err(); err != nil {
		appmiddleware.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		appmiddleware.LogError(context.Background(), "configuration error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: storeTimeout}
	svc := memberssvc.NewClient(httpClient, cfg.StoreURL, memberssvc.WithAPIKey(cfg.StoreAPIKey))

	store := cache.New()
	store.OnInvalidate(refresher(svc, store))

	router := newRouter(svc, store)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		appmiddleware.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		appmiddleware.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		appmiddleware.LogInfo(context.Background(), "shutdown signal received")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appmiddleware.LogError(ctx, "server shutdown error", err)
	}
	appmiddleware.LogInfo(context.Background(), "server exited")
}

// newRouter assembles the middleware stack, the versioned API, and the health
// endpoint.
func newRouter(svc memberssvc.Service, store *cache.Store) chi.Router {
	respond.Install()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts the client IP from X-Real-IP or X-Forwarded-For.
		// Only safe behind a trusted reverse proxy.
		chimiddleware.RealIP,
		// Photo uploads top out at the store's 3 MB cap; leave headroom for
		// multipart framing.
		chimiddleware.RequestSize(4<<20),
		appmiddleware.RequestLogger(),
		appmiddleware.AccessLogger(),
		respond.Recoverer(),
	)

	apiRouter := chi.NewRouter()
	router.Mount("/v1", apiRouter)

	humaCfg := huma.DefaultConfig("MemberDesk API", Version)
	humaCfg.DocsPath = "/api-docs"
	humaCfg.Servers = []*huma.Server{{URL: "/v1"}}
	api := humachi.New(apiRouter, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, svc, store)

	router.Get("/health", health.Handler)

	return router
}

// refresher refetches invalidated cache entries in the background so reads
// after a mutation see fresh data without paying for the fetch themselves.
func refresher(svc memberssvc.Service, store *cache.Store) cache.Refresher {
	return func(ctx context.Context, key cache.Key) {
		ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()

		switch key.Kind {
		case cache.KindMember:
			member, err := svc.GetMember(ctx, key.ID)
			if err != nil {
				appmiddleware.LogWarn(ctx, "member refetch failed", zap.String("id", key.ID), zap.Error(err))
				return
			}
			store.Put(key, "", *member)
		case cache.KindMemberList:
			page, err := svc.ListMembers(ctx, 1, 10)
			if err != nil {
				appmiddleware.LogWarn(ctx, "member list refetch failed", zap.Error(err))
				return
			}
			store.Put(key, cache.ListVariant(1, 10), *page)
		}
	}
}
