package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/naturescrunch/storefront/internal/cart"
	"github.com/naturescrunch/storefront/internal/checkout"
	"github.com/naturescrunch/storefront/internal/config"
	"github.com/naturescrunch/storefront/internal/events"
	h "github.com/naturescrunch/storefront/internal/http"
	"github.com/naturescrunch/storefront/internal/invoice"
	"github.com/naturescrunch/storefront/internal/menu"
	"github.com/naturescrunch/storefront/internal/payment"
)

func main() {
	cfg := config.Load()

	// Cart store: in-memory for a single instance, redis when shared
	var store cart.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		store = cart.NewRedisStore(client)
		log.Printf("using redis cart store at %s", cfg.RedisAddr)
	} else {
		memStore := cart.NewMemoryStore()
		defer memStore.Close()
		store = memStore
	}
	carts := cart.NewService(store)

	catalog := menu.NewCatalog()

	gateway := payment.NewGateway(cfg.PaystackPublicKey, cfg.Currency, cfg.PaymentScriptURL)
	gateway.Start(context.Background())

	invoices := invoice.NewClient(cfg.ShopkeeperAPIURL, cfg.Shopkeeper)
	if missing := cfg.Shopkeeper.Missing(); len(missing) > 0 {
		log.Printf("invoicing not configured, missing: %v (orders will still complete)", missing)
	}

	var publisher checkout.EventPublisher
	if len(cfg.OrderEventsBrokers) > 0 {
		kafkaPublisher := events.NewPublisher(cfg.OrderEventsBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("publishing order events to %v", cfg.OrderEventsBrokers)
	}

	metrics := checkout.NewMetrics(prometheus.DefaultRegisterer)
	policy := checkout.Policy{Mode: cfg.FulfilmentMode, MinimumSpend: cfg.MinimumSpend}
	orch := checkout.NewOrchestrator(carts, gateway, invoices, publisher, policy, metrics)

	router := h.NewRouter(
		h.NewMenuHandler(catalog),
		h.NewCartHandler(carts, catalog),
		h.NewCheckoutHandler(orch),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("storefront starting on :%s (%s mode)", cfg.HTTPPort, cfg.FulfilmentMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
