package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"storefront-checkout-service/internal/adapters/cache"
	"storefront-checkout-service/internal/adapters/geocode"
	"storefront-checkout-service/internal/adapters/repositories"
	"storefront-checkout-service/internal/api"
	"storefront-checkout-service/internal/config"
	"storefront-checkout-service/internal/platform/db"
	"storefront-checkout-service/internal/ports"
	"storefront-checkout-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Geoapify) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if strings.TrimSpace(cfg.GeoapifyAPIKey) == "" {
		log.Fatal("GEOAPIFY_API_KEY is required")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Initialize schema on startup for local runs; dbtool handles seeding.
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}

	geocoder, err := geocode.NewGeoapifyGeocoder(cfg.GeoapifyAPIKey)
	if err != nil {
		log.Fatal(err)
	}

	store := repositories.NewPostgresStore(database)

	// The selected-vendor cache is optional; without Redis the checkout flow
	// simply skips the write-through.
	var selectedVendors ports.SelectedVendorCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		selectedVendors = cache.NewRedisSelectedVendorCache(client, cfg.SelectedVendorTTL)
	} else {
		log.Println("REDIS_ADDR not set; selected-vendor cache disabled")
	}

	checkout := &services.CheckoutService{
		Geocoder:        geocoder,
		Vendors:         store,
		Cart:            store,
		Orders:          store,
		SelectedVendors: selectedVendors,
	}

	router := api.NewRouter(api.Dependencies{
		Vendors:  store,
		Products: store,
		Cart:     store,
		Orders:   store,
		Cache:    selectedVendors,
		Checkout: checkout,
	})

	// Write timeout leaves headroom for a cold checkout: one delivery geocode
	// plus the per-vendor fan-out against the external API.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
