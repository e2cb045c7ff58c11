package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/db"
	"github.com/xenking/storefront-checkout/internal/domain/auth"
	"github.com/xenking/storefront-checkout/internal/seed"
	"github.com/xenking/storefront-checkout/internal/storage/postgres"
)

type options struct {
	databaseURL  string
	productsFile string
	apiKey       string
	apiKeyPepper string
	jwtSecret    string
	devUser      string
}

func main() {
	_ = godotenv.Load()

	var o options
	flag.StringVar(&o.databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&o.productsFile, "products-file", "", "products JSON file (defaults to the embedded catalog)")
	flag.StringVar(&o.apiKey, "api-key", "", "operator API key to seed (or SHOP_SEED_API_KEY env)")
	flag.StringVar(&o.apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or SHOP_API_KEY_PEPPER env)")
	flag.StringVar(&o.jwtSecret, "jwt-secret", "", "print a shopper token signed with this secret (or SHOP_JWT_SECRET env)")
	flag.StringVar(&o.devUser, "dev-user", "dev-user", "subject of the printed shopper token")
	flag.Parse()

	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	o.databaseURL = orEnv(o.databaseURL, "DATABASE_URL")
	o.apiKey = orEnv(o.apiKey, "SHOP_SEED_API_KEY")
	o.apiKeyPepper = orEnv(o.apiKeyPepper, "SHOP_API_KEY_PEPPER")
	o.jwtSecret = orEnv(o.jwtSecret, "SHOP_JWT_SECRET")

	if o.databaseURL == "" {
		lg.Fatal("Database URL is required: set --database-url or DATABASE_URL")
	}
	if o.apiKey == "" {
		lg.Fatal("API key is required: set --api-key or SHOP_SEED_API_KEY")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = zctx.Base(ctx, lg)

	if err := run(ctx, o); err != nil {
		lg.Fatal("Seed failed", zap.Error(err))
	}
	lg.Info("Seed completed")
}

func orEnv(v, key string) string {
	if v != "" {
		return v
	}
	return os.Getenv(key)
}

func run(ctx context.Context, o options) error {
	lg := zctx.From(ctx)

	lg.Info("Connecting to database")
	pool, err := postgres.NewPool(ctx, o.databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	lg.Info("Running migrations")
	if err := postgres.Migrate(o.databaseURL); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	data := db.SeedProducts
	if o.productsFile != "" {
		if data, err = os.ReadFile(o.productsFile); err != nil {
			return errors.Wrap(err, "read products file")
		}
	}
	products, err := seed.ParseProducts(data)
	if err != nil {
		return err
	}

	productRepo := postgres.NewProductRepository(pool)
	discountRepo := postgres.NewDiscountRepository(pool)
	if err := seed.Apply(ctx, seed.Target{
		Product:  productRepo.Upsert,
		Discount: discountRepo.Upsert,
	}, products, seed.Discounts(time.Now())); err != nil {
		return err
	}

	if err := postgres.NewAPIKeyRepository(pool).Create(ctx, auth.APIKeyInfo{
		ID:      "default",
		KeyHash: auth.HashAPIKey(o.apiKey, []byte(o.apiKeyPepper)),
		Name:    "Default operator key",
		Scopes:  []string{auth.ScopeOrdersRead, auth.ScopeOrdersWrite},
	}); err != nil {
		return errors.Wrap(err, "seed api key")
	}
	lg.Info("Upserted API key", zap.String("id", "default"))

	if o.jwtSecret != "" {
		issuer, err := auth.NewTokenIssuer([]byte(o.jwtSecret), 30*24*time.Hour)
		if err != nil {
			return err
		}
		token, err := issuer.Issue(o.devUser)
		if err != nil {
			return err
		}
		// Printed on stdout so it can be captured by scripts.
		fmt.Println(token)
	}
	return nil
}
