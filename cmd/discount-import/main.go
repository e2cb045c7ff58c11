package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/importer"
	"github.com/xenking/storefront-checkout/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	var (
		pattern     string
		databaseURL string
		dryRun      bool
		opts        importer.Options
	)
	flag.StringVar(&pattern, "files", "data/campaigns/*.csv.gz", "glob of gzip-compressed campaign files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.BoolVar(&dryRun, "dry-run", false, "scan and report without writing")
	flag.UintVar(&opts.Capacity, "capacity", 1_000_000, "expected codes per file")
	flag.Float64Var(&opts.FalsePositiveRate, "fpr", 0.001, "bloom filter false positive rate")
	flag.Uint64Var(&opts.ProgressEvery, "progress-every", 1_000_000, "log progress every N lines")
	flag.Parse()

	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" && !dryRun {
		lg.Fatal("Database URL is required: set --database-url or DATABASE_URL")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = zctx.Base(ctx, lg)

	if err := run(ctx, pattern, databaseURL, dryRun, opts); err != nil {
		lg.Fatal("Discount import failed", zap.Error(err))
	}
	lg.Info("Discount import completed")
}

func run(ctx context.Context, pattern, databaseURL string, dryRun bool, opts importer.Options) error {
	lg := zctx.From(ctx)
	files, err := filepath.Glob(pattern)
	if err != nil {
		return errors.Wrap(err, "glob files")
	}
	if len(files) == 0 {
		return errors.Errorf("no files match %s", pattern)
	}
	sort.Strings(files)

	res, err := importer.Scan(ctx, files, opts)
	if err != nil {
		return err
	}

	dups := make([]string, 0, len(res.Duplicates))
	for code := range res.Duplicates {
		dups = append(dups, code)
	}
	sort.Strings(dups)
	for _, code := range dups {
		var in []string
		for _, i := range res.Duplicates[code] {
			in = append(in, files[i])
		}
		lg.Warn("Code appears in several campaigns, skipped", zap.String("code", code), zap.Strings("files", in))
	}
	lg.Info("Scan complete", zap.Int("codes", len(res.Codes)), zap.Int("duplicates", len(dups)))

	if dryRun || len(res.Codes) == 0 {
		return nil
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()
	if err := postgres.Migrate(databaseURL); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := postgres.NewDiscountRepository(pool)
	for i, c := range res.Codes {
		if err := repo.Upsert(ctx, c); err != nil {
			return errors.Wrapf(err, "upsert %s", c.Code)
		}
		if (i+1)%1000 == 0 || i+1 == len(res.Codes) {
			lg.Info("Write progress", zap.Int("written", i+1), zap.Int("total", len(res.Codes)))
		}
	}
	return nil
}
