// cmd/seed/main.go: first-run setup: fuel types, pumps, default accounts and initial prices.
// Usage: go run ./cmd/seed -prices Diesel=50,Diesel100=45
// The admin password comes from -admin-password, FUELPOS_ADMIN_PASSWORD or a prompt.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"fuelpos/internal/config"
	"fuelpos/internal/infra"
	"fuelpos/internal/repository"
	"fuelpos/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var opts service.SeedOptions
	var prices string
	flag.StringVar(&opts.AdminUsername, "admin", "admin", "admin username")
	flag.StringVar(&opts.AdminPassword, "admin-password", os.Getenv("FUELPOS_ADMIN_PASSWORD"), "admin password")
	flag.StringVar(&opts.EmployeeUsername, "employee", "user123", "employee username")
	flag.StringVar(&opts.EmployeePassword, "employee-password", "qwertyuiop", "employee password")
	flag.StringVar(&prices, "prices", "", "initial prices, e.g. Diesel=50,Diesel100=45")
	flag.Parse()

	initial, err := parsePrices(prices)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -prices")
	}
	opts.InitialPrices = initial

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	userRepo := repository.NewUserRepository(db)
	fuelRepo := repository.NewFuelRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	pricingSvc := service.NewPricingService(priceRepo, fuelRepo, nil, cfg.BulkThresholdLiters)
	seeder := service.NewSeedService(fuelRepo, userRepo, priceRepo, pricingSvc)

	ctx := context.Background()
	res, err := seeder.Seed(ctx, opts)
	if errors.Is(err, service.ErrAdminPasswordRequired) {
		opts.AdminPassword = prompt(fmt.Sprintf("Password for %s: ", opts.AdminUsername))
		res, err = seeder.Seed(ctx, opts)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	if len(res.UsersCreated) == 0 {
		fmt.Println("Accounts already exist, none created")
	} else {
		fmt.Printf("Created accounts: %s\n", strings.Join(res.UsersCreated, ", "))
	}
	fmt.Printf("Prices set: %d\n", res.PricesSet)
}

// parsePrices reads "Name=value" pairs separated by commas.
func parsePrices(raw string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected Name=value, got %q", pair)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[strings.TrimSpace(name)] = d
	}
	return out, nil
}

func prompt(label string) string {
	fmt.Print(label)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		log.Fatal().Msg("no input")
	}
	return strings.TrimSpace(sc.Text())
}
