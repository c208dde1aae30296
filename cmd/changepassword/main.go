// cmd/changepassword/main.go: reset a user's password from the terminal.
// Usage: go run ./cmd/changepassword [-user name] [-password pw]
// Missing values are prompted for.
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
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	username := flag.String("user", "", "username")
	password := flag.String("password", "", "new password")
	flag.Parse()

	in := bufio.NewScanner(os.Stdin)
	if *username == "" {
		*username = prompt(in, "Enter username: ")
	}
	if *password == "" {
		*password = prompt(in, "Enter new password: ")
	}
	if *username == "" || *password == "" {
		log.Fatal().Msg("username and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	authSvc := service.NewAuthService(repository.NewUserRepository(db), cfg)
	err = authSvc.ChangePassword(context.Background(), *username, *password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		fmt.Printf("User %q not found\n", *username)
		os.Exit(1)
	case err != nil:
		log.Fatal().Err(err).Msg("password change failed")
	}
	fmt.Printf("Password for %q updated\n", *username)
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}
