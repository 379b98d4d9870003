package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gitlab.com/ignitionrobotics/billing/gocardless/internal/cli"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/client"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	logger := log.New(os.Stderr, "[GoCardless] ", log.LstdFlags|log.Lmsgprefix)

	plans, err := client.NewClientFromEnv(logger)
	if err != nil {
		return fmt.Errorf("loading GoCardless config: %w", err)
	}

	return cli.NewRootCmd(&cli.App{Plans: plans, Out: os.Stdout}).Execute()
}
