package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gitlab.com/ignitionrobotics/billing/gocardless/internal/server"
)

// main prepares the config and runs the GoCardless sandbox HTTP server.
func main() {
	logger := log.New(os.Stdout, "[GoCardless Sandbox] ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix)

	if err := godotenv.Load(); err != nil {
		logger.Println("No .env file loaded:", err)
	}

	// Prepare the config
	cfg, err := server.Setup(logger)
	if err != nil {
		logger.Fatalln("Failed to initialize sandbox configuration:", err)
	}

	// Run the HTTP server with the given config
	if err = server.Run(cfg, logger); err != nil {
		logger.Fatalln("Failed to run HTTP server:", err)
	}

	logger.Println("Shutting HTTP server down...")
}
