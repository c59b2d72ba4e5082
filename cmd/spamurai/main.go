package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/spamurai/spamurai/internal/classify"
	"github.com/spamurai/spamurai/internal/closer"
	"github.com/spamurai/spamurai/internal/comment"
	"github.com/spamurai/spamurai/internal/config"
	"github.com/spamurai/spamurai/internal/event"
	"github.com/spamurai/spamurai/internal/github"
	"github.com/spamurai/spamurai/internal/ingest"
	"github.com/spamurai/spamurai/internal/llm"
	"github.com/spamurai/spamurai/internal/server"

	// Registered LLM providers.
	_ "github.com/spamurai/spamurai/internal/llm/anthropic"
	_ "github.com/spamurai/spamurai/internal/llm/openai"
)

var version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe(os.Args[2:])
	case "version":
		fmt.Printf("spamurai v%s\n", version)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: spamurai <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve    Start the webhook server")
	fmt.Println("  version  Print version information")
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to config file")
	envFile := fs.String("env-file", "", "Path to .env file (optional)")
	fs.Parse(args)

	// Load .env file if specified or exists
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("Warning: could not load env file %s: %v", *envFile, err)
		}
	} else {
		// Try default locations
		godotenv.Load(".env")
		godotenv.Load("/etc/spamurai/spamurai.env")
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// GitHub App collaborator
	privateKey, err := cfg.GitHub.PrivateKeyPEM()
	if err != nil {
		log.Fatalf("Failed to load GitHub App key: %v", err)
	}
	var ghOpts []github.Option
	if cfg.GitHub.APIBaseURL != "" {
		ghOpts = append(ghOpts, github.WithBaseURL(cfg.GitHub.APIBaseURL))
	}
	gh := github.New(cfg.GitHub.AppID, privateKey, ghOpts...)

	// LLM collaborator
	model, err := llm.NewClassifier(cfg)
	if err != nil {
		log.Fatalf("Failed to create classifier: %v", err)
	}

	// Wire the pipeline stages over a shared bus
	bus := event.NewBus()
	classify.New(bus, model).Register()
	comment.New(bus, gh).Register()

	closeTopic := event.TopicPRCommented
	if !cfg.Pipeline.CloseAfterComment {
		closeTopic = event.TopicPRAnalysed
	}
	closer.New(bus, gh).Register(closeTopic)

	ingestor := ingest.New(bus, gh, cfg.Events)

	// Create and start server
	srv := server.New(cfg, ingestor.Handle)

	log.Printf("Starting Spamurai server on %s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := srv.ListenAndServeWithShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
