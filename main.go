// Command chainreaction starts the Chain Reaction game server.
//
// It supports two modes:
//  1. "serve" (default) - runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp-stdio" - runs an MCP stdio server over the same in-process game service
//
// Flags control host/port, debug logging, the automated opponent's seed, and
// the retention window for idle matches.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"

	"github.com/gridgames/chainreaction/api"
	"github.com/gridgames/chainreaction/game/ai"
	"github.com/gridgames/chainreaction/game/service"
	"github.com/gridgames/chainreaction/game/session"
	"github.com/gridgames/chainreaction/transport/mcp"
	"github.com/gridgames/chainreaction/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Chain Reaction Game Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "chainreaction",
		Usage:   "Chain Reaction game server with REST, WebSocket, and MCP transports",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.IntFlag{
				Name:  "ai-seed",
				Value: 0,
				Usage: "Seed for the automated opponent (0 = time-based)",
			},
			&cli.DurationFlag{
				Name:  "match-ttl",
				Value: 24 * time.Hour,
				Usage: "Idle time after which matches are removed",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP server with REST API, WebSocket, and MCP endpoint (default)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runHTTPServer(ctx, cmd)
				},
			},
			{
				Name:  "mcp-stdio",
				Usage: "Run an MCP stdio server over an in-process game service",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStdioMCP(cmd)
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// No subcommand given: serve.
			return runHTTPServer(ctx, cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

// setupLogging configures the standard logger from the debug flag.
func setupLogging(cmd *cli.Command) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// initializeServices wires the match manager, the automated opponent, and the
// game service, and starts the background cleanup routine.
func initializeServices(cmd *cli.Command) (service.GameService, *session.Manager) {
	manager := session.NewManager()

	var opponent *ai.Opponent
	if seed := cmd.Int("ai-seed"); seed != 0 {
		opponent = ai.NewOpponentWithSeed(int64(seed))
	} else {
		opponent = ai.NewOpponent()
	}

	gameService := service.NewGameService(manager, opponent)

	go matchCleanupRoutine(manager, cmd.Duration("match-ttl"))

	return gameService, manager
}

// matchCleanupRoutine periodically removes matches that have not been
// accessed within the retention window.
func matchCleanupRoutine(manager *session.Manager, maxAge time.Duration) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if removed := manager.CleanupExpired(maxAge); removed > 0 {
			log.Printf("Cleaned up %d expired matches", removed)
		}
	}
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an
// /mcp endpoint, and blocks until a shutdown signal arrives.
func runHTTPServer(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	log.Printf("Starting %s v%s", AppName, Version)

	gameService, _ := initializeServices(cmd)

	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(gameService, hub)
	mcpServer := mcp.NewServer(gameService)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("port")))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?match=<match_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// runStdioMCP runs the MCP stdio server over an in-process game service.
// Everything an agent needs is reachable through the tools, so no HTTP
// server is started.
func runStdioMCP(cmd *cli.Command) error {
	setupLogging(cmd)
	log.Printf("Starting %s v%s (MCP stdio)", AppName, Version)

	gameService, _ := initializeServices(cmd)
	mcpServer := mcp.NewServer(gameService)

	log.Println("MCP stdio server ready")
	if err := server.ServeStdio(mcpServer.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
