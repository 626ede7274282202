package main

import (
	"github.com/spf13/cobra"

	"tmuxman/internal/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server exposing session management.

ROUTES

    GET    /health
    GET    /api/sessions
    POST   /api/sessions
    GET    /api/sessions/{project}/{feature}
    DELETE /api/sessions/{project}/{feature}
    POST   /api/windows/{project}/{feature}/terminal

The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Bind address (default: 127.0.0.1:8420)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	manager, err := buildManager(cfg)
	if err != nil {
		return err
	}
	launcher := buildLauncher(cfg)

	srv := server.NewServer(cfg.ListenAddr, manager, launcher)
	return srv.Start(cmd.Context())
}
