package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taskboard/taskboard/internal/api"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the taskboard server",
	Long:  `Start the taskboard server to serve the task tracking web application.`,
	Example: `taskboard serve --config config.yml
taskboard serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	defer connectCancel()
	db, err := database.New(connectCtx, cfg.Mongo)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	server, err := api.New(cfg, db)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	// Start the server in a goroutine
	go func() {
		log.Info("starting server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("taskboard started successfully")
	<-c
	log.Info("shutting down gracefully...")

	cancel()
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	if err := db.Close(closeCtx); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
