package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bookshelf/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the shelf SSH server",
	Long: `Start an SSH server that serves the interactive shelf.

Every connection gets its own view of the same database. With Redis
configured, a change made in one session refreshes all the others.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.shelf/host_key

Examples:
  shelf serve                           # Address from config (:23235)
  shelf serve --ssh :2222               # Listen on port 2222
  shelf serve --redis localhost:6379    # Sync sessions through Redis

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	sc := tui.DefaultSSHServerConfig()
	sc.Address = cfg.Server.Address
	sc.HostKeyPath = cfg.Server.HostKeyPath
	if d := cfg.Server.IdleTimeout(); d > 0 {
		sc.IdleTimeout = d
	}
	if flagSSHAddr != "" {
		sc.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sc.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sc.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	sc.Geometry = cfg.ShelfGeometry()
	sc.TickRate = cfg.View.TickRate
	sc.AnimationTicks = cfg.View.AnimationTicks
	sc.Redis = redisOptions()
	sc.RedisPrefix = cfg.Redis.Prefix

	store, err := openStore()
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(sc, store, logger)
	if err != nil {
		store.Close()
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting shelf SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
