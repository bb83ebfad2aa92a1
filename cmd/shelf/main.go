// shelf is a terminal bookshelf: drag books between slots with the mouse and
// the books in the way make room.
//
// Usage:
//
//	shelf view                 - Open the interactive shelf
//	shelf serve                - Serve the shelf over SSH
//	shelf list                 - Print the shelf layout
//	shelf capacity <n>         - Set books per shelf and re-pack
//	shelf rows add|remove      - Append or remove the last shelf
//	shelf arrange              - Re-pack the shelf grouped by class
//	shelf hand add|list|remove|shelve - Manage books not yet shelved
//
// Global flags:
//
//	--config <path>  - Config file (YAML or TOML)
//	--db <path>      - Database path (default from config: ~/.shelf/shelf.db)
//	--redis <addr>   - Redis address for change notification
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bookshelf/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagRedis   string
	flagVerbose bool

	// Set by the root PersistentPreRunE
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Shelf - arrange your books in the terminal",
	Long: `Shelf draws your bookshelf in the terminal. Drag a book onto an
occupied slot and the books in the way are pushed aside.

Available commands:
  view      - Interactive shelf
  serve     - Start SSH server for remote sessions
  list      - Print the current layout
  capacity  - Set the number of books per shelf
  rows      - Add or remove a shelf
  arrange   - Re-pack the shelf grouped by class
  hand      - Books picked up but not shelved yet

Examples:
  shelf view
  shelf hand add 978-4-10-101001-5 --title "Kokoro" --class 913
  shelf hand shelve 9784101010015
  shelf capacity 8
  shelf serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to shelf database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagRedis, "redis", "", "Redis address for change notification (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(capacityCmd)
	rootCmd.AddCommand(rowsCmd)
	rootCmd.AddCommand(arrangeCmd)
	rootCmd.AddCommand(handCmd)
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		loaded.Storage.Path = flagDBPath
	}
	if flagRedis != "" {
		loaded.Redis.Addr = flagRedis
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger = newLogger(os.Stderr)
	return nil
}
