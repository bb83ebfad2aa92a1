// Package config loads shelf settings from YAML or TOML files.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

// Config holds every setting of the shelf binary.
type Config struct {
	Geometry GeometryConfig `yaml:"geometry" toml:"geometry"`
	Shelf    ShelfConfig    `yaml:"shelf" toml:"shelf"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Redis    RedisConfig    `yaml:"redis" toml:"redis"`
	View     ViewConfig     `yaml:"view" toml:"view"`
	Server   ServerConfig   `yaml:"server" toml:"server"`
}

// GeometryConfig sizes one book slot on screen, in character cells.
type GeometryConfig struct {
	CellWidth  int `yaml:"cell_width" toml:"cell_width"`
	CellHeight int `yaml:"cell_height" toml:"cell_height"`
	Frame      int `yaml:"frame" toml:"frame"`
	TopGap     int `yaml:"top_gap" toml:"top_gap"`
}

// ShelfConfig is the shape of a brand-new shelf.
type ShelfConfig struct {
	BooksPerShelf int `yaml:"books_per_shelf" toml:"books_per_shelf"`
	Shelves       int `yaml:"shelves" toml:"shelves"`
}

// StorageConfig locates the database.
type StorageConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// RedisConfig enables change notification between sessions. An empty
// address disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr" toml:"addr"`
	Password string `yaml:"password" toml:"password"`
	DB       int    `yaml:"db" toml:"db"`
	Prefix   string `yaml:"prefix" toml:"prefix"`
}

// ViewConfig tunes the interactive view.
type ViewConfig struct {
	TickRate       int    `yaml:"tick_rate" toml:"tick_rate"`             // frames per second while animating
	AnimationTicks int    `yaml:"animation_ticks" toml:"animation_ticks"` // frames a book takes to slide into place
	LogFile        string `yaml:"log_file" toml:"log_file"`               // empty: next to the database
}

// ServerConfig configures `shelf serve`.
type ServerConfig struct {
	Address         string `yaml:"address" toml:"address"`
	HostKeyPath     string `yaml:"host_key_path" toml:"host_key_path"`
	IdleTimeoutSecs int    `yaml:"idle_timeout_secs" toml:"idle_timeout_secs"`
}

// ShelfGeometry converts the geometry section for the placement engine.
func (c Config) ShelfGeometry() shelf.Geometry {
	return shelf.Geometry{
		CellWidth:  c.Geometry.CellWidth,
		CellHeight: c.Geometry.CellHeight,
		Frame:      c.Geometry.Frame,
		TopGap:     c.Geometry.TopGap,
	}
}

// InitialGrid returns the shape used to seed an empty database.
func (c Config) InitialGrid() shelf.Grid {
	return shelf.Grid{Rows: c.Shelf.Shelves, Cols: c.Shelf.BooksPerShelf}
}

// IdleTimeout returns the SSH idle timeout.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSecs) * time.Second
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	g := c.Geometry
	switch {
	case g.CellWidth < 3:
		return fmt.Errorf("geometry.cell_width must be at least 3, got %d", g.CellWidth)
	case g.CellHeight < 2:
		return fmt.Errorf("geometry.cell_height must be at least 2, got %d", g.CellHeight)
	case g.Frame < 0 || g.TopGap < 0:
		return fmt.Errorf("geometry.frame and geometry.top_gap cannot be negative")
	case c.Shelf.BooksPerShelf < 1:
		return fmt.Errorf("shelf.books_per_shelf must be positive, got %d", c.Shelf.BooksPerShelf)
	case c.Shelf.Shelves < 1:
		return fmt.Errorf("shelf.shelves must be positive, got %d", c.Shelf.Shelves)
	case c.Storage.Path == "":
		return fmt.Errorf("storage.path is required")
	case c.Redis.Addr != "" && c.Redis.Prefix == "":
		return fmt.Errorf("redis.prefix is required when redis.addr is set")
	case c.View.TickRate < 1:
		return fmt.Errorf("view.tick_rate must be positive, got %d", c.View.TickRate)
	case c.View.AnimationTicks < 0:
		return fmt.Errorf("view.animation_ticks cannot be negative")
	}
	return nil
}
