package config

import (
	_ "embed"
)

//go:embed defaults/shelf.yaml
var defaultShelfYAML []byte

// Default returns the built-in configuration. It matches defaults/shelf.yaml.
func Default() Config {
	return Config{
		Geometry: GeometryConfig{CellWidth: 6, CellHeight: 4, Frame: 1, TopGap: 2},
		Shelf:    ShelfConfig{BooksPerShelf: 5, Shelves: 3},
		Storage:  StorageConfig{Path: "~/.shelf/shelf.db"},
		Redis:    RedisConfig{Prefix: "shelf"},
		View:     ViewConfig{TickRate: 60, AnimationTicks: 8},
		Server:   ServerConfig{Address: ":23235", IdleTimeoutSecs: 1800},
	}
}
