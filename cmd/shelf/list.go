package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the shelf layout",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Fetch(cmd.Context())
	if err != nil {
		return err
	}
	printShelf(s)
	return nil
}

func printShelf(s shelf.Shelf) {
	fmt.Printf("%d shelves x %d books, %d shelved\n", s.Grid.Rows, s.Grid.Cols, len(s.Items))
	for row := 0; row < s.Grid.Rows; row++ {
		fmt.Println()
		cyan.Printf("Shelf %d\n", row+1)

		items := s.Items.Row(row)
		if len(items) == 0 {
			faint.Println("  (empty)")
			continue
		}
		for _, it := range items {
			title := it.Title
			if title == "" {
				title = "-"
			}
			fmt.Printf("  %-3d %-13s  %s\n", it.Cell.Col+1, it.Key, title)
		}
	}
}
