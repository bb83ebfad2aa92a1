package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity <books-per-shelf>",
	Short: "Set the number of books per shelf",
	Long: `Set how many books fit on one shelf. The shelf is re-packed grouped by
class and gains shelves if the books no longer fit.

Examples:
  shelf capacity 8`,
	Args: cobra.ExactArgs(1),
	RunE: runCapacity,
}

func runCapacity(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("books per shelf must be a number, got %q", args[0])
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	s, err := sess.app.SetCapacity(cmd.Context(), n)
	if err != nil {
		return explain(err)
	}
	printShelf(s)
	return nil
}
