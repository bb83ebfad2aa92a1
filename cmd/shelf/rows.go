package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Add or remove a shelf",
}

func init() {
	rowsCmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Append an empty shelf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return changeRows(cmd, (*shelf.App).AddRow)
		},
	})
	rowsCmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the last shelf (it must be empty)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return changeRows(cmd, (*shelf.App).RemoveRow)
		},
	})
}

func changeRows(cmd *cobra.Command, op func(*shelf.App, context.Context) (shelf.Shelf, error)) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	s, err := op(sess.app, cmd.Context())
	if err != nil {
		return explain(err)
	}
	printShelf(s)
	return nil
}
