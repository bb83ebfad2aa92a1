package main

import (
	"github.com/spf13/cobra"
)

var arrangeCmd = &cobra.Command{
	Use:   "arrange",
	Short: "Re-pack the shelf grouped by class",
	Args:  cobra.NoArgs,
	RunE:  runArrange,
}

func runArrange(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	s, err := sess.app.Arrange(cmd.Context())
	if err != nil {
		return explain(err)
	}
	printShelf(s)
	return nil
}
