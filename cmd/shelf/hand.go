package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
	"github.com/vovakirdan/tui-bookshelf/internal/storage"
)

var (
	flagTitle   string
	flagAuthors string
	flagCover   string
	flagClass   string
)

var handCmd = &cobra.Command{
	Use:   "hand",
	Short: "Books picked up but not shelved yet",
	Long: `The hand holds books you picked up but have not put on the shelf.
Shelving books from the hand re-packs the shelf grouped by class.

Examples:
  shelf hand add 978-4-10-101001-5 --title "Kokoro" --authors "Natsume Soseki" --class 913
  shelf hand list
  shelf hand remove 9784101010015
  shelf hand shelve 9784101010015 4003101014`,
}

var handAddCmd = &cobra.Command{
	Use:   "add <isbn>",
	Short: "Put a book in the hand",
	Args:  cobra.ExactArgs(1),
	RunE:  runHandAdd,
}

var handListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the books in the hand",
	Args:  cobra.NoArgs,
	RunE:  runHandList,
}

var handRemoveCmd = &cobra.Command{
	Use:   "remove <isbn>",
	Short: "Drop a book from the hand",
	Args:  cobra.ExactArgs(1),
	RunE:  runHandRemove,
}

var handShelveCmd = &cobra.Command{
	Use:   "shelve <isbn>...",
	Short: "Move books from the hand onto the shelf",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHandShelve,
}

func init() {
	handAddCmd.Flags().StringVar(&flagTitle, "title", "", "Book title")
	handAddCmd.Flags().StringVar(&flagAuthors, "authors", "", "Authors, comma separated")
	handAddCmd.Flags().StringVar(&flagCover, "cover", "", "Cover image URL")
	handAddCmd.Flags().StringVar(&flagClass, "class", "", "Classification code used to group books")

	handCmd.AddCommand(handAddCmd)
	handCmd.AddCommand(handListCmd)
	handCmd.AddCommand(handRemoveCmd)
	handCmd.AddCommand(handShelveCmd)
}

func runHandAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	added, err := sess.store.AddToHand(cmd.Context(), storage.Book{
		ISBN:    args[0],
		Title:   flagTitle,
		Authors: flagAuthors,
		Cover:   flagCover,
		Class:   flagClass,
	})
	if err != nil {
		return explain(err)
	}
	if !added {
		faint.Printf("%s already exists in the hand\n", args[0])
		return nil
	}
	sess.app.Changed(cmd.Context(), shelf.EventHand)
	success("Added %s to the hand", args[0])
	return nil
}

func runHandList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Hand(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("The hand is empty.")
		return nil
	}

	// Print header
	cyan.Printf("  %-13s  %-6s  %-16s  %s\n", "ISBN", "Class", "Added", "Title")
	fmt.Printf("  %-13s  %-6s  %-16s  %s\n", "----", "-----", "-----", "-----")

	for _, e := range entries {
		fmt.Printf("  %-13s  %-6s  %-16s  %s\n",
			e.ISBN, e.Class, e.CreatedAt.Format("2006-01-02 15:04"), e.Title)
	}
	return nil
}

func runHandRemove(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.store.RemoveFromHand(cmd.Context(), args[0]); err != nil {
		return explain(err)
	}
	sess.app.Changed(cmd.Context(), shelf.EventHand)
	success("Removed %s from the hand", args[0])
	return nil
}

func runHandShelve(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.store.ShelveFromHand(cmd.Context(), args); err != nil {
		return explain(err)
	}
	sess.app.Changed(cmd.Context(), shelf.EventHand)

	s, err := sess.app.Load(cmd.Context())
	if err != nil {
		return err
	}
	printShelf(s)
	return nil
}
