package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

// Book is the catalog data of one volume.
type Book struct {
	ISBN    string
	Title   string
	Authors string
	Cover   string
	Class   string // classification code, e.g. NDC "913"
}

// HandEntry is a book picked up but not yet shelved.
type HandEntry struct {
	Book
	CreatedAt time.Time
}

// NormalizeISBN strips hyphens and spaces and checks for 10 or 13 characters
// of digits (a trailing X is allowed in ISBN-10).
func NormalizeISBN(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		switch {
		case r >= '0' && r <= '9', r == 'X':
			b.WriteRune(r)
		case r == '-' || r == ' ':
		default:
			return "", shelf.Reject(shelf.CodeInvalidBook, "invalid ISBN %q", raw)
		}
	}

	isbn := b.String()
	if len(isbn) != 10 && len(isbn) != 13 {
		return "", shelf.Reject(shelf.CodeInvalidBook, "ISBN %q must have 10 or 13 digits", raw)
	}
	if i := strings.IndexRune(isbn, 'X'); i >= 0 && (len(isbn) != 10 || i != 9) {
		return "", shelf.Reject(shelf.CodeInvalidBook, "invalid ISBN %q", raw)
	}
	return isbn, nil
}

// AddToHand stores a book in the hand. Adding an ISBN that is already there
// is not an error; added reports whether a row was inserted.
func (s *Store) AddToHand(ctx context.Context, b Book) (added bool, err error) {
	isbn, err := NormalizeISBN(b.ISBN)
	if err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO hand (isbn, title, authors, cover, class)
		 VALUES (?, ?, ?, ?, ?)`,
		isbn, b.Title, b.Authors, b.Cover, b.Class,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot add to hand: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// Hand lists the books in the hand, oldest first.
func (s *Store) Hand(ctx context.Context) ([]HandEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT isbn, title, authors, cover, class, created_at
		 FROM hand
		 ORDER BY created_at, isbn`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query hand: %w", err)
	}
	defer rows.Close()

	var entries []HandEntry
	for rows.Next() {
		var e HandEntry
		var createdAt any
		if err := rows.Scan(&e.ISBN, &e.Title, &e.Authors, &e.Cover, &e.Class, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RemoveFromHand deletes one book from the hand.
func (s *Store) RemoveFromHand(ctx context.Context, isbn string) error {
	if norm, err := NormalizeISBN(isbn); err == nil {
		isbn = norm
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM hand WHERE isbn = ?", isbn)
	if err != nil {
		return fmt.Errorf("storage: cannot remove from hand: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return shelf.Reject(shelf.CodeNotFound, "book %s is not in the hand", isbn)
	}
	return nil
}

// ShelveFromHand moves the selected books from the hand onto the shelf and
// re-packs the whole shelf by class. Books already on the shelf are only
// taken out of the hand.
func (s *Store) ShelveFromHand(ctx context.Context, isbns []string) error {
	if len(isbns) == 0 {
		return shelf.Reject(shelf.CodeEmptySelection, "no books selected")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, isbn := range isbns {
			if norm, err := NormalizeISBN(isbn); err == nil {
				isbn = norm
			}
			var b Book
			err := tx.QueryRowContext(ctx,
				"SELECT isbn, title, authors, cover, class FROM hand WHERE isbn = ?", isbn,
			).Scan(&b.ISBN, &b.Title, &b.Authors, &b.Cover, &b.Class)
			if errors.Is(err, sql.ErrNoRows) {
				return shelf.Reject(shelf.CodeNotFound, "book %s is not in the hand", isbn)
			}
			if err != nil {
				return fmt.Errorf("storage: cannot query hand: %w", err)
			}

			// Parked at -1 until the repack below gives it a real cell.
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO shelf_books (isbn, title, authors, cover, class, shelf_row, shelf_col)
				 VALUES (?, ?, ?, ?, ?, -1, -1)`,
				b.ISBN, b.Title, b.Authors, b.Cover, b.Class,
			); err != nil {
				return fmt.Errorf("storage: cannot shelve %s: %w", isbn, err)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM hand WHERE isbn = ?", isbn); err != nil {
				return fmt.Errorf("storage: cannot remove from hand: %w", err)
			}
		}

		grid, err := s.design(ctx, tx)
		if err != nil {
			return err
		}
		return s.repack(ctx, tx, grid.Cols, grid.Rows)
	})
}
