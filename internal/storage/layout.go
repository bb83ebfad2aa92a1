package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

// Fetch returns every shelved book and the shelf shape.
func (s *Store) Fetch(ctx context.Context) (shelf.Shelf, error) {
	grid, err := s.design(ctx, s.db)
	if err != nil {
		return shelf.Shelf{}, err
	}
	items, err := s.books(ctx, s.db)
	if err != nil {
		return shelf.Shelf{}, err
	}
	return shelf.Shelf{Grid: grid, Items: items}, nil
}

// SetCapacity changes books per shelf and re-packs every book by class.
// Rows grow to fit; they never shrink here.
func (s *Store) SetCapacity(ctx context.Context, perShelf int) error {
	if perShelf < 1 {
		return shelf.Reject(shelf.CodeInvalidCapacity, "books per shelf must be at least 1, got %d", perShelf)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		grid, err := s.design(ctx, tx)
		if err != nil {
			return err
		}
		return s.repack(ctx, tx, perShelf, grid.Rows)
	})
}

// Arrange re-packs the current shelf by class without changing its shape
// except to add rows that are needed.
func (s *Store) Arrange(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		g, err := s.design(ctx, tx)
		if err != nil {
			return err
		}
		return s.repack(ctx, tx, g.Cols, g.Rows)
	})
}

// AddRow appends an empty shelf.
func (s *Store) AddRow(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "UPDATE shelf_design SET total_shelves = total_shelves + 1 WHERE id = 1")
	if err != nil {
		return fmt.Errorf("storage: cannot add row: %w", err)
	}
	return nil
}

// RemoveRow drops the last shelf if no book sits on it.
func (s *Store) RemoveRow(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		grid, err := s.design(ctx, tx)
		if err != nil {
			return err
		}
		if grid.Rows <= 1 {
			return shelf.Reject(shelf.CodeLastRow, "cannot remove the only shelf")
		}

		last := grid.Rows - 1
		var n int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM shelf_books WHERE shelf_row = ?", last,
		).Scan(&n); err != nil {
			return fmt.Errorf("storage: cannot count books on row: %w", err)
		}
		if n > 0 {
			return shelf.Reject(shelf.CodeRowOccupied, "shelf %d still holds %d book(s); move them off first", last+1, n)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE shelf_design SET total_shelves = total_shelves - 1 WHERE id = 1",
		); err != nil {
			return fmt.Errorf("storage: cannot remove row: %w", err)
		}
		return nil
	})
}

// Commit replaces the positions of all shelved books. The placements must
// name every shelved book exactly once and satisfy the grid rules.
func (s *Store) Commit(ctx context.Context, placements []shelf.Placement) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		grid, err := s.design(ctx, tx)
		if err != nil {
			return err
		}
		current, err := s.books(ctx, tx)
		if err != nil {
			return err
		}
		if len(placements) != len(current) {
			return shelf.Reject(shelf.CodeInvalidLayout, "layout has %d books, shelf has %d", len(placements), len(current))
		}

		next := make(shelf.Layout, 0, len(placements))
		for _, p := range placements {
			it, ok := current.Find(p.Key)
			if !ok {
				return shelf.Reject(shelf.CodeInvalidLayout, "book %s is not on the shelf", p.Key)
			}
			it.Cell = p.Cell
			next = append(next, it)
		}
		if err := shelf.Validate(grid, next); err != nil {
			return err
		}

		return s.place(ctx, tx, next.Placements())
	})
}

func (s *Store) design(ctx context.Context, q querier) (shelf.Grid, error) {
	var g shelf.Grid
	err := q.QueryRowContext(ctx,
		"SELECT total_shelves, books_per_shelf FROM shelf_design WHERE id = 1",
	).Scan(&g.Rows, &g.Cols)
	if err != nil {
		return shelf.Grid{}, fmt.Errorf("storage: cannot query shelf design: %w", err)
	}
	return g, nil
}

func (s *Store) books(ctx context.Context, q querier) (shelf.Layout, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT isbn, title, authors, cover, class, shelf_row, shelf_col
		 FROM shelf_books
		 ORDER BY shelf_row, shelf_col, isbn`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query books: %w", err)
	}
	defer rows.Close()

	var items shelf.Layout
	for rows.Next() {
		var it shelf.Item
		if err := rows.Scan(&it.Key, &it.Title, &it.Authors, &it.Cover, &it.Class, &it.Cell.Row, &it.Cell.Col); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return items, nil
}

func (s *Store) place(ctx context.Context, tx *sql.Tx, placements []shelf.Placement) error {
	stmt, err := tx.PrepareContext(ctx, "UPDATE shelf_books SET shelf_row = ?, shelf_col = ? WHERE isbn = ?")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare placement: %w", err)
	}
	defer stmt.Close()

	for _, p := range placements {
		if _, err := stmt.ExecContext(ctx, p.Cell.Row, p.Cell.Col, p.Key); err != nil {
			return fmt.Errorf("storage: cannot place %s: %w", p.Key, err)
		}
	}
	return nil
}

// repack lays every shelved book out again by class with perShelf per row,
// keeping at least minRows rows.
func (s *Store) repack(ctx context.Context, tx *sql.Tx, perShelf, minRows int) error {
	items, err := s.books(ctx, tx)
	if err != nil {
		return err
	}

	packed, grid := shelf.Repack(items, perShelf, minRows)
	if _, err := tx.ExecContext(ctx,
		"UPDATE shelf_design SET books_per_shelf = ?, total_shelves = ? WHERE id = 1",
		grid.Cols, grid.Rows,
	); err != nil {
		return fmt.Errorf("storage: cannot update shelf design: %w", err)
	}
	return s.place(ctx, tx, packed.Placements())
}
