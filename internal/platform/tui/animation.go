package tui

import (
	"github.com/vovakirdan/tui-bookshelf/internal/core"
	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

// defaultSlideTicks is how long a book takes to glide to a new cell.
const defaultSlideTicks = 8 // ~133ms at 60fps

// slide is one book moving between two screen positions.
type slide struct {
	FromX, FromY int
	ToX, ToY     int
	Ticks        int
	Progress     float64 // 0.0 → 1.0
}

// pos returns the position to draw at the current progress.
func (s *slide) pos() (int, int) {
	t := easeOutQuad(s.Progress)
	return core.Lerp(s.FromX, s.ToX, t), core.Lerp(s.FromY, s.ToY, t)
}

// animator tracks where every book is drawn. Books glide from their drawn
// position to their target instead of jumping.
type animator struct {
	duration int
	slides   map[string]*slide
}

func newAnimator(duration int) *animator {
	return &animator{duration: duration, slides: make(map[string]*slide)}
}

// Pos returns where a book is drawn right now.
func (a *animator) Pos(key string) (x, y int, ok bool) {
	s, ok := a.slides[key]
	if !ok {
		return 0, 0, false
	}
	x, y = s.pos()
	return x, y, true
}

// Moving reports whether a book is still gliding.
func (a *animator) Moving(key string) bool {
	s, ok := a.slides[key]
	return ok && s.Progress < 1
}

// Place puts a book at (x, y) with no animation.
func (a *animator) Place(key string, x, y int) {
	a.slides[key] = &slide{FromX: x, FromY: y, ToX: x, ToY: y, Progress: 1}
}

// MoveTo starts a glide from the drawn position to (x, y). Books that are
// not drawn yet appear there directly.
func (a *animator) MoveTo(key string, x, y int) {
	s, ok := a.slides[key]
	if !ok || a.duration <= 0 {
		a.Place(key, x, y)
		return
	}
	if s.ToX == x && s.ToY == y {
		return
	}
	cx, cy := s.pos()
	*s = slide{FromX: cx, FromY: cy, ToX: x, ToY: y}
}

// Sync retargets every book in layout to its cell and forgets books that
// left the layout. The skipped key is left alone.
func (a *animator) Sync(m shelf.Mapper, layout shelf.Layout, skip string) {
	seen := make(map[string]bool, len(layout))
	for _, it := range layout {
		seen[it.Key] = true
		if it.Key == skip {
			continue
		}
		x, y := m.CellToPixel(it.Cell)
		a.MoveTo(it.Key, x, y)
	}
	for key := range a.slides {
		if !seen[key] {
			delete(a.slides, key)
		}
	}
}

// Step advances all glides by one frame.
// Returns true if any book is still in motion.
func (a *animator) Step() bool {
	moving := false
	for _, s := range a.slides {
		if s.Progress >= 1 {
			continue
		}
		s.Ticks++
		s.Progress = float64(s.Ticks) / float64(max(a.duration, 1))
		if s.Progress >= 1 {
			s.Progress = 1
			continue
		}
		moving = true
	}
	return moving
}

// Active reports whether any glide is unfinished.
func (a *animator) Active() bool {
	for _, s := range a.slides {
		if s.Progress < 1 {
			return true
		}
	}
	return false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
