package traffic

import (
	"errors"
	"fmt"

	"github.com/velomaps/bikeflow-backend-go/internal/models"
)

const (
	// UnfilteredMinute is the sentinel center meaning "no time filter".
	UnfilteredMinute = -1

	// DefaultHalfWidth is the rolling window half-width in minutes, giving
	// the one-hour-each-way view the slider exposes.
	DefaultHalfWidth = 60
)

// ErrInvalidFilter reports a filter value outside [-1, 1439]. The selector
// fails fast instead of clamping so a broken caller surfaces immediately.
var ErrInvalidFilter = errors.New("traffic: filter minute out of range")

// Window is a resolved range of minute-of-day slots, possibly wrapping past
// midnight. The zero value is not meaningful; use ResolveWindow.
type Window struct {
	lo, hi int
	all    bool
}

// ResolveWindow resolves a center minute m and half-width h into a Window.
// m == UnfilteredMinute selects the full dataset; the aggregator treats that
// as a distinct path rather than a union of all 1440 buckets. The window
// covers the 2h+1 slots [(m-h) mod 1440, (m+h) mod 1440] inclusive.
func ResolveWindow(m, h int) (Window, error) {
	if m == UnfilteredMinute {
		return Window{all: true}, nil
	}
	if m < 0 || m >= models.MinutesPerDay {
		return Window{}, fmt.Errorf("%w: minute %d", ErrInvalidFilter, m)
	}
	if h < 0 || 2*h+1 > models.MinutesPerDay {
		return Window{}, fmt.Errorf("%w: half-width %d", ErrInvalidFilter, h)
	}
	lo := (m - h + models.MinutesPerDay) % models.MinutesPerDay
	hi := (m + h) % models.MinutesPerDay
	return Window{lo: lo, hi: hi}, nil
}

// Unfiltered reports whether the window selects the full dataset.
func (w Window) Unfiltered() bool {
	return w.all
}

// Minutes returns the bucket indices in range, in chronological order within
// the window. A wrapping window is [lo, 1439] followed by [0, hi]. The
// aggregator only counts, but the order is kept for any consumer that needs
// the slots in sequence. Returns nil for the unfiltered window.
func (w Window) Minutes() []int {
	if w.all {
		return nil
	}
	if w.lo <= w.hi {
		out := make([]int, 0, w.hi-w.lo+1)
		for m := w.lo; m <= w.hi; m++ {
			out = append(out, m)
		}
		return out
	}
	out := make([]int, 0, models.MinutesPerDay-w.lo+w.hi+1)
	for m := w.lo; m < models.MinutesPerDay; m++ {
		out = append(out, m)
	}
	for m := 0; m <= w.hi; m++ {
		out = append(out, m)
	}
	return out
}
