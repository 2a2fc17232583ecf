// Package perr provides the sentinel errors and wrap helpers used across
// the priority-inheritance core. The core itself never returns these to its
// callers (every condition degrades silently, per design). They name the
// degraded conditions; the core logs and counts those conditions but does
// not record or return these values anywhere.
package perr

import "fmt"

// New creates a new error with a message.
func New(msg string) error {
	return fmt.Errorf("%s", msg)
}

// Wrap wraps an err with additional context, same shape as fmt.Errorf's %w.
func Wrap(err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Sentinel conditions; nothing in the module currently returns or records them.
var (
	// ErrCapacityExhausted names the condition of a holder store with no free slot.
	ErrCapacityExhausted = New("holder store capacity exhausted")
	// ErrNestOverflow names the condition of a thread's boost ledger being full.
	ErrNestOverflow = New("boost ledger full, boost not recorded")
	// ErrStaleHandle names the condition of a holder's thread handle no
	// longer referring to a live thread.
	ErrStaleHandle = New("thread handle is stale")
)
