// Package walker implements the drive tree enumerator: a depth-first,
// pre-order walk over the remote listing service that flattens every file
// reachable under a drive root into a single inventory.
package walker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"graphbox/pkg/interfaces"
	"graphbox/pkg/models"
)

// ErrListingUnavailable reports that a listing call returned no data for a
// path that was expected to have some, as opposed to the call itself failing.
var ErrListingUnavailable = errors.New("listing unavailable")

// Options controls enumeration behavior.
type Options struct {
	// OnVisit is called for every discovered entry in traversal order,
	// folders included. Folders never appear in the returned inventory;
	// the observer is the only place they surface.
	OnVisit func(models.Item)

	// SkipFailedSubtrees continues past a folder whose listing fails,
	// logging a warning, instead of aborting the whole enumeration. With
	// this set the returned inventory may be partial.
	SkipFailedSubtrees bool
}

// Walker enumerates a remote drive tree through a Lister.
type Walker struct {
	lister interfaces.Lister
	opts   Options
}

// New builds a walker over the given listing service.
func New(lister interfaces.Lister, opts Options) (*Walker, error) {
	if lister == nil {
		return nil, fmt.Errorf("lister is required")
	}

	return &Walker{lister: lister, opts: opts}, nil
}

// Enumerate returns every file reachable under the drive root, in the order
// encountered by a depth-first, pre-order traversal. The root itself is not
// part of the inventory, and neither is any folder; a folder is a recursion
// target, reported to the observer and then descended into.
//
// The walk is strictly sequential: each listing call completes before the
// next is issued, so two runs over an unchanged tree produce identical
// inventories. The context is checked between listing calls.
func (w *Walker) Enumerate(ctx context.Context, driveID string) ([]models.Item, error) {
	root, children, err := w.lister.RootWithChildren(ctx, driveID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drive root: %w", err)
	}

	if root == nil {
		return nil, fmt.Errorf("drive root: %w", ErrListingUnavailable)
	}

	st := &state{seen: make(map[string]bool)}

	if err := w.walk(ctx, driveID, "", children, st); err != nil {
		return nil, err
	}

	return st.inventory, nil
}

// state is owned by the top-level Enumerate frame and only ever appended to
// by the recursion below it.
type state struct {
	inventory []models.Item
	seen      map[string]bool
}

func (w *Walker) walk(ctx context.Context, driveID, prefix string, entries []models.Entry, st *state) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := models.ChildPath(prefix, entry.Name)
		if st.seen[path] {
			continue
		}

		st.seen[path] = true

		if entry.IsFolder {
			w.visit(models.Item{
				ID:       entry.ID,
				Name:     entry.Name,
				Path:     path,
				IsFolder: true,
			})

			children, err := w.lister.ChildrenAtPath(ctx, driveID, path)
			if err != nil {
				if w.opts.SkipFailedSubtrees {
					slog.Warn("skipping folder after listing failure", "path", path, "error", err)

					continue
				}

				return fmt.Errorf("failed to list %q: %w", path, err)
			}

			if err := w.walk(ctx, driveID, path, children, st); err != nil {
				return err
			}

			continue
		}

		item := models.Item{
			ID:          entry.ID,
			Name:        entry.Name,
			Path:        path,
			Size:        entry.Size,
			Description: entry.Description,
			Kind:        entry.Facets.Classify(),
		}

		w.visit(item)
		st.inventory = append(st.inventory, item)
	}

	return nil
}

func (w *Walker) visit(item models.Item) {
	if w.opts.OnVisit != nil {
		w.opts.OnVisit(item)
	}
}
