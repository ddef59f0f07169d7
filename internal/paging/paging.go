// Package paging is the offset/limit listing contract shared by anything
// that hands back results a page at a time, plus helpers that flatten a
// paged source into a single sequence.
package paging

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
)

// DefaultLimit is the page size used when a caller does not pick one.
const DefaultLimit = 20

// ErrStalled is returned when a fetcher reports more pages but returns an
// empty one, which would otherwise loop forever.
var ErrStalled = errors.New("paging: empty page before end of records")

// Page addresses one slice of a result set.
type Page struct {
	Offset int64
	Limit  int
}

// NewPage validates offset and limit. A zero limit selects DefaultLimit.
func NewPage(offset int64, limit int) (Page, error) {
	if offset < 0 {
		return Page{}, fmt.Errorf("paging: offset cannot be negative: %d", offset)
	}
	if limit < 0 {
		return Page{}, fmt.Errorf("paging: limit cannot be negative: %d", limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	return Page{Offset: offset, Limit: limit}, nil
}

// Next returns the page that follows p.
func (p Page) Next() Page {
	return Page{Offset: p.Offset + int64(p.Limit), Limit: p.Limit}
}

func (p Page) String() string {
	return fmt.Sprintf("%d-%d", p.Offset, p.Offset+int64(p.Limit))
}

// Fetcher loads one page. last reports that no records follow it.
type Fetcher[T any] func(ctx context.Context, page Page) (items []T, last bool, err error)

// All yields every item from fetch, requesting pageSize items at a time.
// Iteration stops at the first error, which is yielded with the zero T.
func All[T any](ctx context.Context, fetch Fetcher[T], pageSize int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if pageSize <= 0 {
			yield(zero, fmt.Errorf("paging: page size must be at least 1, got %d", pageSize))
			return
		}
		page := Page{Limit: pageSize}
		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}
			slog.Debug("loading page", "page", page.String())
			items, last, err := fetch(ctx, page)
			if err != nil {
				yield(zero, fmt.Errorf("paging: fetch %s: %w", page, err))
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if last {
				return
			}
			if len(items) == 0 {
				yield(zero, ErrStalled)
				return
			}
			page = page.Next()
		}
	}
}

// Collect drains All into a slice.
func Collect[T any](ctx context.Context, fetch Fetcher[T], pageSize int) ([]T, error) {
	var out []T
	for item, err := range All(ctx, fetch, pageSize) {
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Slice adapts an in-memory slice to a Fetcher. A negative offset or limit
// on a Page built without NewPage is treated as zero.
func Slice[T any](items []T) Fetcher[T] {
	return func(_ context.Context, page Page) ([]T, bool, error) {
		n := int64(len(items))
		start := min(max(page.Offset, 0), n)
		end := min(start+int64(max(page.Limit, 0)), n)
		return items[start:end], end >= n, nil
	}
}
