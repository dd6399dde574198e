// Package query holds the planner types for filtered, cursor-paginated
// list operations. Filters combine with logical AND only.
package query

import (
	"time"

	"github.com/spec-kit/event-registration/internal/domain"
)

// DefaultLimit applies when callers omit a page size.
const DefaultLimit = 10

// Page captures pagination inputs. LastKey is an opaque continuation token:
// it must be exactly the value returned by a prior call on an equivalent
// filter set. Only the store decodes it; everything above passes it through.
// Number is echoed back unchanged and has no effect on which items are
// returned; the store supports forward cursoring only.
type Page struct {
	Limit   int
	LastKey string
	Number  int
}

// Normalized returns a copy with defaults applied.
func (p Page) Normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Number <= 0 {
		p.Number = 1
	}
	return p
}

// Result is one page of a list operation. An empty NextKey signals that
// pagination is exhausted.
type Result[T any] struct {
	Items   []T
	Count   int
	NextKey string
	Page    int
}

// NewResult assembles a page, echoing the informational page number.
func NewResult[T any](items []T, nextKey string, page Page) Result[T] {
	return Result[T]{Items: items, Count: len(items), NextKey: nextKey, Page: page.Number}
}

// UserFilter selects users. Name and Email are substring matches.
type UserFilter struct {
	NameContains  string
	EmailContains string
	Role          *domain.Role
	Status        *domain.Status
}

// EventFilter selects events. DateTo is a less-than-or-equal bound.
type EventFilter struct {
	NameContains string
	DateTo       *time.Time
	Status       *domain.Status
}

// SubscriptionFilter selects subscriptions by exact match.
type SubscriptionFilter struct {
	UserID  string
	EventID string
	Status  *domain.Status
}
