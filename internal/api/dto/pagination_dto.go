package dto

import "github.com/spec-kit/event-registration/internal/query"

// ListResponse is the paginated envelope. LastKey, when present, resumes
// iteration. Page merely echoes the request and never selects items; the
// store supports forward cursoring only.
type ListResponse[T any] struct {
	Count   int    `json:"count"`
	Data    []T    `json:"data"`
	LastKey string `json:"lastKey,omitempty"`
	Page    int    `json:"page"`
}

// NewListResponse maps a query result through an item projection.
func NewListResponse[D, T any](result query.Result[D], project func(*D) T) ListResponse[T] {
	data := make([]T, 0, len(result.Items))
	for i := range result.Items {
		data = append(data, project(&result.Items[i]))
	}
	return ListResponse[T]{
		Count:   result.Count,
		Data:    data,
		LastKey: result.NextKey,
		Page:    result.Page,
	}
}
