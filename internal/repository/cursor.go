package repository

import (
	"encoding/base64"
	"encoding/json"
	"time"

	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// cursorPayload is the store's resume position: the sort key of the last
// row returned. It is serialized into the opaque lastKey token; nothing
// above this package constructs or inspects it.
type cursorPayload struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

func encodeCursor(createdAt time.Time, id string) string {
	raw, _ := json.Marshal(cursorPayload{CreatedAt: createdAt, ID: id})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(token string) (*cursorPayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, apperrors.NewInvalidCursor()
	}
	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.NewInvalidCursor()
	}
	if payload.ID == "" || payload.CreatedAt.IsZero() {
		return nil, apperrors.NewInvalidCursor()
	}
	return &payload, nil
}

// pageSlice trims a limit+1 fetch down to one page and derives the resume
// token from the last row kept. An empty token means the fetch came back
// short, so iteration is exhausted.
func pageSlice[T any](rows []T, limit int, sortKey func(*T) (time.Time, string)) ([]T, string) {
	if len(rows) <= limit {
		return rows, ""
	}
	rows = rows[:limit]
	createdAt, id := sortKey(&rows[len(rows)-1])
	return rows, encodeCursor(createdAt, id)
}
