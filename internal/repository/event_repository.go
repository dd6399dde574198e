package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/query"
)

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	NameExists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, filter query.EventFilter, page query.Page) ([]domain.Event, string, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates the repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, organizer_id, name, description, date, image_url, status, created_at, updated_at, deleted_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const q = `
        INSERT INTO events (` + eventColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.pool.Exec(ctx, q,
		event.ID,
		event.OrganizerID,
		event.Name,
		event.Description,
		event.Date,
		event.ImageURL,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
		event.DeletedAt,
	)
	return err
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const q = `
        UPDATE events SET name=$1, description=$2, date=$3, image_url=$4,
            status=$5, updated_at=$6, deleted_at=$7
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, q,
		event.Name,
		event.Description,
		event.Date,
		event.ImageURL,
		event.Status,
		event.UpdatedAt,
		event.DeletedAt,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id=$1`

	var event domain.Event
	if err := scanEvent(r.pool.QueryRow(ctx, q, id).Scan, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE name=$1)`, name).Scan(&exists)
	return exists, err
}

func (r *eventRepository) List(ctx context.Context, filter query.EventFilter, page query.Page) ([]domain.Event, string, error) {
	page = page.Normalized()
	clauses := []string{"1=1"}
	args := []any{}

	if strings.TrimSpace(filter.NameContains) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(filter.NameContains))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		clauses = append(clauses, fmt.Sprintf("date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	if page.LastKey != "" {
		cursor, err := decodeCursor(page.LastKey)
		if err != nil {
			return nil, "", err
		}
		args = append(args, cursor.CreatedAt, cursor.ID)
		clauses = append(clauses, fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	q := fmt.Sprintf(`SELECT %s FROM events WHERE %s ORDER BY created_at DESC, id DESC LIMIT %d`,
		eventColumns, strings.Join(clauses, " AND "), page.Limit+1)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := scanEvent(rows.Scan, &event); err != nil {
			return nil, "", err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	events, nextKey := pageSlice(events, page.Limit, func(e *domain.Event) (time.Time, string) {
		return e.CreatedAt, e.ID
	})
	return events, nextKey, nil
}

func scanEvent(scan func(...any) error, event *domain.Event) error {
	return scan(
		&event.ID,
		&event.OrganizerID,
		&event.Name,
		&event.Description,
		&event.Date,
		&event.ImageURL,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.DeletedAt,
	)
}
