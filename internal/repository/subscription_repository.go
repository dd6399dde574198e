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

// Subscriber is the contact projection used when notifying an event's
// active registrants.
type Subscriber struct {
	Name  string
	Email string
}

// SubscriptionRepository encapsulates subscription persistence.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	Update(ctx context.Context, sub *domain.Subscription) error
	GetByID(ctx context.Context, id string) (*domain.Subscription, error)
	// ExistsForPair reports whether any record, soft-deleted ones included,
	// exists for the (user, event) pair.
	ExistsForPair(ctx context.Context, userID, eventID string) (bool, error)
	ActiveSubscribers(ctx context.Context, eventID string) ([]Subscriber, error)
	List(ctx context.Context, filter query.SubscriptionFilter, page query.Page) ([]domain.Subscription, string, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository instantiates the repository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

const subscriptionColumns = `id, user_id, event_id, status, created_at, updated_at, deleted_at`

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const q = `
        INSERT INTO subscriptions (` + subscriptionColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.pool.Exec(ctx, q,
		sub.ID,
		sub.UserID,
		sub.EventID,
		sub.Status,
		sub.CreatedAt,
		sub.UpdatedAt,
		sub.DeletedAt,
	)
	return err
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *domain.Subscription) error {
	const q = `
        UPDATE subscriptions SET status=$1, updated_at=$2, deleted_at=$3
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, q, sub.Status, sub.UpdatedAt, sub.DeletedAt, sub.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id=$1`

	var sub domain.Subscription
	if err := scanSubscription(r.pool.QueryRow(ctx, q, id).Scan, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) ExistsForPair(ctx context.Context, userID, eventID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM subscriptions WHERE user_id=$1 AND event_id=$2)`,
		userID, eventID,
	).Scan(&exists)
	return exists, err
}

func (r *subscriptionRepository) ActiveSubscribers(ctx context.Context, eventID string) ([]Subscriber, error) {
	const q = `
        SELECT u.name, u.email
        FROM subscriptions s
        JOIN users u ON u.id = s.user_id
        WHERE s.event_id=$1 AND s.status=$2`

	rows, err := r.pool.Query(ctx, q, eventID, domain.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscribers []Subscriber
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.Name, &sub.Email); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, sub)
	}
	return subscribers, rows.Err()
}

func (r *subscriptionRepository) List(ctx context.Context, filter query.SubscriptionFilter, page query.Page) ([]domain.Subscription, string, error) {
	page = page.Normalized()
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.EventID != "" {
		args = append(args, filter.EventID)
		clauses = append(clauses, fmt.Sprintf("event_id=$%d", len(args)))
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

	q := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE %s ORDER BY created_at DESC, id DESC LIMIT %d`,
		subscriptionColumns, strings.Join(clauses, " AND "), page.Limit+1)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		var sub domain.Subscription
		if err := scanSubscription(rows.Scan, &sub); err != nil {
			return nil, "", err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	subs, nextKey := pageSlice(subs, page.Limit, func(s *domain.Subscription) (time.Time, string) {
		return s.CreatedAt, s.ID
	})
	return subs, nextKey, nil
}

func scanSubscription(scan func(...any) error, sub *domain.Subscription) error {
	return scan(
		&sub.ID,
		&sub.UserID,
		&sub.EventID,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
		&sub.DeletedAt,
	)
}
