package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KushalZanzari/neuroq-backend/internal/domain"
)

// CheckInRepository defines persistence access for check-in records.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) error
	ListByUser(ctx context.Context, userID int64) ([]domain.CheckIn, error)
	DeleteByID(ctx context.Context, id, userID int64) (bool, error)
}

type checkInRepository struct {
	pool *pgxpool.Pool
}

// NewCheckInRepository returns a Postgres-backed implementation.
func NewCheckInRepository(pool *pgxpool.Pool) CheckInRepository {
	return &checkInRepository{pool: pool}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	input, err := json.Marshal(checkIn.Input)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	prediction, err := json.Marshal(checkIn.Prediction)
	if err != nil {
		return fmt.Errorf("encode prediction: %w", err)
	}

	const query = `
        INSERT INTO checkins (user_id, title, input, prediction)
        VALUES ($1, $2, $3::jsonb, $4::jsonb)
        RETURNING id, created_at`

	if err := r.pool.QueryRow(ctx, query,
		checkIn.UserID,
		checkIn.Title,
		input,
		prediction,
	).Scan(&checkIn.ID, &checkIn.CreatedAt); err != nil {
		return err
	}
	checkIn.CreatedAt = checkIn.CreatedAt.UTC()
	return nil
}

func (r *checkInRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CheckIn, error) {
	const query = `
        SELECT id, user_id, created_at, title, input, prediction
        FROM checkins WHERE user_id=$1
        ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkIns := make([]domain.CheckIn, 0)
	for rows.Next() {
		var (
			checkIn    domain.CheckIn
			input      []byte
			prediction []byte
		)
		if err := rows.Scan(
			&checkIn.ID,
			&checkIn.UserID,
			&checkIn.CreatedAt,
			&checkIn.Title,
			&input,
			&prediction,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(input, &checkIn.Input); err != nil {
			return nil, fmt.Errorf("decode input for check-in %d: %w", checkIn.ID, err)
		}
		if err := json.Unmarshal(prediction, &checkIn.Prediction); err != nil {
			return nil, fmt.Errorf("decode prediction for check-in %d: %w", checkIn.ID, err)
		}
		checkIn.CreatedAt = checkIn.CreatedAt.UTC()
		checkIns = append(checkIns, checkIn)
	}
	return checkIns, rows.Err()
}

func (r *checkInRepository) DeleteByID(ctx context.Context, id, userID int64) (bool, error) {
	const query = `DELETE FROM checkins WHERE id=$1 AND user_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
