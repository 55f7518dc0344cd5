package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

// StatusRepository reads the campus service-status snapshot through the
// get_service_status procedure. The procedure may be unprovisioned;
// callers own the fallback policy.
type StatusRepository interface {
	FetchSnapshot(ctx context.Context) (domain.StatusSnapshot, error)
}

type statusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository instantiates the repository.
func NewStatusRepository(pool *pgxpool.Pool) StatusRepository {
	return &statusRepository{pool: pool}
}

func (r *statusRepository) FetchSnapshot(ctx context.Context) (domain.StatusSnapshot, error) {
	const query = `SELECT service_name, health FROM get_service_status()`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := domain.StatusSnapshot{}
	for rows.Next() {
		var name domain.ServiceName
		var health domain.ServiceHealth
		if err := rows.Scan(&name, &health); err != nil {
			return nil, err
		}
		snapshot[name] = health
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshot, nil
}
