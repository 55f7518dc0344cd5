package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

// ProfileRepository handles persistence for technician profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TechnicianProfile, error)
	ListTechnicians(ctx context.Context) ([]domain.TechnicianProfile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates the repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.TechnicianProfile, error) {
	const query = `
        SELECT id, first_name, last_name, role, created_at
        FROM profiles WHERE id=$1`
	var profile domain.TechnicianProfile
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Role,
		&profile.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ListTechnicians(ctx context.Context) ([]domain.TechnicianProfile, error) {
	const query = `
        SELECT id, first_name, last_name, role, created_at
        FROM profiles WHERE role='technician'
        ORDER BY last_name, first_name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TechnicianProfile
	for rows.Next() {
		var profile domain.TechnicianProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.FirstName,
			&profile.LastName,
			&profile.Role,
			&profile.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}
