package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

// AnnouncementRepository reads the IT announcement feed. The feed is
// maintained elsewhere; this service never writes it.
type AnnouncementRepository interface {
	ListRecent(ctx context.Context, limit int) ([]domain.Announcement, error)
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository instantiates the repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) ListRecent(ctx context.Context, limit int) ([]domain.Announcement, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
        SELECT id, title, description, created_at
        FROM announcements ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
