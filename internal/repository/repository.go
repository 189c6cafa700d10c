package repository

import (
	"context"
	"database/sql"

	"course_service/internal/models"
)

// Courses is the durable store of Course records, keyed by an auto-assigned id.
type Courses interface {
	List(ctx context.Context) ([]models.Course, error)
	SearchByTitle(ctx context.Context, fragment string) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Save(ctx context.Context, c models.Course) (models.Course, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type Repository struct {
	Courses Courses
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Courses: NewCourseSQLite(db),
	}
}
