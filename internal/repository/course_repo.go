package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"course_service/internal/models"
)

type CourseSQLite struct {
	db *sql.DB
}

func NewCourseSQLite(db *sql.DB) *CourseSQLite {
	return &CourseSQLite{db: db}
}

// Ensure implementation of Courses interface at compile time.
var _ Courses = (*CourseSQLite)(nil)

const (
	selectAllCoursesSQL = `SELECT id, title, description, published FROM courses ORDER BY id`

	// instr is used instead of LIKE so the substring match stays
	// case-sensitive (LIKE is case-insensitive for ASCII in SQLite).
	searchCoursesByTitleSQL = `SELECT id, title, description, published FROM courses WHERE instr(title, ?) > 0 ORDER BY id`

	selectCourseByIDSQL = `SELECT id, title, description, published FROM courses WHERE id = ?`

	insertCourseSQL = `INSERT INTO courses (title, description, published) VALUES (?, ?, ?)`

	upsertCourseSQL = `
		INSERT INTO courses (id, title, description, published)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			description=excluded.description,
			published=excluded.published
	`

	deleteCourseByIDSQL = `DELETE FROM courses WHERE id = ?`
	deleteAllCoursesSQL = `DELETE FROM courses`
)

// scanCourses drains rows into a slice. Always returns a non-nil slice so an
// empty result stays distinguishable from a query failure.
func scanCourses(rows *sql.Rows) ([]models.Course, error) {
	defer func() { _ = rows.Close() }()

	out := make([]models.Course, 0)
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Published); err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}
	return out, nil
}

// List returns every stored course ordered by id.
func (r *CourseSQLite) List(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, selectAllCoursesSQL)
	if err != nil {
		return nil, fmt.Errorf("select courses: %w", err)
	}
	return scanCourses(rows)
}

// SearchByTitle returns every course whose title contains fragment as a
// case-sensitive substring.
func (r *CourseSQLite) SearchByTitle(ctx context.Context, fragment string) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, searchCoursesByTitleSQL, fragment)
	if err != nil {
		return nil, fmt.Errorf("search courses by title %q: %w", fragment, err)
	}
	return scanCourses(rows)
}

// GetByID fetches a course by id. Returns (nil, nil) if not found.
func (r *CourseSQLite) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var c models.Course
	err := r.db.QueryRowContext(ctx, selectCourseByIDSQL, id).
		Scan(&c.ID, &c.Title, &c.Description, &c.Published)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select course %d: %w", id, err)
	}
	return &c, nil
}

// Save inserts the course when its id is zero (the store assigns a fresh id)
// and overwrites the record at that id otherwise. The stored value is returned.
func (r *CourseSQLite) Save(ctx context.Context, c models.Course) (models.Course, error) {
	if c.ID == 0 {
		res, err := r.db.ExecContext(ctx, insertCourseSQL, c.Title, c.Description, c.Published)
		if err != nil {
			return models.Course{}, fmt.Errorf("insert course: %w", err)
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return models.Course{}, fmt.Errorf("get last insert id for course: %w", err)
		}
		c.ID = lastID
		return c, nil
	}

	if _, err := r.db.ExecContext(ctx, upsertCourseSQL, c.ID, c.Title, c.Description, c.Published); err != nil {
		return models.Course{}, fmt.Errorf("upsert course %d: %w", c.ID, err)
	}
	return c, nil
}

// DeleteByID removes a course. Deleting an absent id is a no-op.
func (r *CourseSQLite) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, deleteCourseByIDSQL, id); err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	return nil
}

// DeleteAll clears the collection.
func (r *CourseSQLite) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllCoursesSQL); err != nil {
		return fmt.Errorf("delete all courses: %w", err)
	}
	return nil
}
