package service

import (
	"context"

	"course_service/internal/models"
	"course_service/internal/repository"
)

// Authorization covers the credential store and token issuance/verification.
type Authorization interface {
	Authenticate(username, password string) (string, error)
	ValidateCredentials(username, password string) (*models.Principal, error)
	ParseToken(accessToken string) (*TokenClaims, error)
}

// Courses exposes the catalog operations backed by the course store.
type Courses interface {
	FindAll(ctx context.Context) ([]models.Course, error)
	FindByTitle(ctx context.Context, fragment string) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, c models.Course) (models.Course, error)
	DeleteCourseByID(ctx context.Context, id int64) error
	DeleteAllCourses(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	Courses
	Authorization
}

// NewService wires the repository layer and the seeded credentials into
// concrete services.
func NewService(repos *repository.Repository, creds []Credential) (*Service, error) {
	auth, err := NewAuthService(creds)
	if err != nil {
		return nil, err
	}
	return &Service{
		Courses:       NewCourseService(repos.Courses),
		Authorization: auth,
	}, nil
}
