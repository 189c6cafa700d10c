package service

import (
	"context"

	"course_service/internal/models"
	"course_service/internal/repository"
)

// CourseService delegates catalog operations to the course store. It adds no
// business rules: empty titles and descriptions are accepted as-is, and an
// empty result set is a successful result, not an absence.
type CourseService struct {
	courseRepo repository.Courses
}

func NewCourseService(repo repository.Courses) *CourseService {
	return &CourseService{courseRepo: repo}
}

var _ Courses = (*CourseService)(nil)

func (s *CourseService) FindAll(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.List(ctx)
}

func (s *CourseService) FindByTitle(ctx context.Context, fragment string) ([]models.Course, error) {
	return s.courseRepo.SearchByTitle(ctx, fragment)
}

func (s *CourseService) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

func (s *CourseService) CreateCourse(ctx context.Context, c models.Course) (models.Course, error) {
	return s.courseRepo.Save(ctx, c)
}

func (s *CourseService) DeleteCourseByID(ctx context.Context, id int64) error {
	return s.courseRepo.DeleteByID(ctx, id)
}

func (s *CourseService) DeleteAllCourses(ctx context.Context) error {
	return s.courseRepo.DeleteAll(ctx)
}
