package handlers

import (
	"context"
	"net/http"

	"course_service/internal/models"
	"course_service/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	token       string
	authErr     error
	claims      *service.TokenClaims
	parseErr    error
	principal   *models.Principal
	validateErr error

	lastAuthUsername     string
	lastAuthPassword     string
	lastParseToken       string
	lastValidateUsername string
}

func (m *mockAuth) Authenticate(username, password string) (string, error) {
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	return m.token, m.authErr
}

func (m *mockAuth) ValidateCredentials(username, password string) (*models.Principal, error) {
	m.lastValidateUsername = username
	return m.principal, m.validateErr
}

func (m *mockAuth) ParseToken(accessToken string) (*service.TokenClaims, error) {
	m.lastParseToken = accessToken
	return m.claims, m.parseErr
}

type mockCourses struct {
	courses   []models.Course
	course    *models.Course
	saved     models.Course
	err       error
	deleteErr error

	lastSearch   string
	lastGetID    int64
	lastSaved    models.Course
	lastDeleteID int64
	saveCalls    int
	deleteCalls  int
	deleteAll    int
}

func (m *mockCourses) FindAll(ctx context.Context) ([]models.Course, error) {
	return m.courses, m.err
}

func (m *mockCourses) FindByTitle(ctx context.Context, fragment string) ([]models.Course, error) {
	m.lastSearch = fragment
	return m.courses, m.err
}

func (m *mockCourses) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	m.lastGetID = id
	return m.course, m.err
}

func (m *mockCourses) CreateCourse(ctx context.Context, c models.Course) (models.Course, error) {
	m.saveCalls++
	m.lastSaved = c
	if m.err != nil {
		return models.Course{}, m.err
	}
	if m.saved.ID != 0 {
		return m.saved, nil
	}
	return c, nil
}

func (m *mockCourses) DeleteCourseByID(ctx context.Context, id int64) error {
	m.deleteCalls++
	m.lastDeleteID = id
	return m.deleteErr
}

func (m *mockCourses) DeleteAllCourses(ctx context.Context) error {
	m.deleteAll++
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
