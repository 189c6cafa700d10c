package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"course_service/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	courseNotFoundMessage = "No Courses are available.."

	errInvalidCourseID = "invalid course id"
	errListCourses     = "failed to list courses"
	errSearchCourses   = "failed to search courses"
	errGetCourse       = "failed to load course"
	errCreateCourse    = "failed to create course"
	errUpdateCourse    = "failed to update course"
	errDeleteCourses   = "failed to delete courses"
	errInvalidBodyPref = "invalid body: "
)

// Request DTO for create/update. The id is never taken from the body: the
// store assigns it on create and the path parameter pins it on update.
type courseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// courseIDParam parses the :id path segment. Writes a 400 and returns false
// when the segment is not an integer.
func (h *Handler) courseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCourseID})
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Find all courses
// @Tags         courses
// @Produce      json
// @Success      200  {array}   models.Course
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/courses [get]
// @Security     BearerAuth
func (h *Handler) getAllCourses(c *gin.Context) {
	courses, err := h.services.FindAll(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListCourses, "course_list_failed", err)
		return
	}
	// Defensive: the service never reports an absent collection, an empty
	// result is still a 200.
	if courses == nil {
		c.JSON(http.StatusNotFound, newErrorResponse(courseNotFoundMessage, c.Request.URL.Path))
		return
	}
	c.JSON(http.StatusOK, courses)
}

// @Summary      Find courses by title
// @Description  Case-sensitive substring match on the title field.
// @Tags         courses
// @Produce      json
// @Param        title  query  string  true  "Title fragment"
// @Success      200  {array}   models.Course
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/course-titles [get]
// @Security     BearerAuth
func (h *Handler) getCoursesByTitle(c *gin.Context) {
	courses, err := h.services.FindByTitle(c.Request.Context(), c.Query("title"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSearchCourses, "course_search_failed", err)
		return
	}
	if courses == nil {
		c.JSON(http.StatusNotFound, newErrorResponse(courseNotFoundMessage, c.Request.URL.Path))
		return
	}
	c.JSON(http.StatusOK, courses)
}

// @Summary      Find course by id
// @Tags         courses
// @Produce      json
// @Param        id  path  int  true  "Course id"
// @Success      200  {object}  models.Course
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id} [get]
// @Security     BearerAuth
func (h *Handler) getCourseByID(c *gin.Context) {
	id, ok := h.courseIDParam(c)
	if !ok {
		return
	}
	course, err := h.services.FindByID(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetCourse, "course_get_failed", err, "id", id)
		return
	}
	if course == nil {
		c.JSON(http.StatusNotFound, newErrorResponse(courseNotFoundMessage, c.Request.URL.Path))
		return
	}
	c.JSON(http.StatusOK, course)
}

// @Summary      Create a new course
// @Description  The id in the body is ignored; the store assigns a fresh one.
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body  courseRequest  true  "Course payload"
// @Success      201  {string}  string  "empty body, Location header set"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/courses [post]
// @Security     BearerAuth
func (h *Handler) createCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	created, err := h.services.CreateCourse(c.Request.Context(), models.Course{
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateCourse, "course_create_failed", err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/courses/%d", created.ID))
	c.Status(http.StatusCreated)
}

// @Summary      Update course by id
// @Description  Overwrites title, description and published on the stored record.
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "Course id"
// @Param        body  body  courseRequest  true  "Course payload"
// @Success      200  {object}  models.Course
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateCourse(c *gin.Context) {
	id, ok := h.courseIDParam(c)
	if !ok {
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.services.FindByID(ctx, id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateCourse, "course_update_failed", err, "id", id)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, newErrorResponse(courseNotFoundMessage, c.Request.URL.Path))
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Published = req.Published

	updated, err := h.services.CreateCourse(ctx, *existing)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateCourse, "course_update_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete all courses
// @Tags         courses
// @Success      204  {string}  string  "no content"
// @Failure      401  {object}  map[string]string
// @Router       /api/courses [delete]
// @Security     BearerAuth
func (h *Handler) deleteAllCourses(c *gin.Context) {
	if err := h.services.DeleteAllCourses(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteCourses, "course_delete_all_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Delete course by id
// @Description  Idempotent: a 204 is returned even when the id is absent.
// @Tags         courses
// @Param        id  path  int  true  "Course id"
// @Success      204  {string}  string  "no content"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/courses/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteCourseByID(c *gin.Context) {
	id, ok := h.courseIDParam(c)
	if !ok {
		return
	}
	if err := h.services.DeleteCourseByID(c.Request.Context(), id); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteCourses, "course_delete_failed", err, "id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
