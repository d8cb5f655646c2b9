package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// MapExercisesToResponse converts a slice of domain.Exercise to their wire form.
func MapExercisesToResponse(exercises []domain.Exercise) []model.Exercise {
	responses := make([]model.Exercise, len(exercises))
	for i := range exercises {
		responses[i] = service.ToExercise(&exercises[i])
	}
	return responses
}

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Success 200 {array} model.Exercise
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, "list exercises", err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// CreateExercise godoc
// @Summary Add an exercise to the catalog
// @Tags Exercises
// @Accept json
// @Produce json
// @Param exercise body model.CreateExerciseRequest true "Exercise details"
// @Success 201 {object} model.Exercise
// @Failure 400 {object} model.ErrorBody
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req model.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), &domain.Exercise{
		Name:          req.Name,
		Description:   req.Description,
		Type:          req.Type,
		Difficulty:    req.Difficulty,
		Duration:      req.Duration,
		Reps:          req.Reps,
		Demonstration: req.Demonstration,
	})
	if err != nil {
		abortWithServiceError(c, "create exercise", err)
		return
	}
	c.JSON(http.StatusCreated, service.ToExercise(exercise))
}

// RandomExercise godoc
// @Summary Pick a random exercise
// @Tags Exercises
// @Produce json
// @Success 200 {object} model.Exercise
// @Failure 404 {object} model.ErrorBody "Empty catalog"
// @Router /exercises/random [get]
func (h *ExerciseHandler) RandomExercise(c *gin.Context) {
	exercise, err := h.exerciseService.RandomExercise(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, "random exercise", err)
		return
	}
	c.JSON(http.StatusOK, service.ToExercise(exercise))
}

// GetExercise godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} model.Exercise
// @Failure 404 {object} model.ErrorBody
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, "get exercise", err)
		return
	}
	c.JSON(http.StatusOK, service.ToExercise(exercise))
}

// CompleteExercise godoc
// @Summary Record a completed exercise for the caller
// @Tags Exercises
// @Security BearerAuth
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} model.CompletionResponse
// @Router /exercises/{id}/complete [post]
func (h *ExerciseHandler) CompleteExercise(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	total, err := h.exerciseService.CompleteExercise(c.Request.Context(), userID, id)
	if err != nil {
		abortWithServiceError(c, "complete exercise", err)
		return
	}
	c.JSON(http.StatusOK, model.CompletionResponse{
		Message:            "Exercise completed",
		ExercisesCompleted: total,
	})
}
