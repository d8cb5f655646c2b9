package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/service"
)

// JournalHandler serves the caller's own journal entries.
type JournalHandler struct {
	journalService service.JournalService
}

func NewJournalHandler(journalService service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// List godoc
// @Summary Page through the caller's journal
// @Tags Journal
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param page query int false "Page number" default(1)
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD, inclusive"
// @Success 200 {object} model.JournalPage
// @Router /journal [get]
func (h *JournalHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	// Unparseable numbers fall back to the defaults.
	limit, _ := strconv.Atoi(c.Query("limit"))
	page, _ := strconv.Atoi(c.Query("page"))

	result, err := h.journalService.List(c.Request.Context(), userID, service.JournalQuery{
		Page:      page,
		Limit:     limit,
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	})
	if err != nil {
		abortWithServiceError(c, "list journal", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *JournalHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	entry, err := h.journalService.Get(c.Request.Context(), userID, id)
	if err != nil {
		abortWithServiceError(c, "get journal", err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req model.JournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	entry, err := h.journalService.Create(c.Request.Context(), userID, req)
	if err != nil {
		abortWithServiceError(c, "create journal", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *JournalHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	var req model.JournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	entry, err := h.journalService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		abortWithServiceError(c, "update journal", err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.journalService.Delete(c.Request.Context(), userID, id); err != nil {
		abortWithServiceError(c, "delete journal", err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Journal entry deleted"})
}
