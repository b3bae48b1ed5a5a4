package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillbase/skillbase-backend/internal/model"
	"github.com/skillbase/skillbase-backend/internal/response"
	"github.com/skillbase/skillbase-backend/internal/service"
	"github.com/skillbase/skillbase-backend/internal/validator"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignMany godoc
// POST /api/v1/subjects/:id/assignments
func (h *AssignmentHandler) AssignMany(c *gin.Context) {
	subjectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AssignUsersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcomes, err := h.assignmentService.AssignMany(c.Request.Context(), subjectID, req.UserIDs)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"outcomes": outcomes})
}

// UnassignMany godoc
// DELETE /api/v1/subjects/:id/assignments
func (h *AssignmentHandler) UnassignMany(c *gin.Context) {
	subjectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AssignUsersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcomes, err := h.assignmentService.UnassignMany(c.Request.Context(), subjectID, req.UserIDs)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"outcomes": outcomes})
}

// Get godoc
// GET /api/v1/subjects/:id/assignments/:user_id
func (h *AssignmentHandler) Get(c *gin.Context) {
	subjectID, userID, ok := pairParams(c)
	if !ok {
		return
	}

	rec, err := h.assignmentService.GetBySubjectAndUser(c.Request.Context(), subjectID, userID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assignment": rec})
}

// UpdateCompletionRate godoc
// PUT /api/v1/subjects/:id/assignments/:user_id
func (h *AssignmentHandler) UpdateCompletionRate(c *gin.Context) {
	subjectID, userID, ok := pairParams(c)
	if !ok {
		return
	}

	var req model.UpdateCompletionRateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.assignmentService.UpdateCompletionRate(c.Request.Context(), subjectID, userID, req.CompletionRate)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assignment": rec})
}

// Unassign godoc
// DELETE /api/v1/subjects/:id/assignments/:user_id
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	subjectID, userID, ok := pairParams(c)
	if !ok {
		return
	}

	if err := h.assignmentService.Unassign(c.Request.Context(), subjectID, userID); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user unassigned"})
}

// ListUsers godoc
// GET /api/v1/subjects/:id/users
func (h *AssignmentHandler) ListUsers(c *gin.Context) {
	subjectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	users, err := h.assignmentService.ListUsersForSubject(c.Request.Context(), subjectID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// ListSubjects godoc
// GET /api/v1/users/:id/subjects
func (h *AssignmentHandler) ListSubjects(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	subjects, err := h.assignmentService.ListSubjectsForUser(c.Request.Context(), userID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// pairParams parses the :id and :user_id route params, failing the
// request itself on malformed input.
func pairParams(c *gin.Context) (subjectID, userID int, ok bool) {
	subjectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, 0, false
	}
	userID, err = strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, 0, false
	}
	return subjectID, userID, true
}
