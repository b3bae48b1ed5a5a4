package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillbase/skillbase-backend/internal/response"
	"github.com/skillbase/skillbase-backend/internal/service"
)

// failFromErr maps a service error to the matching HTTP failure. Unknown
// errors become a 500 without leaking detail.
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrProductNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrTitleTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrSKUTaken):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
