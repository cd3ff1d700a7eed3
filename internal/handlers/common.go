package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/clinic"
	"clinic-app-server/internal/utils"
)

// respondDomainError maps workflow errors onto the response envelope.
// Anything outside the domain taxonomy is an infrastructure failure.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case clinic.IsInsufficientStock(err):
		utils.UnprocessableEntity(c, err.Error())
	case errors.Is(err, clinic.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, clinic.ErrValidation), errors.Is(err, clinic.ErrInvalidStatus):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, clinic.ErrAlreadyFulfilled), errors.Is(err, clinic.ErrDuplicatePayment):
		utils.Conflict(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// paramID parses a numeric path parameter. On failure it writes a 400 and
// returns false.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid "+name+" format")
		return 0, false
	}
	return uint(id), true
}
