package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/metrics"
	"followuply/internal/middleware"
	"followuply/internal/services"
	"followuply/internal/toast"
	"followuply/internal/validator"
)

// ErrorDetail is the error part of a failed response.
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
	Toast toast.Toast `json:"toast"`
}

// DeleteResponse is returned by every delete. The record can be restored
// until UndoUntil.
type DeleteResponse struct {
	ID        string      `json:"id"`
	UndoUntil time.Time   `json:"undo_until"`
	Toast     toast.Toast `json:"toast"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// requestContext carries the request deadline and the caller's IP into the
// services.
func requestContext(c *gin.Context) context.Context {
	return services.WithClientIP(c.Request.Context(), c.ClientIP())
}

// respondWithError logs err and writes the error body and toast.
func respondWithError(c *gin.Context, err error) {
	middleware.LogError(c, err)
	c.JSON(toast.ErrorResponse(err))
}

// respondWithFormError is respondWithError that also counts validation
// failures for entity.
func respondWithFormError(c *gin.Context, m *metrics.Metrics, entity string, err error) {
	if apperrors.KindOf(err) == apperrors.KindValidation {
		m.ValidationFailed(entity)
	}
	respondWithError(c, err)
}

func invalidInput(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// bindJSON decodes the request body into req.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return invalidInput(err)
	}
	return nil
}

// bindQuery decodes and checks the query string into req.
func bindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return invalidInput(err)
	}
	return nil
}

// pathID returns the :id path parameter. Malformed IDs are reported as
// notFound, the same as IDs that belong to nobody.
func pathID(c *gin.Context, notFound *apperrors.AppError) (string, error) {
	id := c.Param("id")
	if !validator.IsUUID(id) {
		return "", notFound
	}
	return id, nil
}

// deleted writes the response for a successful delete.
func deleted(c *gin.Context, title, id string, undoUntil time.Time) {
	c.JSON(http.StatusOK, DeleteResponse{
		ID:        id,
		UndoUntil: undoUntil.UTC(),
		Toast:     toast.Undo(title, undoUntil, time.Now()),
	})
}

// SearchQuery is the query string of every search endpoint.
type SearchQuery struct {
	Q string `form:"q" json:"q"`
}
