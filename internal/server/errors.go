package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	clientdomain "github.com/billfold/billfold/internal/client/domain"
	companydomain "github.com/billfold/billfold/internal/company/domain"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	suggestiondomain "github.com/billfold/billfold/internal/suggestion/domain"
)

// ErrNotFound is the generic resource-missing response.
var ErrNotFound = errors.New("not_found")

// ErrTooManyRequests is returned when a rate limit is exceeded.
var ErrTooManyRequests = errors.New("too_many_requests")

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Field:   field,
		Message: message,
	}
}

var errorStatus = map[error]int{
	ErrNotFound:        http.StatusNotFound,
	ErrTooManyRequests: http.StatusTooManyRequests,

	invoicedomain.ErrInvalidOwner:       http.StatusUnauthorized,
	invoicedomain.ErrInvalidID:          http.StatusBadRequest,
	invoicedomain.ErrInvalidClient:      http.StatusBadRequest,
	invoicedomain.ErrInvalidStatus:      http.StatusBadRequest,
	invoicedomain.ErrInvalidQuantity:    http.StatusBadRequest,
	invoicedomain.ErrInvalidUnitCost:    http.StatusBadRequest,
	invoicedomain.ErrInvalidTax:         http.StatusBadRequest,
	invoicedomain.ErrNotFound:           http.StatusNotFound,
	invoicedomain.ErrClientNotFound:     http.StatusConflict,
	invoicedomain.ErrProfileNotFound:    http.StatusConflict,
	invoicedomain.ErrPreviewUnavailable: http.StatusServiceUnavailable,

	clientdomain.ErrInvalidOwner: http.StatusUnauthorized,
	clientdomain.ErrInvalidID:    http.StatusBadRequest,
	clientdomain.ErrInvalidName:  http.StatusBadRequest,
	clientdomain.ErrInvalidEmail: http.StatusBadRequest,
	clientdomain.ErrNotFound:     http.StatusNotFound,

	companydomain.ErrInvalidOwner: http.StatusUnauthorized,
	companydomain.ErrInvalidName:  http.StatusBadRequest,
	companydomain.ErrInvalidEmail: http.StatusBadRequest,
	companydomain.ErrNotFound:     http.StatusNotFound,

	suggestiondomain.ErrInvalidOwner: http.StatusUnauthorized,
	suggestiondomain.ErrInvalidName:  http.StatusBadRequest,
	suggestiondomain.ErrInvalidLimit: http.StatusBadRequest,
}

// On the export endpoint a missing sender or recipient means the document
// the caller asked for cannot exist, so both map to 404 there. The same
// sentinels stay 409 on create and update, where they flag a bad reference
// in the submitted body.
var exportErrorStatus = map[error]int{
	invoicedomain.ErrClientNotFound:  http.StatusNotFound,
	invoicedomain.ErrProfileNotFound: http.StatusNotFound,
}

func abortExportError(c *gin.Context, err error) {
	for sentinel, status := range exportErrorStatus {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
				"code":    sentinel.Error(),
				"message": sentinel.Error(),
			}})
			return
		}
	}
	AbortWithError(c, err)
}

// AbortWithError writes the JSON error envelope for err and aborts the
// request. Unknown errors become an opaque 500 so internals never leak.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	for sentinel, status := range errorStatus {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
				"code":    sentinel.Error(),
				"message": sentinel.Error(),
			}})
			return
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"code":    "internal_error",
		"message": "internal error",
	}})
}
