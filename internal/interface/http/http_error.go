package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return domainError(err)
}

// domainError maps service failures onto HTTP statuses. Upstream and payload
// failures surface as 502.
func domainError(err error) *HTTPError {
	code := apperrors.Code(err)
	switch code {
	case apperrors.CodeUpstreamUnavailable, apperrors.CodeMalformedPayload, apperrors.CodeStaleData:
		return NewHTTPError(http.StatusBadGateway, code, errMessage(err), err)
	case apperrors.CodeIndexOutOfRange:
		return NewHTTPError(http.StatusInternalServerError, code, errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal_error", errMessage(err), err)
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
