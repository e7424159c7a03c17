package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errNotLoggedIn       = errors.New("You must be logged in!")
	errTitleRequired     = errors.New("Title is required")
	errTextRequired      = errors.New("Task text is required")
	errListNotFound      = errors.New("List not found")
	errListOrTaskMissing = errors.New("List or task not found")
	errInvalidState      = errors.New("invalid oauth state")
	errMissingCode       = errors.New("missing authorization code")
	errAuthFailed        = errors.New("authentication failed")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(err error) apiError {
	return newAPIError(http.StatusBadRequest, err.Error())
}

func newUnauthorizedError(err error) apiError {
	return newAPIError(http.StatusUnauthorized, err.Error())
}

func newNotFoundError(err error) apiError {
	return newAPIError(http.StatusNotFound, err.Error())
}
