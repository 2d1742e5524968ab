package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/rest/middleware"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	PageSizeMax     = 50

	DefaultRankLimit = 10
	RankMax          = 100
)

// callerIdentity reads the identity resolved by the auth middleware.
// Requests that carried no token resolve to the anonymous identity.
func callerIdentity(c *gin.Context) domain.Identity {
	v, exists := c.Get(middleware.IdentityKey)
	if !exists {
		return domain.Identity{}
	}
	id, ok := v.(domain.Identity)
	if !ok {
		return domain.Identity{}
	}
	return id
}

// pathID parses the named int64 path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

// pageParams reads page/size query parameters, falling back to the
// defaults on absent or out-of-range values.
func pageParams(c *gin.Context) (page, size int64) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", ""), 10, 64)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	size, err = strconv.ParseInt(c.DefaultQuery("size", ""), 10, 64)
	if err != nil || size < 1 || size > PageSizeMax {
		size = DefaultPageSize
	}
	return page, size
}

// respondError writes the error response. Errors without a dedicated
// status map to 500 with a canned message so storage details never
// reach the client.
func respondError(c *gin.Context, err error) {
	code := getStatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = domain.ErrInternalServerError.Error()
	}
	c.JSON(code, ResponseError{Message: msg})
}

// getStatusCode maps domain errors onto HTTP status codes.
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch err {
	case domain.ErrInternalServerError:
		return http.StatusInternalServerError
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrForbidden, domain.ErrPrivatePlan:
		return http.StatusForbidden
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
