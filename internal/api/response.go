// Package api holds the request and response helpers shared by the HTTP handlers.
package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error writes err as {message}. Unexpected errors are logged and reported as
// "Error <doing>", with the cause attached outside release mode.
func Error(c *gin.Context, log logger.ZapLogger, err error, doing string) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindUnexpected {
		c.JSON(apperror.HTTPStatus(err), gin.H{"message": appErr.Message})
		return
	}

	log.Error("Error "+doing,
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	body := gin.H{"message": "Error " + doing}
	if gin.Mode() != gin.ReleaseMode {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

type Page struct {
	Page  int
	Limit int
}

// Pagination reads page and limit from the query string.
func Pagination(c *gin.Context, defaultLimit int) Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return Page{Page: page, Limit: limit}
}

// Paginated builds the list envelope used by every paginated endpoint.
func Paginated(key string, items interface{}, total int, p Page) gin.H {
	return gin.H{
		key:           items,
		"totalPages":  int(math.Ceil(float64(total) / float64(p.Limit))),
		"currentPage": p.Page,
		"total":       total,
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// DateRange parses startDate and endDate. An unparsable value is ignored.
func DateRange(c *gin.Context) (start, end *time.Time) {
	return parseDate(c.Query("startDate")), parseDate(c.Query("endDate"))
}

func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// BoolQuery returns nil when the parameter is absent or not a boolean.
func BoolQuery(c *gin.Context, key string) *bool {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
