package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/activity"
	"github.com/fekuna/omnipos-pos-service/internal/activity/dto"
	"github.com/fekuna/omnipos-pos-service/internal/api"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	uc     activity.UseCase
	logger logger.ZapLogger
}

func NewActivityHandler(uc activity.UseCase, log logger.ZapLogger) *ActivityHandler {
	return &ActivityHandler{uc: uc, logger: log}
}

func (h *ActivityHandler) ListActivity(c *gin.Context) {
	page := api.Pagination(c, 50)
	start, end := api.DateRange(c)

	logs, total, err := h.uc.ListActivity(c.Request.Context(), &dto.ActivityFilters{
		UserID:    c.Query("userId"),
		Action:    c.Query("action"),
		Module:    c.Query("module"),
		StartDate: start,
		EndDate:   end,
		Page:      page.Page,
		Limit:     page.Limit,
	})
	if err != nil {
		api.Error(c, h.logger, err, "fetching activity logs")
		return
	}
	c.JSON(http.StatusOK, api.Paginated("logs", logs, total, page))
}

// Track records action once the handler chain finished with a status below 400
// for an authenticated user. Recording runs in the background.
func Track(uc activity.UseCase, action model.ActivityAction, module model.ActivityModule) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		u := auth.CurrentUser(c)
		if c.Writer.Status() >= http.StatusBadRequest || u == nil {
			return
		}

		params := map[string]string{}
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		query := map[string]interface{}{}
		for k, v := range c.Request.URL.Query() {
			if len(v) == 1 {
				query[k] = v[0]
			} else {
				query[k] = v
			}
		}

		entry := &model.ActivityLog{
			UserID:      u.ID,
			Action:      action,
			Module:      module,
			Description: strings.ReplaceAll(string(action), "_", " ") + " performed",
			IPAddress:   c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
			Metadata: model.JSONMap{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"params": params,
				"query":  query,
			},
			Status: model.ActivitySuccess,
		}
		go uc.Record(context.Background(), entry)
	}
}
