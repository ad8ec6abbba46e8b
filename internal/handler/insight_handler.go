package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodlog/internal/service"
)

// GetInsights 返回最近一条记录的模式分析与通知文案。
func (a *API) GetInsights(c *gin.Context) {
	insight, err := a.insights.Latest()
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "还没有任何记录")
			return
		}
		respondError(c, http.StatusInternalServerError, "生成分析失败")
		return
	}

	c.JSON(http.StatusOK, insightToPayload(insight))
}

// GetInsightForDate 返回指定日期的分析与通知。
func (a *API) GetInsightForDate(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的日期")
		return
	}

	insight, err := a.insights.ForDate(date)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "该日期没有记录")
			return
		}
		respondError(c, http.StatusInternalServerError, "生成分析失败")
		return
	}

	c.JSON(http.StatusOK, insightToPayload(insight))
}

func insightToPayload(insight *service.Insight) gin.H {
	payload := gin.H{
		"date":          insight.Date.Format(dateFormat),
		"notification":  insight.Notification,
		"analysis":      analysisToPayload(insight.Analysis),
		"total_entries": insight.TotalEntries,
	}

	if insight.AverageMood.Ordinal() > 0 {
		payload["average_mood"] = insight.AverageMood.Label()
		payload["mood_value"] = insight.AverageMood.Ordinal()
	}

	return payload
}
