package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moodlog/internal/service"
)

// GetMoodStressChart 返回情绪/压力双轴趋势图所需的数据序列。
// 图表渲染在前端完成，这里只负责按日期升序给出数据点。
func (a *API) GetMoodStressChart(c *gin.Context) {
	points, err := a.entries.ChartSeries()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取图表数据失败")
		return
	}

	payload := gin.H{
		"series":       points,
		"point_count":  len(points),
		"generated_at": time.Now().Format(time.RFC3339),
	}
	if len(points) > 0 {
		payload["range"] = gin.H{
			"start": points[0].Date,
			"end":   points[len(points)-1].Date,
		}
	}

	c.JSON(http.StatusOK, payload)
}

// ExportJSON 下载全量历史的 JSON 备份。
func (a *API) ExportJSON(c *gin.Context) {
	now := time.Now()

	payload, err := a.exports.BuildPayload(now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出数据失败")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename("json", now)+`"`)
	c.JSON(http.StatusOK, payload)
}

// ExportCSV 下载全量历史的 CSV 表格。
func (a *API) ExportCSV(c *gin.Context) {
	now := time.Now()

	raw, err := a.exports.BuildCSV()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出数据失败")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename("csv", now)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", raw)
}
