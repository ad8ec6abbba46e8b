package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/moodlog/internal/db"
	"github.com/moodlog/internal/mood"
	"github.com/moodlog/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type entryPayload struct {
	Date        string            `json:"date"`
	SlotMoods   map[string]string `json:"slot_moods"`
	SleepHours  *float64          `json:"sleep_hours"`
	StressLevel int               `json:"stress_level"`
	Activity    string            `json:"activity"`
	Emotions    string            `json:"emotions"`
	Notes       string            `json:"notes"`
}

// SaveEntry 保存（或覆盖）一天的情绪日志，并附带该日的分析与通知。
func (a *API) SaveEntry(c *gin.Context) {
	input, ok := a.parseEntryInput(c)
	if !ok {
		return
	}

	entry, err := a.entries.Upsert(input)
	if err != nil {
		handleEntryError(c, err)
		return
	}

	insight, err := a.insights.ForDate(entry.EntryDate)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "生成分析失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":        entryToPayload(entry),
		"notification": insight.Notification,
		"analysis":     analysisToPayload(insight.Analysis),
	})
}

// ListEntries 返回全部历史记录，最近的在前，notes 渲染为安全 HTML。
func (a *API) ListEntries(c *gin.Context) {
	entries, err := a.entries.List(true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取历史记录失败")
		return
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		item := entryToPayload(&entries[i])
		if entries[i].Notes != "" {
			item["notes_html"] = renderNotes(entries[i].Notes)
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"entries": items, "total": len(items)})
}

// GetEntry 返回指定日期的记录
func (a *API) GetEntry(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的日期")
		return
	}

	entry, err := a.entries.Get(date)
	if err != nil {
		handleEntryError(c, err)
		return
	}

	item := entryToPayload(entry)
	if entry.Notes != "" {
		item["notes_html"] = renderNotes(entry.Notes)
	}

	c.JSON(http.StatusOK, gin.H{"entry": item})
}

// DeleteEntry 删除指定日期的记录
func (a *API) DeleteEntry(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的日期")
		return
	}

	if err := a.entries.Delete(date); err != nil {
		handleEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ClearEntries 清空全部历史记录
func (a *API) ClearEntries(c *gin.Context) {
	if err := a.entries.DeleteAll(); err != nil {
		respondError(c, http.StatusInternalServerError, "清空记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func (a *API) parseEntryInput(c *gin.Context) (service.EntryInput, bool) {
	var payload entryPayload

	if isJSONRequest(c) {
		if !bindJSON(c, &payload, "请求参数不合法") {
			return service.EntryInput{}, false
		}
	} else {
		payload.Date = c.PostForm("date")
		payload.Activity = c.PostForm("activity")
		payload.Emotions = c.PostForm("emotions")
		payload.Notes = c.PostForm("notes")

		if raw := c.PostForm("stress_level"); raw != "" {
			val, err := strconv.Atoi(raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "压力等级应为数字")
				return service.EntryInput{}, false
			}
			payload.StressLevel = val
		}
		if raw := c.PostForm("sleep_hours"); raw != "" {
			val, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondError(c, http.StatusBadRequest, "睡眠时长应为数字")
				return service.EntryInput{}, false
			}
			payload.SleepHours = &val
		}

		payload.SlotMoods = make(map[string]string, mood.SlotCount)
		for _, slot := range mood.Slots {
			if val := c.PostForm("slot_" + slot); val != "" {
				payload.SlotMoods[slot] = val
			}
		}
	}

	if payload.Date == "" {
		respondError(c, http.StatusBadRequest, "请选择日期")
		return service.EntryInput{}, false
	}

	date, err := time.ParseInLocation(dateFormat, payload.Date, time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的日期")
		return service.EntryInput{}, false
	}

	labels := make([]string, mood.SlotCount)
	for i, slot := range mood.Slots {
		labels[i] = payload.SlotMoods[slot]
	}

	return service.EntryInput{
		Date:        date,
		SlotLabels:  labels,
		SleepHours:  payload.SleepHours,
		StressLevel: payload.StressLevel,
		Activity:    payload.Activity,
		Emotions:    payload.Emotions,
		Notes:       payload.Notes,
	}, true
}

func entryToPayload(entry *db.MoodEntry) gin.H {
	slots := gin.H{}
	labels := entry.SlotLabels()
	for i, slot := range mood.Slots {
		if labels[i] != "" {
			slots[slot] = labels[i]
		}
	}

	item := gin.H{
		"date":         entry.EntryDate.Format(dateFormat),
		"slot_moods":   slots,
		"stress_level": entry.StressLevel,
		"activity":     entry.Activity,
		"emotions":     entry.Emotions,
		"notes":        entry.Notes,
	}

	if entry.AverageMood != "" {
		item["average_mood"] = entry.AverageMood
		item["mood_value"] = mood.Parse(entry.AverageMood).Ordinal()
	}
	if entry.SleepHours != nil {
		item["sleep_hours"] = *entry.SleepHours
	}

	return item
}

func analysisToPayload(analysis mood.Analysis) gin.H {
	payload := gin.H{
		"streak_days":       analysis.StreakDays,
		"strengths":         analysis.Strengths,
		"improvement_areas": analysis.Improvements,
	}

	if analysis.Trend != nil {
		payload["trend"] = gin.H{
			"mood_trend":   analysis.Trend.MoodTrend,
			"stress_trend": analysis.Trend.StressTrend,
			"mood_mean":    analysis.Trend.MoodMean,
			"stress_mean":  analysis.Trend.StressMean,
		}
	}
	if analysis.Comparison != nil {
		payload["comparison"] = gin.H{
			"last_week_mean": analysis.Comparison.LastWeekMean,
			"this_week_mean": analysis.Comparison.ThisWeekMean,
			"improvement":    analysis.Comparison.Improvement,
		}
	}

	return payload
}

// renderNotes 把备注里的 Markdown 渲染成消毒后的 HTML
func renderNotes(notes string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(notes), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}

func handleEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		respondError(c, http.StatusNotFound, "该日期没有记录")
	case errors.Is(err, service.ErrInvalidStressLevel):
		respondError(c, http.StatusBadRequest, "压力等级需在 1-5 之间")
	case errors.Is(err, service.ErrInvalidSleepHours):
		respondError(c, http.StatusBadRequest, "睡眠时长需在 0-24 之间")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
