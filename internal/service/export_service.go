package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/moodlog/internal/db"
	"github.com/moodlog/internal/mood"
)

// ExportService 负责历史数据的备份导出（JSON 与 CSV 两种格式）。
type ExportService struct {
	entries *EntryService
}

// ExportEntry 是导出文件里单条记录的形状，字段命名沿用存量备份格式。
type ExportEntry struct {
	Date        string   `json:"date"`
	SlotMoods   []string `json:"slot_moods"`
	AverageMood string   `json:"average_mood,omitempty"`
	Sleep       *float64 `json:"sleep,omitempty"`
	Stress      int      `json:"stress"`
	Activity    string   `json:"activity,omitempty"`
	Emotions    string   `json:"emotions,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// ExportPayload 是 JSON 备份的顶层结构
type ExportPayload struct {
	Entries      []ExportEntry `json:"entries"`
	ExportDate   string        `json:"export_date"`
	TotalEntries int           `json:"total_entries"`
}

// NewExportService 构造 ExportService
func NewExportService(entries *EntryService) *ExportService {
	return &ExportService{entries: entries}
}

// BuildPayload 汇总全部历史为 JSON 备份载荷。
func (s *ExportService) BuildPayload(now time.Time) (*ExportPayload, error) {
	entries, err := s.entries.List(false)
	if err != nil {
		return nil, err
	}

	payload := &ExportPayload{
		Entries:      make([]ExportEntry, 0, len(entries)),
		ExportDate:   now.Format(time.RFC3339),
		TotalEntries: len(entries),
	}

	for i := range entries {
		payload.Entries = append(payload.Entries, exportEntryOf(&entries[i]))
	}

	return payload, nil
}

// BuildCSV 把全部历史渲染为表格导出，首行为表头。
func (s *ExportService) BuildCSV() ([]byte, error) {
	entries, err := s.entries.List(false)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := append([]string{"date"}, mood.Slots...)
	header = append(header, "average_mood", "sleep_hours", "stress_level", "activity", "emotions", "notes")
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for i := range entries {
		row := append([]string{entries[i].EntryDate.Format("2006-01-02")}, entries[i].SlotLabels()...)

		sleep := ""
		if entries[i].SleepHours != nil {
			sleep = strconv.FormatFloat(*entries[i].SleepHours, 'f', -1, 64)
		}
		row = append(row,
			entries[i].AverageMood,
			sleep,
			strconv.Itoa(entries[i].StressLevel),
			entries[i].Activity,
			entries[i].Emotions,
			entries[i].Notes,
		)

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportFilename 生成下载文件名：时间戳保证可读，uuid 避免同秒覆盖。
func ExportFilename(extension string, now time.Time) string {
	return fmt.Sprintf("mood_backup_%s-%s.%s", now.Format("20060102_150405"), uuid.NewString(), extension)
}

func exportEntryOf(entry *db.MoodEntry) ExportEntry {
	return ExportEntry{
		Date:        entry.EntryDate.Format("2006-01-02"),
		SlotMoods:   entry.SlotLabels(),
		AverageMood: entry.AverageMood,
		Sleep:       entry.SleepHours,
		Stress:      entry.StressLevel,
		Activity:    entry.Activity,
		Emotions:    entry.Emotions,
		Notes:       entry.Notes,
	}
}
