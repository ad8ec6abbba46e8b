package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moodlog/internal/db"
	"github.com/moodlog/internal/mood"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrEntryNotFound 在指定日期没有记录时返回
	ErrEntryNotFound = errors.New("mood entry not found")
	// ErrInvalidStressLevel 当压力值越界时返回
	ErrInvalidStressLevel = errors.New("stress level must be between 1 and 5")
	// ErrInvalidSleepHours 当睡眠时长越界时返回
	ErrInvalidSleepHours = errors.New("sleep hours must be between 0 and 24")
)

// EntryService 负责情绪日志的增删改查。
// 平均情绪在写入时由时段值重新计算，调用方无法直接指定。
type EntryService struct {
	db *gorm.DB
}

// EntryInput 定义保存一条日志时可配置的字段。
// SlotLabels 按固定时段顺序给出标签文本，未填写的位置留空串。
type EntryInput struct {
	Date        time.Time
	SlotLabels  []string
	SleepHours  *float64
	StressLevel int
	Activity    string
	Emotions    string
	Notes       string
}

// NewEntryService 构造 EntryService
func NewEntryService(gdb *gorm.DB) *EntryService {
	return &EntryService{db: gdb}
}

// Upsert 按日期幂等保存：同一天已有记录时整体覆盖，否则创建。
// 返回落库后的记录（含重新推导的平均情绪）。
func (s *EntryService) Upsert(input EntryInput) (*db.MoodEntry, error) {
	if err := validateEntryInput(input); err != nil {
		return nil, err
	}

	entry := db.MoodEntry{
		EntryDate:   normalizeToDate(input.Date),
		SleepHours:  input.SleepHours,
		StressLevel: input.StressLevel,
		Activity:    strings.TrimSpace(input.Activity),
		Emotions:    strings.TrimSpace(input.Emotions),
		Notes:       strings.TrimSpace(input.Notes),
	}
	entry.SetSlotLabels(normalizeSlotLabels(input.SlotLabels))
	entry.AverageMood = mood.AverageMood(entry.SlotMoods()).Label()

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entry_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"slot_early_morn", "slot_late_morn", "slot_early_noon",
			"slot_late_noon", "slot_evening", "slot_night",
			"average_mood", "sleep_hours", "stress_level",
			"activity", "emotions", "notes", "updated_at",
		}),
	}).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("upsert mood entry: %w", err)
	}

	if err := s.db.Where("entry_date = ?", entry.EntryDate).First(&entry).Error; err != nil {
		return nil, fmt.Errorf("reload mood entry: %w", err)
	}

	return &entry, nil
}

// Get 返回指定日期的记录
func (s *EntryService) Get(date time.Time) (*db.MoodEntry, error) {
	var entry db.MoodEntry
	if err := s.db.Where("entry_date = ?", normalizeToDate(date)).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get mood entry: %w", err)
	}
	return &entry, nil
}

// List 返回全部记录，desc 为真时按日期倒序（历史页默认最近在前）。
func (s *EntryService) List(desc bool) ([]db.MoodEntry, error) {
	order := "entry_date ASC"
	if desc {
		order = "entry_date DESC"
	}

	var entries []db.MoodEntry
	if err := s.db.Order(order).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	return entries, nil
}

// History 返回按日期升序的分析快照集合。
func (s *EntryService) History() ([]mood.Entry, error) {
	entries, err := s.List(false)
	if err != nil {
		return nil, err
	}

	history := make([]mood.Entry, 0, len(entries))
	for i := range entries {
		history = append(history, entries[i].Snapshot())
	}
	return history, nil
}

// Count 返回累计记录条数
func (s *EntryService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&db.MoodEntry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count mood entries: %w", err)
	}
	return count, nil
}

// Delete 删除指定日期的记录
func (s *EntryService) Delete(date time.Time) error {
	result := s.db.Where("entry_date = ?", normalizeToDate(date)).Delete(&db.MoodEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete mood entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteAll 清空全部记录（对应前端的 Clear All Data）
func (s *EntryService) DeleteAll() error {
	if err := s.db.Where("1 = 1").Delete(&db.MoodEntry{}).Error; err != nil {
		return fmt.Errorf("clear mood entries: %w", err)
	}
	return nil
}

// ChartPoint 是情绪/压力趋势图的一个数据点
type ChartPoint struct {
	Date      string  `json:"date"`
	MoodValue int     `json:"mood_value"`
	MoodLabel string  `json:"mood_label"`
	Stress    int     `json:"stress"`
	Sleep     float64 `json:"sleep,omitempty"`
}

// ChartSeries 返回按日期升序、且已有平均情绪的记录构成的图表序列。
// 未填写任何时段的日子没有可画的点，直接跳过。
func (s *EntryService) ChartSeries() ([]ChartPoint, error) {
	entries, err := s.List(false)
	if err != nil {
		return nil, err
	}

	points := make([]ChartPoint, 0, len(entries))
	for i := range entries {
		m := mood.Parse(entries[i].AverageMood)
		if m.Ordinal() == 0 {
			continue
		}

		point := ChartPoint{
			Date:      entries[i].EntryDate.Format("2006-01-02"),
			MoodValue: m.Ordinal(),
			MoodLabel: m.Label(),
			Stress:    entries[i].StressLevel,
		}
		if entries[i].SleepHours != nil {
			point.Sleep = *entries[i].SleepHours
		}
		points = append(points, point)
	}

	return points, nil
}

func validateEntryInput(input EntryInput) error {
	if input.StressLevel < 1 || input.StressLevel > 5 {
		return ErrInvalidStressLevel
	}
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
		return ErrInvalidSleepHours
	}
	if input.Date.IsZero() {
		return fmt.Errorf("entry date is required")
	}
	return nil
}

// normalizeSlotLabels 把标签统一成枚举的标准文本，未知标签落为空串。
func normalizeSlotLabels(labels []string) []string {
	normalized := make([]string, mood.SlotCount)
	for i := 0; i < mood.SlotCount && i < len(labels); i++ {
		normalized[i] = mood.Parse(labels[i]).Label()
	}
	return normalized
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
