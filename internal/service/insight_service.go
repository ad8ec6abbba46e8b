package service

import (
	"time"

	"github.com/moodlog/internal/mood"
)

// InsightService 把纯函数的模式分析与通知生成接到持久层上。
// 时钟通过构造注入，核心保持确定性、便于测试。
type InsightService struct {
	entries *EntryService
	now     func() time.Time
}

// Insight 是一次分析的聚合输出
type Insight struct {
	Date         time.Time
	AverageMood  mood.Mood
	Analysis     mood.Analysis
	Notification string
	TotalEntries int
}

// NewInsightService 构造 InsightService，默认使用系统时钟
func NewInsightService(entries *EntryService) *InsightService {
	return &InsightService{entries: entries, now: time.Now}
}

// WithClock 覆盖时钟来源，测试专用
func (s *InsightService) WithClock(now func() time.Time) *InsightService {
	s.now = now
	return s
}

// ForDate 针对指定日期（通常是刚保存的那天）生成分析与通知。
// 该日期必须已有记录；历史不足时分析为零值、通知仍可生成。
func (s *InsightService) ForDate(date time.Time) (*Insight, error) {
	entry, err := s.entries.Get(date)
	if err != nil {
		return nil, err
	}

	history, err := s.entries.History()
	if err != nil {
		return nil, err
	}

	current := entry.Snapshot()
	insight := &Insight{
		Date:         current.Date,
		AverageMood:  current.AverageMood,
		Analysis:     mood.Analyze(history),
		TotalEntries: len(history),
	}
	insight.Notification = mood.BuildNotification(
		current.AverageMood,
		current.StressLevel,
		current,
		history,
		s.now(),
	)

	return insight, nil
}

// Latest 针对日期最近的一条记录生成分析与通知。
func (s *InsightService) Latest() (*Insight, error) {
	entries, err := s.entries.List(true)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEntryNotFound
	}

	return s.ForDate(entries[0].EntryDate)
}
