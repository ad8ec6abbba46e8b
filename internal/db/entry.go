package db

import (
	"time"

	"github.com/moodlog/internal/mood"
	"gorm.io/gorm"
)

// MoodEntry 记录单日的情绪日志。
// EntryDate 截断到零点并带唯一索引，同一天重复提交走更新而非追加。
// 六个时段列存储分类标签文本（Sad/Neutral/Good/Great），空串表示未填写。
// AverageMood 始终由时段值重新推导落库，不接受外部写入。
type MoodEntry struct {
	gorm.Model
	EntryDate     time.Time `gorm:"uniqueIndex:idx_mood_entries_date"`
	SlotEarlyMorn string    // 6am-9am
	SlotLateMorn  string    // 9am-12pm
	SlotEarlyNoon string    // 12pm-3pm
	SlotLateNoon  string    // 3pm-6pm
	SlotEvening   string    // 6pm-9pm
	SlotNight     string    // 9pm-12am
	AverageMood   string
	SleepHours    *float64
	StressLevel   int
	Activity      string
	Emotions      string
	Notes         string
}

// TableName 固定表名，便于原生查询
func (MoodEntry) TableName() string {
	return "mood_entries"
}

// SlotLabels 按固定时段顺序返回六个标签文本。
func (e *MoodEntry) SlotLabels() []string {
	return []string{
		e.SlotEarlyMorn,
		e.SlotLateMorn,
		e.SlotEarlyNoon,
		e.SlotLateNoon,
		e.SlotEvening,
		e.SlotNight,
	}
}

// SetSlotLabels 按固定时段顺序写入标签文本，超出部分忽略。
func (e *MoodEntry) SetSlotLabels(labels []string) {
	fields := []*string{
		&e.SlotEarlyMorn,
		&e.SlotLateMorn,
		&e.SlotEarlyNoon,
		&e.SlotLateNoon,
		&e.SlotEvening,
		&e.SlotNight,
	}
	for i, field := range fields {
		if i < len(labels) {
			*field = labels[i]
		} else {
			*field = ""
		}
	}
}

// SlotMoods 把时段标签解析为闭合枚举值，未知标签按缺失处理。
func (e *MoodEntry) SlotMoods() []mood.Mood {
	labels := e.SlotLabels()
	moods := make([]mood.Mood, len(labels))
	for i, label := range labels {
		moods[i] = mood.Parse(label)
	}
	return moods
}

// Snapshot 导出分析器所需的只读快照。
func (e *MoodEntry) Snapshot() mood.Entry {
	return mood.Entry{
		Date:        e.EntryDate,
		AverageMood: mood.Parse(e.AverageMood),
		SleepHours:  e.SleepHours,
		StressLevel: e.StressLevel,
		Activity:    e.Activity,
		Emotions:    e.Emotions,
		Notes:       e.Notes,
	}
}
