package mood

import (
	"strings"
	"time"
)

// Mood 表示单日或单时段的分类情绪。
// 零值 None 代表缺失/未填写，序数为 0，参与计算时视为无效。
type Mood int

const (
	None Mood = iota
	Sad
	Neutral
	Good
	Great
)

var moodLabels = map[Mood]string{
	Sad:     "Sad",
	Neutral: "Neutral",
	Good:    "Good",
	Great:   "Great",
}

// Label 返回情绪的展示文本，None 返回空字符串。
func (m Mood) Label() string {
	return moodLabels[m]
}

// Ordinal 返回情绪的序数值（Sad=1 … Great=4），缺失或非法值返回 0。
func (m Mood) Ordinal() int {
	if m < Sad || m > Great {
		return 0
	}
	return int(m)
}

// Parse 把文本标签解析为 Mood，大小写不敏感；无法识别时返回 None。
func Parse(label string) Mood {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "sad":
		return Sad
	case "neutral":
		return Neutral
	case "good":
		return Good
	case "great":
		return Great
	default:
		return None
	}
}

// Slots 是一天内固定的六个记录时段，顺序即存储顺序。
var Slots = []string{
	"6am-9am",
	"9am-12pm",
	"12pm-3pm",
	"3pm-6pm",
	"6pm-9pm",
	"9pm-12am",
}

// SlotCount 时段数量
const SlotCount = 6

// Entry 是分析器读取的单日只读快照。
// 字段均为宽松语义：缺失的睡眠为 nil，缺失的文本为空串，
// AverageMood 缺失时为 None（序数 0）。
type Entry struct {
	Date        time.Time
	AverageMood Mood
	SleepHours  *float64
	StressLevel int
	Activity    string
	Emotions    string
	Notes       string
}

// AverageMood 把已填写时段的序数值取算术平均后落回分类标签。
// 边界值归入较低档（<=1.5 Sad、<=2.5 Neutral、<=3.5 Good、其余 Great）。
// 没有任何时段填写时返回 None，调用方应视为"数据不足"而非错误。
func AverageMood(slots []Mood) Mood {
	sum, count := 0, 0
	for _, m := range slots {
		if o := m.Ordinal(); o > 0 {
			sum += o
			count++
		}
	}

	if count == 0 {
		return None
	}

	avg := float64(sum) / float64(count)
	switch {
	case avg <= 1.5:
		return Sad
	case avg <= 2.5:
		return Neutral
	case avg <= 3.5:
		return Good
	default:
		return Great
	}
}
