package mood

import (
	"sort"
	"strings"
)

// 趋势分类取值
const (
	TrendImproving  = "improving"
	TrendDeclining  = "declining"
	TrendStable     = "stable"
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// 优势与改进项标签
const (
	TagGoodSleep        = "good_sleep"
	TagSleep            = "sleep"
	TagStressManagement = "stress_management"
	TagStress           = "stress"
	TagActivityTracking = "activity_tracking"
)

// Trend 描述最近 3 条记录的情绪/压力走向及均值。
type Trend struct {
	MoodTrend   string
	StressTrend string
	MoodMean    float64
	StressMean  float64
}

// WeekComparison 对比上一个 7 条窗口与当前 7 条窗口的情绪均值。
type WeekComparison struct {
	LastWeekMean float64
	ThisWeekMean float64
	Improvement  bool
}

// Analysis 是一次模式分析的完整结果。
// 历史不足时各子项保持零值：StreakDays=0、Trend/Comparison 为 nil、切片为空。
type Analysis struct {
	StreakDays   int
	Trend        *Trend
	Strengths    []string
	Improvements []string
	Comparison   *WeekComparison
}

// HasStrength 判断某个优势标签是否出现。
func (a Analysis) HasStrength(tag string) bool {
	return containsTag(a.Strengths, tag)
}

// HasImprovement 判断某个改进项标签是否出现。
func (a Analysis) HasImprovement(tag string) bool {
	return containsTag(a.Improvements, tag)
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Analyze 对调用方提供的完整历史（含刚提交的记录）做滚动模式分析。
// 输入只读；少于 2 条记录时返回零值结果。
func Analyze(history []Entry) Analysis {
	if len(history) < 2 {
		return Analysis{}
	}

	sorted := make([]Entry, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	recent := sorted
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}

	analysis := Analysis{
		StreakDays: positiveStreak(recent),
		Trend:      recentTrend(recent),
	}
	analysis.Strengths, analysis.Improvements = habitsOf(recent)
	analysis.Comparison = weekComparison(sorted)

	return analysis
}

// positiveStreak 从最近一天向前数连续情绪 >= Good 的天数，
// 遇到第一条不达标（含缺失平均情绪）即停止。
func positiveStreak(recent []Entry) int {
	streak := 0
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].AverageMood.Ordinal() < 3 {
			break
		}
		streak++
	}
	return streak
}

// recentTrend 取最近 3 条记录，用首尾严格比较判定走向并附带均值。
// 不足 3 条时没有趋势可言，返回 nil。
func recentTrend(recent []Entry) *Trend {
	if len(recent) < 3 {
		return nil
	}

	window := recent[len(recent)-3:]
	first, last := window[0], window[2]

	trend := &Trend{MoodTrend: TrendStable, StressTrend: TrendStable}

	switch {
	case last.AverageMood.Ordinal() > first.AverageMood.Ordinal():
		trend.MoodTrend = TrendImproving
	case last.AverageMood.Ordinal() < first.AverageMood.Ordinal():
		trend.MoodTrend = TrendDeclining
	}

	switch {
	case last.StressLevel > first.StressLevel:
		trend.StressTrend = TrendIncreasing
	case last.StressLevel < first.StressLevel:
		trend.StressTrend = TrendDecreasing
	}

	moodSum, stressSum := 0, 0
	for _, e := range window {
		moodSum += e.AverageMood.Ordinal()
		stressSum += e.StressLevel
	}
	trend.MoodMean = float64(moodSum) / 3
	trend.StressMean = float64(stressSum) / 3

	return trend
}

// habitsOf 根据最近窗口内的睡眠、压力与活动记录密度归纳优势与改进项。
func habitsOf(recent []Entry) (strengths, improvements []string) {
	sleepSum := 0.0
	sleepCount := 0
	stressSum := 0
	activityDays := 0

	for _, e := range recent {
		if e.SleepHours != nil {
			sleepSum += *e.SleepHours
			sleepCount++
		}
		stressSum += e.StressLevel
		if strings.TrimSpace(e.Activity) != "" {
			activityDays++
		}
	}

	if sleepCount > 0 {
		mean := sleepSum / float64(sleepCount)
		if mean >= 7.5 {
			strengths = append(strengths, TagGoodSleep)
		} else if mean < 6 {
			improvements = append(improvements, TagSleep)
		}
	}

	if len(recent) > 0 {
		mean := float64(stressSum) / float64(len(recent))
		if mean <= 2 {
			strengths = append(strengths, TagStressManagement)
		} else if mean >= 4 {
			improvements = append(improvements, TagStress)
		}
	}

	if activityDays >= 5 {
		strengths = append(strengths, TagActivityTracking)
	}

	return strengths, improvements
}

// weekComparison 当完整历史至少 14 条时，对比 [-14:-7] 与 [-7:] 两个窗口。
// 缺失平均情绪按序数 0 计入均值。
func weekComparison(sorted []Entry) *WeekComparison {
	if len(sorted) < 14 {
		return nil
	}

	lastWeek := sorted[len(sorted)-14 : len(sorted)-7]
	thisWeek := sorted[len(sorted)-7:]

	cmp := &WeekComparison{
		LastWeekMean: meanOrdinal(lastWeek),
		ThisWeekMean: meanOrdinal(thisWeek),
	}
	cmp.Improvement = cmp.ThisWeekMean > cmp.LastWeekMean

	return cmp
}

func meanOrdinal(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.AverageMood.Ordinal()
	}
	return float64(sum) / float64(len(entries))
}
