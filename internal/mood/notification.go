package mood

import (
	"fmt"
	"strings"
	"time"
)

// 附加从句的最大数量。超出的从句仍会被计算，但被静默丢弃，
// 因此调整 contextClauses 内的优先级顺序会直接影响最终可见内容。
const maxExtraClauses = 3

// 活动关键词词表，按类别优先级排列：运动 > 正念 > 社交，命中首个类别即停止。
var activityVocabulary = []struct {
	category string
	terms    []string
	clause   string
}{
	{
		category: "exercise",
		terms:    []string{"exercise", "run", "jog", "walk", "gym", "workout", "swim", "bike", "cycling", "yoga", "sport", "hike"},
		clause:   "Physical activity like that is one of the best mood boosters there is.",
	},
	{
		category: "mindfulness",
		terms:    []string{"meditat", "mindful", "breath", "journal", "read"},
		clause:   "Taking mindful time like that really helps settle the mind.",
	},
	{
		category: "social",
		terms:    []string{"friend", "family", "social", "party", "dinner", "call", "date"},
		clause:   "Time with people you care about does wonders for wellbeing.",
	},
}

// BuildNotification 为刚保存的记录生成一条上下文化的通知文案。
// 输出只依赖入参与注入的 now（时段/星期为只读环境输入），同样输入必得同样输出。
// averageMood 缺失（序数 0）时没有可说的内容，返回空串。
func BuildNotification(averageMood Mood, stressLevel int, current Entry, history []Entry, now time.Time) string {
	if averageMood.Ordinal() == 0 {
		return ""
	}

	analysis := Analyze(history)

	parts := []string{openingClause(averageMood, analysis)}

	clauses := contextClauses(averageMood, stressLevel, current, analysis, now)
	if len(clauses) > maxExtraClauses {
		clauses = clauses[:maxExtraClauses]
	}
	parts = append(parts, clauses...)

	parts = append(parts, closingClause(averageMood, len(history)))

	return strings.Join(parts, " ")
}

// openingClause 按平均情绪序数选择开场白，连胜与趋势上下文优先于基础模板。
func openingClause(averageMood Mood, analysis Analysis) string {
	improving := analysis.Trend != nil && analysis.Trend.MoodTrend == TrendImproving
	declining := analysis.Trend != nil && analysis.Trend.MoodTrend == TrendDeclining

	switch averageMood {
	case Great:
		if analysis.StreakDays >= 3 {
			return fmt.Sprintf("Fantastic! That's %d days of good moods in a row.", analysis.StreakDays)
		}
		if improving {
			return "Fantastic day — and your mood has been climbing all week."
		}
		return "What a fantastic day — your mood was great across the board!"
	case Good:
		if analysis.StreakDays >= 3 {
			return fmt.Sprintf("Another good day — that makes %d positive days and counting.", analysis.StreakDays)
		}
		if improving {
			return "A good day, and the overall trend keeps pointing up."
		}
		return "A genuinely good day — nice work."
	case Neutral:
		if declining {
			return "Things have dipped a little lately, but today held steady."
		}
		return "A steady, balanced day. Sometimes that's exactly what's needed."
	default:
		if declining {
			return "The last few days have been hard — thank you for still showing up."
		}
		return "Today felt heavy. Be gentle with yourself tonight."
	}
}

// contextClauses 按固定优先级生成候选从句：
// 优势（睡眠、压力、活动）→ 趋势鼓励 → 周对比 → 时段 → 睡眠 → 活动关键词 → 改进建议。
func contextClauses(averageMood Mood, stressLevel int, current Entry, analysis Analysis, now time.Time) []string {
	var clauses []string

	if analysis.HasStrength(TagGoodSleep) {
		clauses = append(clauses, "Your sleep has been consistently solid this week.")
	}
	// 近期压力均值达标才夸，且当天压力明显升高时按住不表，避免文案与当天体感相悖。
	if analysis.HasStrength(TagStressManagement) && stressLevel <= 3 {
		clauses = append(clauses, "You've been keeping stress impressively low — that takes skill.")
	}
	if analysis.HasStrength(TagActivityTracking) {
		clauses = append(clauses, "Great job logging your activities so consistently.")
	}

	if analysis.Trend != nil && analysis.Trend.MoodTrend == TrendImproving {
		clauses = append(clauses, "Your mood has been trending upward over the last few days.")
	}

	if analysis.Comparison != nil && analysis.Comparison.Improvement {
		delta := analysis.Comparison.ThisWeekMean - analysis.Comparison.LastWeekMean
		clauses = append(clauses, fmt.Sprintf("Your average mood is up %.1f from last week.", delta))
	}

	clauses = append(clauses, daypartClause(now))

	if clause := sleepClause(averageMood, current); clause != "" {
		clauses = append(clauses, clause)
	}

	if clause := activityClause(current.Activity); clause != "" {
		clauses = append(clauses, clause)
	}

	if clause := suggestionClause(averageMood, analysis); clause != "" {
		clauses = append(clauses, clause)
	}

	return clauses
}

// daypartClause 依当前时刻归入夜间/上午/下午/傍晚四个时段，恰有一条命中。
func daypartClause(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour >= 22 || hour < 6:
		return "Logging this late — don't forget to give yourself some rest."
	case hour < 12:
		if now.Weekday() == time.Monday {
			return "A bright start to the week!"
		}
		return "A positive start like this can set the tone for the whole day."
	case hour < 17:
		return "Hope the rest of your afternoon keeps this rhythm."
	default:
		return "A good moment to wind down and reflect on the day."
	}
}

// sleepClause 仅当记录包含睡眠时长并跨过 8h/6h 阈值且与情绪同向时出现。
func sleepClause(averageMood Mood, current Entry) string {
	if current.SleepHours == nil {
		return ""
	}

	hours := *current.SleepHours
	switch {
	case hours >= 8 && averageMood.Ordinal() >= 3:
		return "That solid night of sleep is clearly paying off."
	case hours < 6 && averageMood.Ordinal() <= 2:
		return "Short sleep may be weighing on your mood — an earlier night could help."
	default:
		return ""
	}
}

// activityClause 对活动文本做子串匹配，按词表类别顺序取第一个命中。
func activityClause(activity string) string {
	lowered := strings.ToLower(strings.TrimSpace(activity))
	if lowered == "" {
		return ""
	}

	for _, group := range activityVocabulary {
		for _, term := range group.terms {
			if strings.Contains(lowered, term) {
				return group.clause
			}
		}
	}

	return ""
}

// suggestionClause 只在情绪偏低时给出温和建议；睡眠建议优先，
// 压力建议仅在睡眠建议未触发时检查，两者互斥。
func suggestionClause(averageMood Mood, analysis Analysis) string {
	if averageMood.Ordinal() > 2 {
		return ""
	}

	if analysis.HasImprovement(TagSleep) {
		return "Getting to bed a little earlier this week might lift things."
	}
	if analysis.HasImprovement(TagStress) {
		return "A few short breaks to decompress could ease the pressure."
	}

	return ""
}

// closingClause 依累计记录数收尾：满 7 条引用确切总数，否则按情绪给简短结语。
func closingClause(averageMood Mood, total int) string {
	if total >= 7 {
		return fmt.Sprintf("You've logged %d entries — keep building the picture!", total)
	}
	if averageMood.Ordinal() >= 3 {
		return "Keep riding this wave!"
	}
	return "Tomorrow is a fresh start."
}
