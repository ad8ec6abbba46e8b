package mood

import "testing"

func TestAverageMoodBuckets(t *testing.T) {
	tests := []struct {
		name  string
		slots []Mood
		want  Mood
	}{
		{
			name:  "all great",
			slots: []Mood{Great, Great, Great, Great, Great, Great},
			want:  Great,
		},
		{
			name:  "boundary 1.5 rounds down to sad",
			slots: []Mood{Sad, Neutral},
			want:  Sad,
		},
		{
			name:  "boundary 2.5 rounds down to neutral",
			slots: []Mood{Neutral, Good},
			want:  Neutral,
		},
		{
			name:  "boundary 3.5 rounds down to good",
			slots: []Mood{Good, Great},
			want:  Good,
		},
		{
			name:  "exactly 4.0 is great",
			slots: []Mood{Great},
			want:  Great,
		},
		{
			name:  "unfilled slots are skipped",
			slots: []Mood{None, None, Good, None, None, None},
			want:  Good,
		},
		{
			name:  "mixed day leans neutral",
			slots: []Mood{Sad, Sad, Neutral, Good},
			want:  Neutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageMood(tt.slots); got != tt.want {
				t.Fatalf("AverageMood(%v) = %v, want %v", tt.slots, got, tt.want)
			}
		})
	}
}

func TestAverageMoodNoSlotsFilled(t *testing.T) {
	if got := AverageMood(nil); got != None {
		t.Fatalf("expected None for empty slots, got %v", got)
	}
	if got := AverageMood([]Mood{None, None, None, None, None, None}); got != None {
		t.Fatalf("expected None when no slot is filled, got %v", got)
	}
}

func TestAverageMoodIsPure(t *testing.T) {
	slots := []Mood{Good, Great, Neutral}
	first := AverageMood(slots)
	second := AverageMood(slots)
	if first != second {
		t.Fatalf("expected identical results, got %v then %v", first, second)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		label string
		want  Mood
	}{
		{"Sad", Sad},
		{"neutral", Neutral},
		{"  GOOD  ", Good},
		{"Great", Great},
		{"", None},
		{"ecstatic", None},
	}

	for _, tt := range tests {
		if got := Parse(tt.label); got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestOrdinalDefaultsToZero(t *testing.T) {
	if got := None.Ordinal(); got != 0 {
		t.Fatalf("expected ordinal 0 for None, got %d", got)
	}
	if got := Mood(42).Ordinal(); got != 0 {
		t.Fatalf("expected ordinal 0 for unknown mood, got %d", got)
	}
	if got := Great.Ordinal(); got != 4 {
		t.Fatalf("expected ordinal 4 for Great, got %d", got)
	}
}

func TestLabelRoundTrip(t *testing.T) {
	for _, m := range []Mood{Sad, Neutral, Good, Great} {
		if got := Parse(m.Label()); got != m {
			t.Fatalf("Parse(Label(%v)) = %v", m, got)
		}
	}
	if None.Label() != "" {
		t.Fatalf("expected empty label for None, got %q", None.Label())
	}
}
