package service

import (
	"errors"
	"testing"
	"time"

	"github.com/moodlog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEntryTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.MoodEntry{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

var entryTestDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)

func TestEntryServiceUpsertComputesAverage(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	entry, err := svc.Upsert(EntryInput{
		Date:        entryTestDate,
		SlotLabels:  []string{"Good", "Great", "", "", "", ""},
		SleepHours:  floatPtr(7.5),
		StressLevel: 2,
		Activity:    "morning walk",
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	// (3+4)/2 = 3.5 → 落入 Good
	if entry.AverageMood != "Good" {
		t.Fatalf("expected average mood Good, got %q", entry.AverageMood)
	}

	if entry.SlotEarlyMorn != "Good" || entry.SlotLateMorn != "Great" {
		t.Fatalf("unexpected slot labels: %v", entry.SlotLabels())
	}
}

func TestEntryServiceUpsertNoSlotsLeavesAverageEmpty(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	entry, err := svc.Upsert(EntryInput{
		Date:        entryTestDate,
		StressLevel: 3,
		Notes:       "slept all day",
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	if entry.AverageMood != "" {
		t.Fatalf("expected empty average mood, got %q", entry.AverageMood)
	}
}

func TestEntryServiceUpsertReplacesSameDate(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	if _, err := svc.Upsert(EntryInput{
		Date:        entryTestDate,
		SlotLabels:  []string{"Sad"},
		StressLevel: 4,
		Notes:       "first attempt",
	}); err != nil {
		t.Fatalf("first Upsert returned error: %v", err)
	}

	// 同一天（不同时刻）再次提交应整体覆盖而非新增
	updated, err := svc.Upsert(EntryInput{
		Date:        entryTestDate.Add(14 * time.Hour),
		SlotLabels:  []string{"Great", "Great"},
		StressLevel: 1,
		Notes:       "rewritten",
	})
	if err != nil {
		t.Fatalf("second Upsert returned error: %v", err)
	}

	if updated.AverageMood != "Great" {
		t.Fatalf("expected rewritten average Great, got %q", updated.AverageMood)
	}
	if updated.Notes != "rewritten" {
		t.Fatalf("expected notes to be replaced, got %q", updated.Notes)
	}

	count, err := svc.Count()
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 entry after duplicate-date upsert, got %d", count)
	}
}

func TestEntryServiceUpsertValidation(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	if _, err := svc.Upsert(EntryInput{Date: entryTestDate, StressLevel: 0}); !errors.Is(err, ErrInvalidStressLevel) {
		t.Fatalf("expected ErrInvalidStressLevel, got %v", err)
	}
	if _, err := svc.Upsert(EntryInput{Date: entryTestDate, StressLevel: 6}); !errors.Is(err, ErrInvalidStressLevel) {
		t.Fatalf("expected ErrInvalidStressLevel for 6, got %v", err)
	}
	if _, err := svc.Upsert(EntryInput{Date: entryTestDate, StressLevel: 3, SleepHours: floatPtr(25)}); !errors.Is(err, ErrInvalidSleepHours) {
		t.Fatalf("expected ErrInvalidSleepHours, got %v", err)
	}
	if _, err := svc.Upsert(EntryInput{StressLevel: 3}); err == nil {
		t.Fatal("expected error for zero date")
	}
}

func TestEntryServiceUpsertIgnoresUnknownSlotLabels(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	entry, err := svc.Upsert(EntryInput{
		Date:        entryTestDate,
		SlotLabels:  []string{"ecstatic", "good"},
		StressLevel: 3,
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	if entry.SlotEarlyMorn != "" {
		t.Fatalf("expected unknown label to be dropped, got %q", entry.SlotEarlyMorn)
	}
	if entry.SlotLateMorn != "Good" {
		t.Fatalf("expected lowercase label normalized to Good, got %q", entry.SlotLateMorn)
	}
	if entry.AverageMood != "Good" {
		t.Fatalf("expected average from the single valid slot, got %q", entry.AverageMood)
	}
}

func TestEntryServiceListAndHistoryOrdering(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	for i := 0; i < 3; i++ {
		if _, err := svc.Upsert(EntryInput{
			Date:        entryTestDate.AddDate(0, 0, i),
			SlotLabels:  []string{"Good"},
			StressLevel: 3,
		}); err != nil {
			t.Fatalf("Upsert returned error: %v", err)
		}
	}

	desc, err := svc.List(true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(desc) != 3 || !desc[0].EntryDate.After(desc[2].EntryDate) {
		t.Fatalf("expected descending list, got %v", desc)
	}

	history, err := svc.History()
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 3 || !history[0].Date.Before(history[2].Date) {
		t.Fatalf("expected ascending history, got %v", history)
	}
}

func TestEntryServiceDelete(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	if _, err := svc.Upsert(EntryInput{Date: entryTestDate, SlotLabels: []string{"Good"}, StressLevel: 3}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	if err := svc.Delete(entryTestDate); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := svc.Get(entryTestDate); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound after delete, got %v", err)
	}

	if err := svc.Delete(entryTestDate); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound for missing date, got %v", err)
	}
}

func TestEntryServiceDeleteAll(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	for i := 0; i < 4; i++ {
		if _, err := svc.Upsert(EntryInput{
			Date:        entryTestDate.AddDate(0, 0, i),
			SlotLabels:  []string{"Neutral"},
			StressLevel: 3,
		}); err != nil {
			t.Fatalf("Upsert returned error: %v", err)
		}
	}

	if err := svc.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll returned error: %v", err)
	}

	count, err := svc.Count()
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d entries", count)
	}
}

func TestEntryServiceChartSeries(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB)

	if _, err := svc.Upsert(EntryInput{
		Date:        entryTestDate,
		SlotLabels:  []string{"Great"},
		SleepHours:  floatPtr(8),
		StressLevel: 2,
	}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	// 没有任何时段的日子不产生数据点
	if _, err := svc.Upsert(EntryInput{
		Date:        entryTestDate.AddDate(0, 0, 1),
		StressLevel: 4,
	}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	if _, err := svc.Upsert(EntryInput{
		Date:        entryTestDate.AddDate(0, 0, 2),
		SlotLabels:  []string{"Sad"},
		StressLevel: 5,
	}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	points, err := svc.ChartSeries()
	if err != nil {
		t.Fatalf("ChartSeries returned error: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 chart points, got %d", len(points))
	}
	if points[0].MoodValue != 4 || points[0].Stress != 2 || points[0].Sleep != 8 {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
	if points[1].MoodValue != 1 || points[1].Date != entryTestDate.AddDate(0, 0, 2).Format("2006-01-02") {
		t.Fatalf("unexpected second point: %+v", points[1])
	}
}
