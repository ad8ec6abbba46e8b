package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/moodlog/internal/config"
	"github.com/moodlog/internal/db"
	"github.com/moodlog/internal/mood"
	"github.com/moodlog/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// 演示数据生成器：创建管理员账号并回填最近 30 天的心情记录
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	createAdminUser()
	createMoodEntries()

	fmt.Println("演示数据生成完成！")
	fmt.Println("用户: admin (密码: admin123)")
	fmt.Println("记录: 最近 30 天的心情日志")
}

func createAdminUser() {
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("用户已存在，跳过创建")
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := db.User{
		Username: "admin",
		Password: string(hashedPassword),
	}
	db.DB.Create(&admin)

	fmt.Println("✅ 管理员用户创建完成")
}

func createMoodEntries() {
	var count int64
	db.DB.Model(&db.MoodEntry{}).Count(&count)
	if count > 0 {
		fmt.Println("心情记录已存在，跳过创建")
		return
	}

	entries := service.NewEntryService(db.DB)
	rng := rand.New(rand.NewSource(42))

	labels := []string{
		mood.Sad.Label(),
		mood.Neutral.Label(),
		mood.Good.Label(),
		mood.Great.Label(),
	}
	activities := []string{
		"morning run",
		"evening walk",
		"meditation session",
		"dinner with friends",
		"",
	}

	today := time.Now()
	created := 0
	for offset := 29; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset)

		slotLabels := make([]string, mood.SlotCount)
		for i := range slotLabels {
			// 约三成的时段留空，模拟真实的记录习惯
			if rng.Intn(10) < 3 {
				continue
			}
			slotLabels[i] = labels[rng.Intn(len(labels))]
		}

		sleep := 5.5 + rng.Float64()*3.5
		input := service.EntryInput{
			Date:        date,
			SlotLabels:  slotLabels,
			SleepHours:  &sleep,
			StressLevel: 1 + rng.Intn(5),
			Activity:    activities[rng.Intn(len(activities))],
		}

		if _, err := entries.Upsert(input); err != nil {
			log.Fatal("创建心情记录失败:", err)
		}
		created++
	}

	fmt.Printf("✅ 心情记录创建完成（%d 条）\n", created)
}
