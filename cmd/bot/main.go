package main

import (
	"log"
	"os"

	"gorm.io/gorm"

	"techquizbot/internal/config"
	"techquizbot/internal/quiz"
	"techquizbot/internal/storage"
	"techquizbot/internal/telegram"
	"techquizbot/pkg/database"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	var db *gorm.DB
	if cfg.Database.Enabled() {
		db, err = database.NewPostgresDB(cfg.Database.PostgresConnectionString())
		if err != nil {
			log.Fatal(err)
		}
		if err := database.MigrateDB(db, &storage.QuizState{}); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("DATABASE_HOST is not set, keeping quiz progress in memory")
	}

	// Автоматически выбирает Postgres или Memory
	store := storage.NewSessionStore(db)

	bank := quiz.LoadQuestions(cfg.Quiz.QuestionsFile)

	bot, err := telegram.NewBot(cfg.Telegram.Token, store, bank)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("🤖 Bot is starting...")
	bot.Start()
}
