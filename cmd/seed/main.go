// Command main runs the data seeder for Icebreaker.
package main

import (
	"context"
	"flag"
	"log"

	"icebreaker/internal/config"
	"icebreaker/internal/models"
	"icebreaker/internal/seed"
	"icebreaker/internal/storage"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numTopics := flag.Int("topics", 0, "Number of topics to create (0 = all built-in topics)")
	numQuestions := flag.Int("questions", 100, "Number of questions to create")
	maxAnswers := flag.Int("max-answers", 5, "Maximum answers per question")
	shouldClean := flag.Bool("clean", true, "Clean stores before seeding")
	flag.Parse()

	log.Println("Data Seeder")
	log.Println("===========")
	log.Printf("Target: %d users, %d questions, clean=%v\n", *numUsers, *numQuestions, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	users, err := storage.NewStore[models.User](cfg.StoragePath, cfg.UsersFile, "users", cfg.WriteIndented)
	if err != nil {
		log.Fatalf("Failed to open users store: %v", err)
	}
	topics, err := storage.NewStore[models.Topic](cfg.StoragePath, cfg.TopicsFile, "topics", cfg.WriteIndented)
	if err != nil {
		log.Fatalf("Failed to open topics store: %v", err)
	}
	questions, err := storage.NewStore[models.Question](cfg.StoragePath, cfg.QuestionsFile, "questions", cfg.WriteIndented)
	if err != nil {
		log.Fatalf("Failed to open questions store: %v", err)
	}
	answers, err := storage.NewStore[models.Answer](cfg.StoragePath, cfg.AnswersFile, "answers", cfg.WriteIndented)
	if err != nil {
		log.Fatalf("Failed to open answers store: %v", err)
	}
	likes, err := storage.NewStore[models.Like](cfg.StoragePath, cfg.LikesFile, "likes", cfg.WriteIndented)
	if err != nil {
		log.Fatalf("Failed to open likes store: %v", err)
	}

	s := seed.NewSeeder(users, topics, questions, answers, likes)
	if err := s.Run(context.Background(), seed.Options{
		NumUsers:              *numUsers,
		NumTopics:             *numTopics,
		NumQuestions:          *numQuestions,
		MaxAnswersPerQuestion: *maxAnswers,
		Clean:                 *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The stores are now populated with demo data.")
}
