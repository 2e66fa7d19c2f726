// Package seed provides helpers to create demo data for development and
// testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"icebreaker/internal/models"
	"icebreaker/internal/storage"

	"github.com/brianvoe/gofakeit/v6"
)

// Options configuration for the seeder
type Options struct {
	NumUsers               int
	NumTopics              int
	NumQuestions           int
	MaxAnswersPerQuestion  int
	LikeProbabilityPercent int
	MaxDays                int
	Clean                  bool
}

var topicNames = []string{
	"Getting To Know You", "Would You Rather", "Travel", "Food", "Movies",
	"Music", "Books", "Career", "Childhood", "Hobbies", "Technology",
	"Sports", "Hidden Talents", "Bucket List", "Pet Peeves", "Weekend Plans",
}

// Seeder populates the JSON stores with generated demo data.
type Seeder struct {
	users     *storage.Store[models.User]
	topics    *storage.Store[models.Topic]
	questions *storage.Store[models.Question]
	answers   *storage.Store[models.Answer]
	likes     *storage.Store[models.Like]
	rng       *rand.Rand
	maxDays   int
}

// NewSeeder creates a Seeder bound to the given stores.
func NewSeeder(
	users *storage.Store[models.User],
	topics *storage.Store[models.Topic],
	questions *storage.Store[models.Question],
	answers *storage.Store[models.Answer],
	likes *storage.Store[models.Like],
) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		users:     users,
		topics:    topics,
		questions: questions,
		answers:   answers,
		likes:     likes,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll empties every collection.
func (s *Seeder) ClearAll(ctx context.Context) error {
	if err := s.users.WriteAll(ctx, []models.User{}); err != nil {
		return err
	}
	if err := s.topics.WriteAll(ctx, []models.Topic{}); err != nil {
		return err
	}
	if err := s.questions.WriteAll(ctx, []models.Question{}); err != nil {
		return err
	}
	if err := s.answers.WriteAll(ctx, []models.Answer{}); err != nil {
		return err
	}
	return s.likes.WriteAll(ctx, []models.Like{})
}

// Run generates and persists the full data set described by opts. Each
// collection is written in a single batch.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	s.maxDays = opts.MaxDays
	if s.maxDays <= 0 {
		s.maxDays = 90
	}
	if opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users := s.buildUsers(opts.NumUsers)
	topics := s.buildTopics(opts.NumTopics)
	questions := s.buildQuestions(opts, users, topics)
	answers := s.buildAnswers(opts, users, questions)
	likes := s.buildLikes(opts, users, questions)

	if err := s.users.WriteAll(ctx, users); err != nil {
		return fmt.Errorf("user seeding failed: %w", err)
	}
	if err := s.topics.WriteAll(ctx, topics); err != nil {
		return fmt.Errorf("topic seeding failed: %w", err)
	}
	if err := s.questions.WriteAll(ctx, questions); err != nil {
		return fmt.Errorf("question seeding failed: %w", err)
	}
	if err := s.answers.WriteAll(ctx, answers); err != nil {
		return fmt.Errorf("answer seeding failed: %w", err)
	}
	if err := s.likes.WriteAll(ctx, likes); err != nil {
		return fmt.Errorf("like seeding failed: %w", err)
	}

	log.Printf("Seeded %d users, %d topics, %d questions, %d answers, %d likes",
		len(users), len(topics), len(questions), len(answers), len(likes))
	return nil
}

func (s *Seeder) buildUsers(n int) []models.User {
	users := make([]models.User, 0, n)
	seen := make(map[string]struct{}, n)
	for len(users) < n {
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
		if _, dup := seen[strings.ToLower(username)]; dup {
			continue
		}
		seen[strings.ToLower(username)] = struct{}{}

		user, err := models.NewUser(username, gofakeit.Email(), gofakeit.Name(), gofakeit.Sentence(10))
		if err != nil {
			continue
		}
		s.backdate(&user.Base)
		users = append(users, *user)
	}
	return users
}

func (s *Seeder) buildTopics(n int) []models.Topic {
	if n <= 0 || n > len(topicNames) {
		n = len(topicNames)
	}
	topics := make([]models.Topic, 0, n)
	for _, name := range topicNames[:n] {
		topic, err := models.NewTopic(name, gofakeit.Sentence(8))
		if err != nil {
			continue
		}
		s.backdate(&topic.Base)
		topics = append(topics, *topic)
	}
	return topics
}

func (s *Seeder) buildQuestions(opts Options, users []models.User, topics []models.Topic) []models.Question {
	if len(users) == 0 || len(topics) == 0 {
		return []models.Question{}
	}
	questions := make([]models.Question, 0, opts.NumQuestions)
	for i := 0; i < opts.NumQuestions; i++ {
		user := users[s.rng.Intn(len(users))]
		topic := topics[s.rng.Intn(len(topics))]

		question, err := models.NewQuestion(user.ID, topic.ID,
			gofakeit.Question(), gofakeit.Paragraph(1, 3, 6, "\n"))
		if err != nil {
			continue
		}
		s.backdate(&question.Base)
		question.ViewCount = s.rng.Intn(500)
		questions = append(questions, *question)
	}
	return questions
}

func (s *Seeder) buildAnswers(opts Options, users []models.User, questions []models.Question) []models.Answer {
	answers := make([]models.Answer, 0)
	if len(users) == 0 || opts.MaxAnswersPerQuestion <= 0 {
		return answers
	}
	for qi := range questions {
		n := s.rng.Intn(opts.MaxAnswersPerQuestion + 1)
		for i := 0; i < n; i++ {
			user := users[s.rng.Intn(len(users))]
			answer, err := models.NewAnswer(questions[qi].ID, user.ID, gofakeit.Paragraph(1, 2, 6, "\n"))
			if err != nil {
				continue
			}
			s.backdate(&answer.Base)
			answer.ViewCount = s.rng.Intn(100)
			// the first answer of a question occasionally ends up accepted
			if i == 0 && s.rng.Intn(3) == 0 {
				answer.IsAccepted = true
			}
			answers = append(answers, *answer)
			questions[qi].IncrementAnswerCount()
		}
	}
	return answers
}

func (s *Seeder) buildLikes(opts Options, users []models.User, questions []models.Question) []models.Like {
	likes := make([]models.Like, 0)
	pct := opts.LikeProbabilityPercent
	if pct <= 0 {
		pct = 10
	}
	for qi := range questions {
		for ui := range users {
			if s.rng.Intn(100) >= pct {
				continue
			}
			like := models.NewLike(questions[qi].ID, users[ui].ID)
			likes = append(likes, *like)
			questions[qi].IncrementLikeCount()
		}
	}
	return likes
}

// backdate spreads CreatedAt over the recent past so listings look lived-in.
func (s *Seeder) backdate(b *models.Base) {
	maxDays := s.maxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := s.rng.Intn(maxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	created := time.Now().UTC().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
	b.CreatedAt = created
	b.UpdatedAt = created
}
