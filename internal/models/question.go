package models

import (
	"strings"

	"github.com/google/uuid"
)

// Question is a prompt posted by a user under a topic. ViewCount grows as a
// side effect of detail reads. LikeCount and AnswerCount are denormalized
// counters maintained through the Increment/Decrement methods by the like
// and answer flows.
type Question struct {
	Base
	UserID      uuid.UUID `json:"userId"`
	TopicID     uuid.UUID `json:"topicId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ViewCount   int       `json:"viewCount"`
	LikeCount   int       `json:"likeCount"`
	AnswerCount int       `json:"answerCount"`
}

// NewQuestion creates a Question, validating required fields.
func NewQuestion(userID, topicID uuid.UUID, title, content string) (*Question, error) {
	if userID == uuid.Nil {
		return nil, NewValidationError("User ID is required")
	}
	if topicID == uuid.Nil {
		return nil, NewValidationError("Topic ID is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError("Title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, NewValidationError("Content is required")
	}

	return &Question{
		Base:    newBase(),
		UserID:  userID,
		TopicID: topicID,
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}, nil
}

// Update applies a partial update: blank title/content and a nil topicID
// leave the current values unchanged.
func (q *Question) Update(title, content string, topicID *uuid.UUID) {
	if strings.TrimSpace(title) != "" {
		q.Title = strings.TrimSpace(title)
	}
	if strings.TrimSpace(content) != "" {
		q.Content = strings.TrimSpace(content)
	}
	if topicID != nil && *topicID != uuid.Nil {
		q.TopicID = *topicID
	}
	q.Touch()
}

// IncrementViewCount records one detail view.
func (q *Question) IncrementViewCount() {
	q.ViewCount++
	q.Touch()
}

// IncrementLikeCount bumps the denormalized like counter.
func (q *Question) IncrementLikeCount() {
	q.LikeCount++
	q.Touch()
}

// DecrementLikeCount lowers the denormalized like counter, never below zero.
func (q *Question) DecrementLikeCount() {
	if q.LikeCount > 0 {
		q.LikeCount--
	}
	q.Touch()
}

// IncrementAnswerCount bumps the denormalized answer counter.
func (q *Question) IncrementAnswerCount() {
	q.AnswerCount++
	q.Touch()
}

// DecrementAnswerCount lowers the denormalized answer counter, never below zero.
func (q *Question) DecrementAnswerCount() {
	if q.AnswerCount > 0 {
		q.AnswerCount--
	}
	q.Touch()
}

// Delete marks the question inactive (soft delete).
func (q *Question) Delete() {
	q.IsActive = false
	q.Touch()
}
