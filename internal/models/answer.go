package models

import (
	"strings"

	"github.com/google/uuid"
)

// Answer is a reply to a question. At most one answer per question carries
// IsAccepted=true; the answer repository's MarkAccepted enforces this.
type Answer struct {
	Base
	QuestionID uuid.UUID `json:"questionId"`
	UserID     uuid.UUID `json:"userId"`
	Content    string    `json:"content"`
	IsAccepted bool      `json:"isAccepted"`
	ViewCount  int       `json:"viewCount"`
}

// NewAnswer creates an Answer, validating required fields.
func NewAnswer(questionID, userID uuid.UUID, content string) (*Answer, error) {
	if questionID == uuid.Nil {
		return nil, NewValidationError("Question ID is required")
	}
	if userID == uuid.Nil {
		return nil, NewValidationError("User ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, NewValidationError("Content is required")
	}

	return &Answer{
		Base:       newBase(),
		QuestionID: questionID,
		UserID:     userID,
		Content:    strings.TrimSpace(content),
	}, nil
}

// IncrementViewCount records one detail view.
func (a *Answer) IncrementViewCount() {
	a.ViewCount++
	a.Touch()
}

// Delete marks the answer inactive (soft delete).
func (a *Answer) Delete() {
	a.IsActive = false
	a.Touch()
}
