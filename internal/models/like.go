package models

import "github.com/google/uuid"

// Like records that a user liked a question. The (QuestionID, UserID) pair
// is unique and is the sole source of truth for "has user liked question".
// Likes are hard-deleted on unlike; IsActive is carried by Base but unused.
type Like struct {
	Base
	QuestionID uuid.UUID `json:"questionId"`
	UserID     uuid.UUID `json:"userId"`
}

// NewLike creates a Like for the given pair.
func NewLike(questionID, userID uuid.UUID) *Like {
	return &Like{
		Base:       newBase(),
		QuestionID: questionID,
		UserID:     userID,
	}
}
