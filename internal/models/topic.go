package models

import "strings"

// Topic groups questions under a named subject. Name is unique
// case-insensitively. Topics are hard-deleted, never soft-deleted.
type Topic struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewTopic creates a Topic, validating required fields.
func NewTopic(name, description string) (*Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("Topic name is required")
	}

	return &Topic{
		Base:        newBase(),
		Name:        name,
		Description: strings.TrimSpace(description),
	}, nil
}

// Update applies a partial update. A blank name is left unchanged; a non-nil
// description is always applied, so passing a pointer to "" clears it.
func (t *Topic) Update(name string, description *string) {
	if strings.TrimSpace(name) != "" {
		t.Name = strings.TrimSpace(name)
	}
	if description != nil {
		t.Description = strings.TrimSpace(*description)
	}
	t.Touch()
}
