package server

import (
	"icebreaker/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTopics handles GET /api/topics
func (s *Server) GetTopics(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c)

	topics, err := s.topicService.ListTopics(ctx, page.PageNumber, page.PageSize, c.Query("search"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(topics)
}

// CreateTopic handles POST /api/topics
func (s *Server) CreateTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name        string `json:"name" validate:"required,min=2,max=100"`
		Description string `json:"description" validate:"max=500"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	topic, err := s.topicService.CreateTopic(ctx, service.CreateTopicInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(topic)
}

// GetTopic handles GET /api/topics/:id
func (s *Server) GetTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	topic, err := s.topicService.GetTopic(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(topic)
}

// UpdateTopic handles PUT /api/topics/:id
func (s *Server) UpdateTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string  `json:"name" validate:"omitempty,min=2,max=100"`
		Description *string `json:"description" validate:"omitempty,max=500"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	topic, err := s.topicService.UpdateTopic(ctx, id, service.UpdateTopicInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(topic)
}

// DeleteTopic handles DELETE /api/topics/:id
func (s *Server) DeleteTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.topicService.DeleteTopic(ctx, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetTopicQuestions handles GET /api/topics/:id/questions
func (s *Server) GetTopicQuestions(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c)

	// 404 for unknown topics rather than an empty page.
	if _, err := s.topicService.GetTopic(ctx, id); err != nil {
		return respondServiceError(c, err)
	}

	questions, err := s.questionService.ListQuestions(ctx, service.ListQuestionsInput{
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		TopicID:    &id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(questions)
}
