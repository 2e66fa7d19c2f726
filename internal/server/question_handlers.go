package server

import (
	"icebreaker/internal/models"
	"icebreaker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetQuestions handles GET /api/questions
//
// Supported query parameters: pageNumber, pageSize, sortBy
// (title|createdAt|likeCount|viewCount), sortOrder (asc|desc), search,
// topicId.
func (s *Server) GetQuestions(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c)

	topicID, err := s.parseOptionalUUID(c, "topicId")
	if err != nil {
		return nil
	}

	questions, err := s.questionService.ListQuestions(ctx, service.ListQuestionsInput{
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Search:     c.Query("search"),
		TopicID:    topicID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(questions)
}

// GetUserQuestions handles GET /api/users/:id/questions
func (s *Server) GetUserQuestions(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c)

	// 404 for unknown users rather than an empty page.
	if _, err := s.userService.GetUser(ctx, userID); err != nil {
		return respondServiceError(c, err)
	}

	questions, err := s.questionService.ListQuestions(ctx, service.ListQuestionsInput{
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		UserID:     &userID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(questions)
}

// CreateQuestion handles POST /api/questions
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		UserID  uuid.UUID `json:"userId" validate:"required"`
		TopicID uuid.UUID `json:"topicId" validate:"required"`
		Title   string    `json:"title" validate:"required"`
		Content string    `json:"content" validate:"required"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	question, err := s.questionService.CreateQuestion(ctx, service.CreateQuestionInput{
		UserID:  req.UserID,
		TopicID: req.TopicID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// BulkCreateQuestions handles POST /api/questions/bulk
//
// The response is 200 with per-index errors; a partially failed batch still
// persists the entries that validated.
func (s *Server) BulkCreateQuestions(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req []service.CreateQuestionInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if len(req) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Request body must be a non-empty array"))
	}

	result, err := s.questionService.BulkCreateQuestions(ctx, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetQuestion handles GET /api/questions/:id
//
// Reading a question detail counts as a view and bumps its view counter.
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	question, err := s.questionService.GetQuestion(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(question)
}

// UpdateQuestion handles PUT /api/questions/:id
func (s *Server) UpdateQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string     `json:"title"`
		Content string     `json:"content"`
		TopicID *uuid.UUID `json:"topicId"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	question, err := s.questionService.UpdateQuestion(ctx, id, service.UpdateQuestionInput{
		Title:   req.Title,
		Content: req.Content,
		TopicID: req.TopicID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(question)
}

// DeleteQuestion handles DELETE /api/questions/:id
func (s *Server) DeleteQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.questionService.DeleteQuestion(ctx, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
