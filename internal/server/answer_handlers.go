package server

import (
	"icebreaker/internal/models"
	"icebreaker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetAnswers handles GET /api/answers
//
// Supported query parameters: pageNumber, pageSize, questionId, userId.
func (s *Server) GetAnswers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c)

	questionID, err := s.parseOptionalUUID(c, "questionId")
	if err != nil {
		return nil
	}
	userID, err := s.parseOptionalUUID(c, "userId")
	if err != nil {
		return nil
	}

	answers, err := s.answerService.ListAnswers(ctx, service.ListAnswersInput{
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		QuestionID: questionID,
		UserID:     userID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(answers)
}

// CreateAnswer handles POST /api/answers
func (s *Server) CreateAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		QuestionID uuid.UUID `json:"questionId" validate:"required"`
		UserID     uuid.UUID `json:"userId" validate:"required"`
		Content    string    `json:"content" validate:"required"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	answer, err := s.answerService.CreateAnswer(ctx, service.CreateAnswerInput{
		QuestionID: req.QuestionID,
		UserID:     req.UserID,
		Content:    req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(answer)
}

// BulkCreateAnswers handles POST /api/answers/bulk
func (s *Server) BulkCreateAnswers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req []service.CreateAnswerInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if len(req) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Request body must be a non-empty array"))
	}

	result, err := s.answerService.BulkCreateAnswers(ctx, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetAnswer handles GET /api/answers/:id
//
// Reading an answer detail counts as a view and bumps its view counter.
func (s *Server) GetAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	answer, err := s.answerService.GetAnswer(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(answer)
}

// UpdateAnswer handles PUT /api/answers/:id
func (s *Server) UpdateAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content" validate:"required"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	answer, err := s.answerService.UpdateAnswer(ctx, id, service.UpdateAnswerInput{
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(answer)
}

// DeleteAnswer handles DELETE /api/answers/:id
func (s *Server) DeleteAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.answerService.DeleteAnswer(ctx, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AcceptAnswer handles POST /api/answers/:id/accept
//
// Accepting an answer clears the accepted flag on every other answer of the
// same question. Unknown ids are acknowledged without effect.
func (s *Server) AcceptAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.answerService.AcceptAnswer(ctx, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetQuestionAnswers handles GET /api/questions/:id/answers
func (s *Server) GetQuestionAnswers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	questionID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	answers, err := s.answerService.GetAnswersForQuestion(ctx, questionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(answers)
}

// GetAcceptedAnswer handles GET /api/questions/:id/answers/accepted
func (s *Server) GetAcceptedAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	questionID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	answer, err := s.answerService.GetAcceptedAnswer(ctx, questionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if answer == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Accepted answer for question", questionID))
	}
	return c.JSON(answer)
}
