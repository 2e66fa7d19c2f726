package server

import (
	"github.com/gofiber/fiber/v2"
)

// LikeQuestion handles POST /api/questions/:id/likes/:userId
//
// The response reports whether a new like was created; liking twice is not
// an error.
func (s *Server) LikeQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	questionID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	created, err := s.likeService.LikeQuestion(ctx, questionID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"liked": created})
}

// UnlikeQuestion handles DELETE /api/questions/:id/likes/:userId
func (s *Server) UnlikeQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	questionID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	removed, err := s.likeService.UnlikeQuestion(ctx, questionID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unliked": removed})
}

// HasLiked handles GET /api/questions/:id/likes/:userId
func (s *Server) HasLiked(c *fiber.Ctx) error {
	ctx := c.UserContext()
	questionID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.HasLiked(ctx, questionID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// CountQuestionLikes handles GET /api/questions/:id/likes/count
func (s *Server) CountQuestionLikes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	questionID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.likeService.CountLikes(ctx, questionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// CountUserLikes handles GET /api/users/:id/likes/count
func (s *Server) CountUserLikes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.likeService.CountLikesByUser(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// GetQuestionLikes handles GET /api/questions/:id/likes
func (s *Server) GetQuestionLikes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	questionID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.likeService.GetLikesForQuestion(ctx, questionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"count": len(likes),
		"likes": likes,
	})
}
