package server

import (
	"icebreaker/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c)

	users, err := s.userService.ListUsers(ctx, page.PageNumber, page.PageSize)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// CreateUser handles POST /api/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Username    string `json:"username" validate:"required,min=3,max=50"`
		Email       string `json:"email" validate:"required,email"`
		DisplayName string `json:"displayName" validate:"required,min=2,max=100"`
		Bio         string `json:"bio" validate:"max=500"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.CreateUser(ctx, service.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserByUsername handles GET /api/users/username/:username
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := s.userService.GetUserByUsername(ctx, c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserByEmail handles GET /api/users/email/:email
func (s *Server) GetUserByEmail(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := s.userService.GetUserByEmail(ctx, c.Params("email"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /api/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		DisplayName string `json:"displayName" validate:"omitempty,min=2,max=100"`
		Bio         string `json:"bio" validate:"max=500"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateUser(ctx, id, service.UpdateUserInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(ctx, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserLikes handles GET /api/users/:id/likes
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.likeService.GetLikesByUser(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(likes)
}
