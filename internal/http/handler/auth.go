package handler

import (
	"github.com/gofiber/fiber/v2"

	"caseflow/internal/http/middleware"
	"caseflow/internal/service"
)

// Register creates a new user account and returns a signed token.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		res, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusCreated, res)
	}
}

// Login verifies a credential pair and returns a signed token.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		res, err := svc.Login(c.UserContext(), in)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, res)
	}
}

// Me returns the authenticated user resolved from the token subject.
func Me(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals(middleware.UserIDLocalKey).(string)
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"user": u})
	}
}

// ListUsers returns all users.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"users": users})
	}
}

// GetUser returns a single user by ID.
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"user": u})
	}
}
