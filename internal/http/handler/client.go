package handler

import (
	"github.com/gofiber/fiber/v2"

	"caseflow/internal/service"
)

// ListClients returns a paginated client listing.
func ListClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)

		res, err := svc.List(c.UserContext(), page, limit)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, res)
	}
}

// GetClient returns a single client by ID.
func GetClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"client": cl})
	}
}

// CreateClient creates a client from a JSON body.
func CreateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		cl, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusCreated, fiber.Map{"client": cl})
	}
}

// UpdateClient applies a partial update to a client.
func UpdateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		cl, err := svc.Update(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"client": cl})
	}
}

// DeleteClient removes a client by ID.
func DeleteClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SearchClients matches clients by name, email, or phone.
func SearchClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clients, err := svc.Search(c.UserContext(), c.Params("query"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"clients": clients})
	}
}
