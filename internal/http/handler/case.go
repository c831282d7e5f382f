package handler

import (
	"github.com/gofiber/fiber/v2"

	"caseflow/internal/repository"
	"caseflow/internal/service"
)

// ListCases returns a filtered, paginated, sorted case listing.
// Recognized filters are applied as equalities; the paging controls
// (page, limit, sort, fields) never reach the filter set.
func ListCases(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := service.CaseListParams{
			Filter: repository.CaseFilter{
				Status:     c.Query("status"),
				Priority:   c.Query("priority"),
				CaseType:   c.Query("case_type"),
				ClientID:   c.Query("client_id"),
				AssignedTo: c.Query("assigned_to"),
			},
			Sort:  c.Query("sort"),
			Page:  c.QueryInt("page", 1),
			Limit: c.QueryInt("limit", 10),
		}

		res, err := svc.List(c.UserContext(), params)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, res)
	}
}

// GetCase returns a single case by ID with joined client/assignee details.
func GetCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cs, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"case": cs})
	}
}

// CreateCase creates a case from a JSON body.
func CreateCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CaseInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		cs, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusCreated, fiber.Map{"case": cs})
	}
}

// UpdateCase applies a partial update to a case.
func UpdateCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CaseInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		cs, err := svc.Update(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"case": cs})
	}
}

// DeleteCase removes a case by ID.
func DeleteCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListCasesByClient returns all cases belonging to one client.
func ListCasesByClient(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cases, err := svc.ListByClient(c.UserContext(), c.Params("clientId"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"cases": cases})
	}
}

// SearchCases matches cases by title or number.
func SearchCases(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cases, err := svc.Search(c.UserContext(), c.Params("query"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"cases": cases})
	}
}
