package handler

import (
	"github.com/gofiber/fiber/v2"

	"caseflow/internal/service"
)

// ListTasks returns all tasks with joined case/assignee details.
func ListTasks(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tasks, err := svc.List(c.UserContext())
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"tasks": tasks})
	}
}

// GetTask returns a single task by ID.
func GetTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"task": t})
	}
}

// CreateTask creates a task from a JSON body.
func CreateTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.TaskInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		t, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusCreated, fiber.Map{"task": t})
	}
}

// UpdateTask applies a partial update to a task.
func UpdateTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.TaskInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		t, err := svc.Update(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"task": t})
	}
}

// DeleteTask removes a task by ID.
func DeleteTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListTasksByCase returns all tasks attached to one case.
func ListTasksByCase(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tasks, err := svc.ListByCase(c.UserContext(), c.Params("caseId"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"tasks": tasks})
	}
}
