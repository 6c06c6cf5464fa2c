package handlers

import "github.com/gofiber/fiber/v2"

// success writes the standard success envelope.
func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}
