package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *SessionHandler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	session := app.Group("/api/v1/session")
	session.Post("/sign-in", h.SignIn)
	session.Post("/refresh", h.Refresh)
	session.Post("/sign-out", h.SignOut)
	session.Get("/me", h.Me)
}
