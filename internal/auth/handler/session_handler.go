package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/adminkit/session-service/internal/auth/dto"
	"github.com/adminkit/session-service/internal/auth/service"
	autherror "github.com/adminkit/session-service/internal/errors"
)

type SessionHandler struct {
	sessions *service.SessionService
	minter   service.TokenGenerator
}

func NewSessionHandler(sessions *service.SessionService, minter service.TokenGenerator) *SessionHandler {
	return &SessionHandler{sessions: sessions, minter: minter}
}

func (h *SessionHandler) SignIn(c *fiber.Ctx) error {
	var input dto.SignInInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.Validation("invalid request body")
	}
	if strings.TrimSpace(input.UserName) == "" || input.Password == "" {
		return autherror.Validation("userName and password are required")
	}

	result, refreshToken, err := h.sessions.SignIn(c.UserContext(), input)
	if err != nil {
		return err
	}

	h.minter.SetRefreshCookie(c, refreshToken)

	return c.Status(fiber.StatusOK).JSON(dto.DataEnvelope{Data: result})
}

func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	cookie := c.Cookies(service.RefreshCookieName)
	if cookie == "" {
		return autherror.Unauthorized("missing refresh token")
	}

	result, refreshToken, err := h.sessions.Refresh(c.UserContext(), cookie)
	if err != nil {
		return err
	}

	h.minter.SetRefreshCookie(c, refreshToken)

	return c.Status(fiber.StatusOK).JSON(dto.DataEnvelope{Data: result})
}

func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	if cookie := c.Cookies(service.RefreshCookieName); cookie != "" {
		if err := h.sessions.SignOut(c.UserContext(), cookie); err != nil {
			return err
		}
	}

	h.minter.ClearRefreshCookie(c)

	return c.Status(fiber.StatusOK).JSON(dto.DataEnvelope{Data: fiber.Map{"signedOut": true}})
}

func (h *SessionHandler) Me(c *fiber.Ctx) error {
	claims, err := h.bearerClaims(c)
	if err != nil {
		return err
	}

	user, err := h.sessions.Me(c.UserContext(), claims.Subject)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.DataEnvelope{Data: user})
}

func (h *SessionHandler) bearerClaims(c *fiber.Ctx) (*service.AccessClaims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, autherror.Unauthorized("missing bearer token")
	}

	claims, err := h.minter.VerifyAccess(token)
	if err != nil {
		return nil, autherror.Unauthorized("invalid access token")
	}

	return claims, nil
}
