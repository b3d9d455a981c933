package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/adminkit/session-service/internal/auth/dto"
	autherror "github.com/adminkit/session-service/internal/errors"
	"github.com/adminkit/session-service/internal/logging"
	"github.com/adminkit/session-service/internal/reqctx"
)

// HeaderCorrelationID echoes the request's correlation id so clients can
// reference it in reports.
const HeaderCorrelationID = "X-Correlation-Id"

// RequestContext seeds the request-scoped context with a correlation id and
// client metadata. Everything downstream (logs, audit rows) reads these from
// the context instead of taking extra parameters.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cid := c.Get(HeaderCorrelationID)
		if cid == "" {
			cid = reqctx.NewCorrelationID()
		}

		ctx := reqctx.WithCorrelationID(c.UserContext(), cid)
		ctx = reqctx.WithClientInfo(ctx, reqctx.ClientInfo{
			IP:        c.IP(),
			UserAgent: string(c.Request().Header.UserAgent()),
		})
		c.SetUserContext(ctx)
		c.Set(HeaderCorrelationID, cid)

		return c.Next()
	}
}

// NewErrorHandler is the single boundary that renders the error taxonomy.
// It logs the full error server-side and exposes only {message, code,
// correlationId} to the caller. Rate-limited responses carry a Retry-After
// header derived from the rejecting bucket.
func NewErrorHandler(log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ctx := c.UserContext()
		cid := reqctx.CorrelationID(ctx)

		if typed, ok := autherror.As(err); ok {
			if typed.Status >= 500 {
				log.Error(ctx, "request failed", "code", typed.Code, "error", err)
			} else {
				log.Info(ctx, "request rejected", "code", typed.Code, "status", typed.Status)
			}

			if typed.Code == autherror.CodeRateLimited {
				retryAfter := (typed.RetryAfterMs + 999) / 1000
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(retryAfter, 10))
			}

			return c.Status(typed.Status).JSON(dto.ErrorResponse{
				Message:       typed.Message,
				Code:          typed.Code,
				CorrelationID: cid,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < 500 {
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Message:       fiberErr.Message,
				Code:          autherror.CodeValidation,
				CorrelationID: cid,
			})
		}

		log.Error(ctx, "request failed", "error", err)

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message:       "internal error",
			Code:          autherror.CodeInternal,
			CorrelationID: cid,
		})
	}
}
