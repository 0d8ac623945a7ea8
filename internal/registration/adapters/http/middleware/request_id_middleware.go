// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/utils/v2"

	"regform/pkg/logger"
)

const (
	// HeaderRequestID - заголовок с идентификатором запроса.
	HeaderRequestID = "X-Request-ID"

	localsRequestContext = "requestContext"
)

// NewRequestIDMiddleware берет X-Request-ID из запроса или создает новый
// и кладет контекст с ним в Locals.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		// Буфер заголовков fasthttp переиспользуется после ответа.
		requestID := utils.CopyString(ctx.Get(HeaderRequestID))
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(localsRequestContext, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с request id.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
