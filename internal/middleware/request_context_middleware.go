package middleware

import (
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const requestContextKey = "request_context"

// requestIDKey matches the default ContextKey of fiber's requestid middleware.
const requestIDKey = "requestid"

// RequestContext stores the caller's address and user agent for downstream handlers.
// Values are copied out of the fasthttp buffers because the submission recorder
// reads them after the handler has returned.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, _ := c.Locals(requestIDKey).(string)
		c.Locals(requestContextKey, usecase.RequestContext{
			IPAddress: utils.CopyString(c.IP()),
			UserAgent: utils.CopyString(c.Get(fiber.HeaderUserAgent)),
			RequestID: utils.CopyString(requestID),
		})
		return c.Next()
	}
}

// RequestContextFrom returns the value stored by RequestContext, or a zero
// value when the middleware did not run.
func RequestContextFrom(c *fiber.Ctx) usecase.RequestContext {
	rc, _ := c.Locals(requestContextKey).(usecase.RequestContext)
	return rc
}
