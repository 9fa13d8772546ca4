package handler

import (
	"errors"

	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps usecase errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case usecase.IsClientFault(err):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrSubmissionNotFound), errors.Is(err, repository.ErrEmbeddingNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrStorageUnavailable), errors.Is(err, usecase.ErrEmbeddingsDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error, fallback string) error {
	message := err.Error()
	if message == "" {
		message = fallback
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    statusFor(err),
		Message: message,
	})
}

// ErrorHandler renders errors that escape handlers in the standard envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: err.Error(),
	})
}
