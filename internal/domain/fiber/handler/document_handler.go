package handler

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	maxUploadSize int64
	logger        *zap.Logger
}

func NewDocumentHandler(maxUploadSize int64, logger *zap.Logger) *DocumentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentHandler{maxUploadSize: maxUploadSize, logger: logger}
}

func (h *DocumentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/extract-text", h.ExtractText)
}

func (h *DocumentHandler) ExtractText(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		})
	}

	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("file size is too large (max %dMB)", h.maxUploadSize/(1024*1024)),
		})
	}
	if util.FileTypeOf(file.Filename) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: util.ErrUnsupportedFileType.Error(),
		})
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot read uploaded file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot read uploaded file"})
	}

	text, fileType, err := util.ExtractDocumentText(c.UserContext(), file.Filename, data)
	if err != nil {
		h.logger.Warn("text extraction failed", zap.String("file_name", file.Filename), zap.Error(err))
		code := fiber.StatusInternalServerError
		if errors.Is(err, util.ErrNoTextExtracted) || errors.Is(err, util.ErrUnsupportedFileType) {
			code = fiber.StatusUnprocessableEntity
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: fmt.Sprintf("failed to extract text: %v", err),
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Data: dto.ExtractedTextDTO{
			FileName:   file.Filename,
			FileType:   fileType,
			FileSize:   file.Size,
			Text:       text,
			TextLength: utf8.RuneCountInString(text),
		},
	})
}
