package handler

import (
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/logger"
	"github.com/fadilmartias/resume-analyzer/internal/middleware"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalysisHandler struct {
	uc     *usecase.AnalysisUsecase
	logger *zap.Logger
}

func NewAnalysisHandler(uc *usecase.AnalysisUsecase, log *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{uc: uc, logger: logger.OrNop(log)}
}

func (h *AnalysisHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/analyze-resume", h.Analyze)
	router.Post("/match-resume", h.Match)
}

func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var body dto.AnalyzeRequest
	if err := c.BodyParser(&body); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result, err := h.uc.Analyze(c.UserContext(), toAnalysisRequest(c, body, ""))
	if err != nil {
		h.logFailure(c, "analyze", err)
		return fail(c, err, "Failed to analyze resume")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{Data: result.Fields})
}

func (h *AnalysisHandler) Match(c *fiber.Ctx) error {
	var body dto.MatchRequest
	if err := c.BodyParser(&body); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result, err := h.uc.Match(c.UserContext(), toAnalysisRequest(c, body.AnalyzeRequest, body.JobDescription))
	if err != nil {
		h.logFailure(c, "match", err)
		return fail(c, err, "Failed to match resume")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{Data: result.Fields})
}

func (h *AnalysisHandler) logFailure(c *fiber.Ctx, op string, err error) {
	rc := middleware.RequestContextFrom(c)
	if usecase.IsClientFault(err) {
		h.logger.Info("request rejected", zap.String("op", op), zap.String(logger.FieldRequestID, rc.RequestID), zap.Error(err))
		return
	}
	h.logger.Error("request failed", zap.String("op", op), zap.String(logger.FieldRequestID, rc.RequestID), zap.Error(err))
}

func toAnalysisRequest(c *fiber.Ctx, body dto.AnalyzeRequest, jobDescription string) usecase.AnalysisRequest {
	return usecase.AnalysisRequest{
		ResumeText:     body.ResumeText,
		JobDescription: jobDescription,
		Prompt:         body.Prompt,
		FileName:       body.FileName,
		FileType:       body.FileType,
		FileSize:       body.FileSize,
		Context:        middleware.RequestContextFrom(c),
	}
}
