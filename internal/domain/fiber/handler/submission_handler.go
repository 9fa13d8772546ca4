package handler

import (
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SubmissionHandler struct {
	uc *usecase.SubmissionUsecase
}

func NewSubmissionHandler(uc *usecase.SubmissionUsecase) *SubmissionHandler {
	return &SubmissionHandler{uc: uc}
}

func (h *SubmissionHandler) RegisterRoutes(router fiber.Router) {
	submissions := router.Group("/submissions")
	submissions.Get("/", h.List)
	submissions.Get("/stats", h.Stats)
	submissions.Get("/:id", h.Get)
	submissions.Get("/:id/similar", h.Similar)
	submissions.Delete("/:id", h.Delete)
}

func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	items, pagination, err := h.uc.List(c.UserContext(), usecase.ListSubmissionsQuery{
		AnalysisType: c.Query("analysisType"),
		Page:         c.QueryInt("page", 1),
		PageSize:     c.QueryInt("pageSize", 0),
	})
	if err != nil {
		return fail(c, err, "Failed to list submissions")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Data: items, Pagination: pagination})
}

func (h *SubmissionHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to load submission stats")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Data: stats})
}

func (h *SubmissionHandler) Get(c *fiber.Ctx) error {
	submission, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Failed to load submission")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Data: submission})
}

func (h *SubmissionHandler) Similar(c *fiber.Ctx) error {
	items, err := h.uc.Similar(c.UserContext(), c.Params("id"), c.QueryInt("limit", 5))
	if err != nil {
		return fail(c, err, "Failed to search similar submissions")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Data: items})
}

func (h *SubmissionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, "Failed to delete submission")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Submission deleted"})
}
