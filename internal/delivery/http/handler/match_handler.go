package handler

import (
	"errors"

	"talent-pipeline/internal/delivery/http/dto"
	"talent-pipeline/internal/delivery/http/middleware"
	"talent-pipeline/internal/pkg/response"
	"talent-pipeline/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/requisitions")
	grp.Get("/:requisition_id/matches", h.GetMatches)
}

func (h *MatchHandler) GetMatches(c fiber.Ctx) error {
	requisitionID, err := uuid.Parse(c.Params("requisition_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid requisition id", nil, err)
	}

	results, err := h.uc.MatchRequisition(c.Context(), requisitionID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := dto.MatchListResponse{
		RequisitionID: requisitionID,
		Results:       make([]dto.MatchResultResponse, 0, len(results)),
	}
	for _, r := range results {
		out.Results = append(out.Results, dto.MatchResultResponse{
			CandidateCVID:        r.CandidateCVID,
			Score:                r.Score,
			MatchedSkills:        r.MatchedSkills,
			MissingSkills:        r.MissingSkills,
			LevelMatch:           r.LevelMatch,
			HasFailedApplication: r.HasFailedApplication,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapMatchUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request", nil, err)
	case errors.Is(err, usecase.ErrRequisitionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "requisition not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
