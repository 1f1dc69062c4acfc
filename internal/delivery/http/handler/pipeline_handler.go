package handler

import (
	"errors"

	"talent-pipeline/internal/delivery/http/dto"
	"talent-pipeline/internal/delivery/http/middleware"
	"talent-pipeline/internal/domain/staffing"
	"talent-pipeline/internal/domain/workflow"
	"talent-pipeline/internal/pkg/response"
	"talent-pipeline/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PipelineHandler struct {
	uc usecase.PipelineUsecase
}

func NewPipelineHandler(uc usecase.PipelineUsecase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

func (h *PipelineHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	activities := r.Group("/activities")
	activities.Get("/:activity_id/next-statuses", h.GetAllowedStatuses)
	activities.Patch("/:activity_id/status", h.TransitionStatus)

	applications := r.Group("/applications")
	applications.Post("/:application_id/activities", h.CreateActivity)
	applications.Post("/:application_id/activities/validate-schedule", h.ValidateSchedule)
}

func (h *PipelineHandler) GetAllowedStatuses(c fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("activity_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid activity id", nil, err)
	}

	allowed, err := h.uc.AllowedNextStatuses(c.Context(), activityID)
	if err != nil {
		return mapPipelineUsecaseError(err)
	}

	out := dto.AllowedStatusesResponse{
		ActivityID:      activityID,
		AllowedStatuses: make([]string, 0, len(allowed)),
	}
	for _, s := range allowed {
		out.AllowedStatuses = append(out.AllowedStatuses, string(s))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PipelineHandler) TransitionStatus(c fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("activity_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid activity id", nil, err)
	}

	var req dto.TransitionActivityRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}
	target, err := staffing.ParseActivityStatus(req.TargetStatus)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	}

	res, err := h.uc.TransitionActivity(c.Context(), activityID, target, req.Notes)
	if err != nil {
		return mapPipelineUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, transitionResultResponse(res))
}

func (h *PipelineHandler) CreateActivity(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("application_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid application id", nil, err)
	}

	var req dto.CreateActivityRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}
	activityType, err := staffing.ParseActivityType(req.ActivityType)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	}

	act, err := h.uc.CreateActivity(c.Context(), usecase.CreateActivityParams{
		ApplicationID: applicationID,
		ProcessStepID: req.ProcessStepID,
		Type:          activityType,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
	})
	if err != nil {
		return mapPipelineUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "activity created", activityResponse(act))
}

func (h *PipelineHandler) ValidateSchedule(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("application_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid application id", nil, err)
	}

	var req dto.ValidateScheduleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}

	if err := h.uc.ValidateScheduledDate(c.Context(), applicationID, req.ProcessStepID, req.ScheduledDate); err != nil {
		return mapPipelineUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func activityResponse(a staffing.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:            a.ID,
		ApplicationID: a.ApplicationID,
		ProcessStepID: a.ProcessStepID,
		ActivityType:  string(a.Type),
		ScheduledDate: a.ScheduledDate,
		Status:        string(a.Status),
		Notes:         a.Notes,
	}
}

func transitionResultResponse(res usecase.TransitionResult) dto.TransitionResultResponse {
	out := dto.TransitionResultResponse{
		Activity: activityResponse(res.Activity),
		Cascade: dto.CascadeOutcomeResponse{
			Warnings: res.Cascade.Warnings,
		},
	}
	if res.Cascade.Warnings == nil {
		out.Cascade.Warnings = []string{}
	}
	if res.Cascade.ApplicationStatus != nil {
		s := string(*res.Cascade.ApplicationStatus)
		out.Cascade.ApplicationStatus = &s
	}
	if res.Cascade.CandidateStatus != nil {
		s := string(*res.Cascade.CandidateStatus)
		out.Cascade.CandidateStatus = &s
	}
	return out
}

// mapPipelineUsecaseError translates usecase and workflow errors into HTTP
// statuses. Rule violations are 422: the request was well-formed, the
// pipeline state forbids it.
func mapPipelineUsecaseError(err error) error {
	var transitionErr *workflow.TransitionError
	var sequenceErr *workflow.SequenceError
	var scheduleErr *workflow.ScheduleError

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request", nil, err)
	case errors.Is(err, usecase.ErrActivityNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "activity not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "application not found", nil, err)
	case errors.Is(err, usecase.ErrRequisitionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "requisition not found", nil, err)
	case errors.Is(err, usecase.ErrTransitionInFlight):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case errors.As(err, &transitionErr),
		errors.As(err, &sequenceErr),
		errors.As(err, &scheduleErr):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
