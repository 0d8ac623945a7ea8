// Package forms содержит HTTP-обработчики сессий формы регистрации.
package forms

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"regform/internal/registration/adapters/http/dto"
	"regform/internal/registration/adapters/http/middleware"
	"regform/internal/registration/app"
	"regform/internal/registration/domain/entities"
	"regform/pkg/logger"
)

const (
	LogHandlerCreate    = "handling create form request"
	LogHandlerGet       = "handling get form request"
	LogHandlerCountries = "handling get countries request"
	LogHandlerSetField  = "handling set field request"
	LogHandlerSubmit    = "handling submit request"
	LogHandlerDelete    = "handling delete form request"
	LogFieldRejected    = "field value rejected"

	ErrMsgFormNotFound       = "form not found"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgSubmitInProgress   = "submission already in progress"
	ErrMsgCountryUnavailable = "country is not available"
)

const paramID = "id"

// Handler обслуживает HTTP API сессий формы.
type Handler struct {
	sessions *app.Sessions
}

func NewHandler(sessions *app.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// Create открывает новую сессию формы и запускает загрузку стран.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreate)

	id, _ := h.sessions.Open(requestCtx)

	return send(ctx, fiber.StatusCreated, dto.CreateFormResponse{ID: id})
}

// Get возвращает черновик, ошибки и флаг отправки.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGet)

	id := ctx.Params(paramID)
	form, err := h.sessions.Get(id)
	if err != nil {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgFormNotFound)
	}

	return send(ctx, fiber.StatusOK, formResponse(id, form.Snapshot()))
}

// Countries возвращает список стран и стадию его загрузки.
func (h *Handler) Countries(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCountries)

	form, err := h.sessions.Get(ctx.Params(paramID))
	if err != nil {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgFormNotFound)
	}

	view := form.Countries()
	countries := view.Countries
	if countries == nil {
		countries = []entities.Country{}
	}

	return send(ctx, fiber.StatusOK, dto.CountriesResponse{
		State:     view.State.String(),
		Countries: countries,
	})
}

// SetField изменяет одно поле черновика.
func (h *Handler) SetField(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	field := ctx.Params("field")
	log := logger.Log(requestCtx).With(zap.String("field", field))
	log.Debug(requestCtx, LogHandlerSetField)

	id := ctx.Params(paramID)
	form, err := h.sessions.Get(id)
	if err != nil {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgFormNotFound)
	}

	var req dto.SetFieldRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	if err := form.SetField(requestCtx, field, req.Value); err != nil {
		log.Info(requestCtx, LogFieldRejected, zap.Error(err))
		return handleFieldError(ctx, err)
	}

	return send(ctx, fiber.StatusOK, formResponse(id, form.Snapshot()))
}

// Submit проверяет и отправляет форму.
func (h *Handler) Submit(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSubmit)

	form, err := h.sessions.Get(ctx.Params(paramID))
	if err != nil {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgFormNotFound)
	}

	result, err := form.Submit(requestCtx)
	if err != nil {
		if errors.Is(err, app.ErrSubmissionInProgress) {
			return sendError(ctx, fiber.StatusConflict, ErrMsgSubmitInProgress)
		}
		return fmt.Errorf("submit form: %w", err)
	}

	resp := dto.SubmitResponse{
		Status:       string(result.Status),
		Errors:       result.Errors,
		Notification: result.Notification,
	}
	if resp.Errors == nil {
		resp.Errors = map[string]string{}
	}

	if result.Status == app.SubmitInvalid {
		return send(ctx, fiber.StatusUnprocessableEntity, resp)
	}
	return send(ctx, fiber.StatusOK, resp)
}

// Delete закрывает сессию.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDelete)

	if err := h.sessions.Close(requestCtx, ctx.Params(paramID)); err != nil {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgFormNotFound)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func handleFieldError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrCountryNotSelectable):
		return sendError(ctx, fiber.StatusUnprocessableEntity, ErrMsgCountryUnavailable)
	case errors.Is(err, entities.ErrUnknownField):
		return sendError(ctx, fiber.StatusNotFound, err.Error())
	default:
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}
}

func formResponse(id string, s app.Snapshot) dto.FormResponse {
	errs := map[string]string(s.Errors)
	if errs == nil {
		errs = map[string]string{}
	}
	return dto.FormResponse{
		ID:         id,
		Draft:      s.Draft,
		Errors:     errs,
		Submitting: s.Submitting,
	}
}

func send(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	return send(ctx, status, dto.ErrorResponse{Error: msg})
}
