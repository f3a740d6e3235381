package queue

import (
	"net/http"
	"patientflow/infras/otel"
	flowService "patientflow/internal/domains/flow/service"
	"patientflow/internal/domains/queue/model"
	"patientflow/internal/domains/queue/model/dto"
	"patientflow/internal/domains/queue/service"
	"patientflow/shared/constant"
	gDto "patientflow/shared/dto"
	"patientflow/shared/failure"
	"patientflow/shared/validator"
	"patientflow/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	flow    flowService.PatientFlow
	service service.VisitQueue
	otel    otel.Otel
}

func New(flow flowService.PatientFlow, service service.VisitQueue, otel otel.Otel) Handler {
	return Handler{
		flow:    flow,
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/queue", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CheckIn)
		routerGroup.Post("/call-next", handler.CallNext)
		routerGroup.Get("/", handler.GetEntries)
		routerGroup.Get("/snapshot", handler.GetSnapshot)
		routerGroup.Get("/now-serving", handler.GetNowServing)
		routerGroup.Get("/stats", handler.GetStats)
		routerGroup.Get("/{id}", handler.GetEntryByID)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
		routerGroup.Patch("/{id}/stage", handler.UpdateStage)
		routerGroup.Post("/{id}/cancel", handler.CancelEntry)
		routerGroup.Post("/{id}/no-show", handler.MarkNoShow)
		routerGroup.Delete("/{id}", handler.RemoveEntry)
	})
}

// CheckIn enqueues a patient into a department queue.
func (handler *Handler) CheckIn(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	req := dto.CheckInRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.flow.CheckIn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in patient")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Patient checked in to queue " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// CallNext calls the next waiting patient for a department. An empty queue is
// a normal outcome and answers 200 with a message instead of an error.
func (handler *Handler) CallNext(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CallNext")
	defer scope.End()

	req := dto.CallNextRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, found, err := handler.flow.CallNext(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to call next patient")

		response.WithError(writer, err)

		return
	}

	if !found {
		scope.AddEvent("No waiting patients for department " + req.Department)

		response.WithMessage(writer, http.StatusOK, "No patients waiting")

		return
	}

	scope.AddEvent("Called next patient " + res.PatientID)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetEntries retrieves queue entries with optional filtering and pagination.
func (handler *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	tenantScope := r.URL.Query().Get(model.FieldTenantScope)
	department := r.URL.Query().Get(model.FieldDepartment)
	status := r.URL.Query().Get(model.FieldStatus)
	stage := r.URL.Query().Get(model.FieldStage)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	// Only add filters if the values are non-empty
	if tenantScope != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTenantScope,
			Operator: gDto.FilterOperatorEq,
			Value:    tenantScope,
			Table:    model.TableName,
		})
	}

	if department != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDepartment,
			Operator: gDto.FilterOperatorEq,
			Value:    department,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if stage != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStage,
			Operator: gDto.FilterOperatorEq,
			Value:    stage,
			Table:    model.TableName,
		})
	}

	entries, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get queue entries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue entries retrieved successfully")

	response.WithJSON(w, http.StatusOK, entries)
}

// GetSnapshot returns a department's board in serving order.
func (handler *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSnapshot")
	defer scope.End()

	tenantScope := r.URL.Query().Get(constant.RequestParamTenantScope)
	if tenantScope == "" {
		err := failure.BadRequestFromString("tenant_scope is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	department := r.URL.Query().Get(constant.RequestParamDepartment)

	snapshot, err := handler.service.Snapshot(ctx, tenantScope, department)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get queue snapshot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue snapshot retrieved successfully")

	response.WithJSON(w, http.StatusOK, snapshot)
}

// GetNowServing returns entries currently with staff (called or in progress).
func (handler *Handler) GetNowServing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNowServing")
	defer scope.End()

	tenantScope := r.URL.Query().Get(constant.RequestParamTenantScope)
	if tenantScope == "" {
		err := failure.BadRequestFromString("tenant_scope is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	department := r.URL.Query().Get(constant.RequestParamDepartment)

	serving, err := handler.service.NowServing(ctx, tenantScope, department)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get now serving entries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Now serving entries retrieved successfully")

	response.WithJSON(w, http.StatusOK, serving)
}

// GetStats returns waiting/called counts and the average wait time.
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	tenantScope := r.URL.Query().Get(constant.RequestParamTenantScope)
	if tenantScope == "" {
		err := failure.BadRequestFromString("tenant_scope is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	department := r.URL.Query().Get(constant.RequestParamDepartment)

	stats, err := handler.service.Stats(ctx, tenantScope, department)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get queue stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// GetEntryByID retrieves a queue entry by its ID.
func (handler *Handler) GetEntryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	entry, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get queue entry by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue entry retrieved successfully")

	response.WithJSON(w, http.StatusOK, entry)
}

// UpdateStatus moves a queue entry through its status machine.
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.flow.UpdateStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update queue entry status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue entry status updated to " + res.Status)

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStage moves a queue entry to another stage of the visit.
func (handler *Handler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.flow.AdvanceStage(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update queue entry stage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue entry stage updated to " + res.Stage)

	response.WithJSON(w, http.StatusOK, res)
}

// CancelEntry cancels a queue entry.
func (handler *Handler) CancelEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelEntry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.flow.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel queue entry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue entry cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Queue entry cancelled successfully")
}

// MarkNoShow marks a called patient who never showed up at the station.
func (handler *Handler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkNoShow")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.flow.MarkNoShow(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark queue entry as no-show")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue entry marked as no-show")

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveEntry deletes a queue entry outright.
func (handler *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveEntry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.flow.Remove(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove queue entry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Queue entry removed successfully")

	response.WithMessage(w, http.StatusOK, "Queue entry removed successfully")
}
