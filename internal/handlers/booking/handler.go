package booking

import (
	"net/http"
	"patientflow/infras/otel"
	"patientflow/internal/domains/booking/model"
	"patientflow/internal/domains/booking/model/dto"
	"patientflow/internal/domains/booking/service"
	flowService "patientflow/internal/domains/flow/service"
	"patientflow/shared/constant"
	gDto "patientflow/shared/dto"
	"patientflow/shared/validator"
	"patientflow/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.RoomBooking
	flow    flowService.PatientFlow
	otel    otel.Otel
}

func New(service service.RoomBooking, flow flowService.PatientFlow, otel otel.Otel) Handler {
	return Handler{
		service: service,
		flow:    flow,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/visits/{id}", handler.BookForVisit)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking reserves a room slot that is not tied to a queue entry.
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateRoomBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// BookForVisit reserves a room for an existing queue entry and links the room
// onto the visit.
func (handler *Handler) BookForVisit(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookForVisit")
	defer scope.End()

	entryID := chi.URLParam(request, constant.RequestParamID)

	req := dto.CreateRoomBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.flow.BookRoomForVisit(ctx, entryID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book room for visit")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room booked for visit " + entryID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings retrieves all bookings based on query parameters.
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	tenantScope := r.URL.Query().Get(model.FieldTenantScope)
	roomName := r.URL.Query().Get(model.FieldRoomName)
	status := r.URL.Query().Get(model.FieldStatus)
	bookingDate := r.URL.Query().Get(model.FieldBookingDate)

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

	if roomName != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomName,
			Operator: gDto.FilterOperatorEq,
			Value:    roomName,
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

	if bookingDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    bookingDate,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking updates an existing booking by its ID.
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRoomBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by " + user)

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// CancelBooking releases a booked slot. Cancelling twice is a no-op.
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// DeleteBooking deletes a booking by its ID.
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking deleted successfully")

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}
