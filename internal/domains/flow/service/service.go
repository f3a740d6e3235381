// Package service wires the visit queue and room booking components into the
// patient-flow facade. The facade is the only entry point for cross-component
// operations; it never touches repositories, only the two service contracts.
package service

import (
	"context"
	"patientflow/infras/otel"
	bookingDto "patientflow/internal/domains/booking/model/dto"
	bookingSvc "patientflow/internal/domains/booking/service"
	queueModel "patientflow/internal/domains/queue/model"
	queueDto "patientflow/internal/domains/queue/model/dto"
	queueSvc "patientflow/internal/domains/queue/service"
	"patientflow/internal/events"
	"patientflow/shared/constant"
	"patientflow/shared/failure"

	"github.com/rs/zerolog/log"
)

type PatientFlow interface {
	CheckIn(ctx context.Context, req queueDto.CheckInRequest) (queueDto.QueueEntryResponse, error)
	CallNext(ctx context.Context, req queueDto.CallNextRequest) (queueDto.QueueEntryResponse, bool, error)
	BookRoomForVisit(ctx context.Context, entryID string, req bookingDto.CreateRoomBookingRequest) (bookingDto.RoomBookingResponse, error)
	AdvanceStage(ctx context.Context, id string, req queueDto.UpdateStageRequest) (queueDto.QueueEntryResponse, error)
	UpdateStatus(ctx context.Context, id string, req queueDto.UpdateStatusRequest) (queueDto.QueueEntryResponse, error)
	Cancel(ctx context.Context, id string) error
	MarkNoShow(ctx context.Context, id string) (queueDto.QueueEntryResponse, error)
	Remove(ctx context.Context, id string) error
}

type serviceImpl struct {
	queue     queueSvc.VisitQueue
	booking   bookingSvc.RoomBooking
	publisher events.Publisher
	otel      otel.Otel
}

func New(queue queueSvc.VisitQueue, booking bookingSvc.RoomBooking, publisher events.Publisher, otel otel.Otel) PatientFlow {
	return &serviceImpl{
		queue:     queue,
		booking:   booking,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) CheckIn(ctx context.Context, req queueDto.CheckInRequest) (res queueDto.QueueEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.queue.Enqueue(ctx, req)
	if err != nil {
		return res, err
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionCheckIn,
		TenantScope: res.TenantScope,
		EntityID:    res.ID,
		PatientID:   res.PatientID,
		Department:  res.Department,
	})

	return res, nil
}

func (s *serviceImpl) CallNext(ctx context.Context, req queueDto.CallNextRequest) (res queueDto.QueueEntryResponse, found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CallNext")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, found, err = s.queue.CallNext(ctx, req)
	if err != nil || !found {
		return res, found, err
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionCallNext,
		TenantScope: res.TenantScope,
		EntityID:    res.ID,
		PatientID:   res.PatientID,
		Department:  res.Department,
		Detail:      res.RoomNumber,
	})

	return res, true, nil
}

// BookRoomForVisit reserves a room for an existing visit. The queue entry is
// the source of truth: a booking conflict surfaces unchanged and the entry is
// left exactly as it was; linking the room back onto the entry is best-effort.
func (s *serviceImpl) BookRoomForVisit(ctx context.Context, entryID string, req bookingDto.CreateRoomBookingRequest) (res bookingDto.RoomBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookRoomForVisit")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry, err := s.queue.Get(ctx, entryID)
	if err != nil {
		return res, err
	}

	if req.TenantScope != entry.TenantScope {
		return res, failure.BadRequestFromString("booking tenant scope does not match the visit") // nolint:wrapcheck
	}

	res, err = s.booking.Create(ctx, req)
	if err != nil {
		return res, err
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionRoomBooked,
		TenantScope: res.TenantScope,
		EntityID:    res.ID,
		PatientID:   entry.PatientID,
		Department:  entry.Department,
		Detail:      res.RoomName,
	})

	if _, linkErr := s.queue.UpdateStage(ctx, entryID, queueDto.UpdateStageRequest{
		Stage:      entry.Stage,
		RoomNumber: res.RoomName,
	}); linkErr != nil {
		// The booking stands either way; the board just won't show the room.
		log.Warn().Err(linkErr).Str("entryID", entryID).Msg("failed to link room onto visit")

		return res, nil
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionRoomLinked,
		TenantScope: res.TenantScope,
		EntityID:    entryID,
		PatientID:   entry.PatientID,
		Department:  entry.Department,
		Detail:      res.RoomName,
	})

	return res, nil
}

func (s *serviceImpl) AdvanceStage(ctx context.Context, id string, req queueDto.UpdateStageRequest) (res queueDto.QueueEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdvanceStage")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.queue.UpdateStage(ctx, id, req)
	if err != nil {
		return res, err
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionStageAdvanced,
		TenantScope: res.TenantScope,
		EntityID:    res.ID,
		PatientID:   res.PatientID,
		Department:  res.Department,
		Detail:      res.Stage,
	})

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req queueDto.UpdateStatusRequest) (res queueDto.QueueEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.queue.UpdateStatus(ctx, id, req)
	if err != nil {
		return res, err
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionStatusChanged,
		TenantScope: res.TenantScope,
		EntityID:    res.ID,
		PatientID:   res.PatientID,
		Department:  res.Department,
		Detail:      res.Status,
	})

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err := s.queue.UpdateStatus(ctx, id, queueDto.UpdateStatusRequest{Status: queueModel.StatusCancelled})
	if err != nil {
		return err
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionCancelled,
		TenantScope: res.TenantScope,
		EntityID:    res.ID,
		PatientID:   res.PatientID,
		Department:  res.Department,
	})

	return nil
}

func (s *serviceImpl) MarkNoShow(ctx context.Context, id string) (res queueDto.QueueEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkNoShow")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.queue.UpdateStatus(ctx, id, queueDto.UpdateStatusRequest{Status: queueModel.StatusNoShow})
	if err != nil {
		return res, err
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionNoShow,
		TenantScope: res.TenantScope,
		EntityID:    res.ID,
		PatientID:   res.PatientID,
		Department:  res.Department,
	})

	return res, nil
}

func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry, err := s.queue.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.queue.Remove(ctx, id); err != nil {
		return err
	}

	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Action:      events.ActionRemoved,
		TenantScope: entry.TenantScope,
		EntityID:    entry.ID,
		PatientID:   entry.PatientID,
		Department:  entry.Department,
	})

	return nil
}
