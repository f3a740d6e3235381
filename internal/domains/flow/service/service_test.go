package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"patientflow/infras/otel/mocks"
	bookingMocks "patientflow/internal/domains/booking/mocks"
	bookingDto "patientflow/internal/domains/booking/model/dto"
	"patientflow/internal/domains/flow/service"
	queueMocks "patientflow/internal/domains/queue/mocks"
	queueModel "patientflow/internal/domains/queue/model"
	queueDto "patientflow/internal/domains/queue/model/dto"
	eventMocks "patientflow/internal/events/mocks"
	"patientflow/internal/events"
	"patientflow/shared/failure"
)

func newFlow(t *testing.T) (service.PatientFlow, *queueMocks.MockVisitQueueService, *bookingMocks.MockRoomBookingService, *eventMocks.MockPublisher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockQueue := queueMocks.NewMockVisitQueueService(ctrl)
	mockBooking := bookingMocks.NewMockRoomBookingService(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	return service.New(mockQueue, mockBooking, mockPublisher, mockOtel), mockQueue, mockBooking, mockPublisher
}

func TestFlowService_CheckIn(t *testing.T) {
	svc, mockQueue, _, mockPublisher := newFlow(t)

	req := queueDto.CheckInRequest{TenantScope: "clinic-a", PatientID: "patient-1", Department: "general"}

	entry := queueDto.QueueEntryResponse{
		ID:          "entry-1",
		TenantScope: "clinic-a",
		PatientID:   "patient-1",
		Department:  "general",
		Status:      queueModel.StatusWaiting,
	}

	mockQueue.EXPECT().
		Enqueue(gomock.Any(), req).
		Return(entry, nil)

	mockPublisher.EXPECT().
		PublishActivity(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.ActivityEvent) {
			assert.Equal(t, events.ActionCheckIn, event.Action)
			assert.Equal(t, "entry-1", event.EntityID)
		})

	res, err := svc.CheckIn(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, "entry-1", res.ID)
}

func TestFlowService_CheckIn_DuplicateSkipsEvent(t *testing.T) {
	svc, mockQueue, _, _ := newFlow(t)

	req := queueDto.CheckInRequest{TenantScope: "clinic-a", PatientID: "patient-1", Department: "general"}

	mockQueue.EXPECT().
		Enqueue(gomock.Any(), req).
		Return(queueDto.QueueEntryResponse{}, failure.Duplicate("patient already has an active entry in this department"))

	_, err := svc.CheckIn(context.Background(), req)

	assert.Error(t, err)
	assert.Equal(t, failure.KindDuplicate, failure.GetKind(err))
}

func TestFlowService_CallNext(t *testing.T) {
	svc, mockQueue, _, mockPublisher := newFlow(t)

	req := queueDto.CallNextRequest{TenantScope: "clinic-a", Department: "general"}

	t.Run("candidate found", func(t *testing.T) {
		mockQueue.EXPECT().
			CallNext(gomock.Any(), req).
			Return(queueDto.QueueEntryResponse{ID: "entry-1", TenantScope: "clinic-a", Status: queueModel.StatusCalled}, true, nil)

		mockPublisher.EXPECT().
			PublishActivity(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, event events.ActivityEvent) {
				assert.Equal(t, events.ActionCallNext, event.Action)
			})

		res, found, err := svc.CallNext(context.Background(), req)

		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "entry-1", res.ID)
	})

	t.Run("empty queue publishes nothing", func(t *testing.T) {
		mockQueue.EXPECT().
			CallNext(gomock.Any(), req).
			Return(queueDto.QueueEntryResponse{}, false, nil)

		_, found, err := svc.CallNext(context.Background(), req)

		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestFlowService_BookRoomForVisit(t *testing.T) {
	bookingReq := bookingDto.CreateRoomBookingRequest{
		TenantScope: "clinic-a",
		RoomName:    "consult-1",
		BookingDate: "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}

	entry := queueDto.QueueEntryResponse{
		ID:          "entry-1",
		TenantScope: "clinic-a",
		PatientID:   "patient-1",
		Department:  "general",
		Stage:       queueModel.StageConsultation,
		Status:      queueModel.StatusInProgress,
	}

	t.Run("booking success links the room onto the visit", func(t *testing.T) {
		svc, mockQueue, mockBooking, mockPublisher := newFlow(t)

		mockQueue.EXPECT().
			Get(gomock.Any(), "entry-1").
			Return(entry, nil)

		mockBooking.EXPECT().
			Create(gomock.Any(), bookingReq).
			Return(bookingDto.RoomBookingResponse{ID: "booking-1", TenantScope: "clinic-a", RoomName: "consult-1"}, nil)

		mockQueue.EXPECT().
			UpdateStage(gomock.Any(), "entry-1", queueDto.UpdateStageRequest{
				Stage:      queueModel.StageConsultation,
				RoomNumber: "consult-1",
			}).
			Return(entry, nil)

		mockPublisher.EXPECT().
			PublishActivity(gomock.Any(), gomock.Any()).
			Times(2)

		res, err := svc.BookRoomForVisit(context.Background(), "entry-1", bookingReq)

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("booking conflict leaves the queue entry untouched", func(t *testing.T) {
		svc, mockQueue, mockBooking, _ := newFlow(t)

		mockQueue.EXPECT().
			Get(gomock.Any(), "entry-1").
			Return(entry, nil)

		// no UpdateStage and no event: the conflict surfaces unchanged and
		// nothing is rolled back or retried
		mockBooking.EXPECT().
			Create(gomock.Any(), bookingReq).
			Return(bookingDto.RoomBookingResponse{}, failure.ConflictWithID("room is already booked for the requested interval", "other-booking"))

		_, err := svc.BookRoomForVisit(context.Background(), "entry-1", bookingReq)

		assert.Error(t, err)
		assert.Equal(t, failure.KindConflict, failure.GetKind(err))

		var fail *failure.Failure
		if assert.ErrorAs(t, err, &fail) {
			assert.Equal(t, "other-booking", fail.ConflictID)
		}
	})

	t.Run("link failure does not fail the booking", func(t *testing.T) {
		svc, mockQueue, mockBooking, mockPublisher := newFlow(t)

		mockQueue.EXPECT().
			Get(gomock.Any(), "entry-1").
			Return(entry, nil)

		mockBooking.EXPECT().
			Create(gomock.Any(), bookingReq).
			Return(bookingDto.RoomBookingResponse{ID: "booking-1", TenantScope: "clinic-a", RoomName: "consult-1"}, nil)

		mockQueue.EXPECT().
			UpdateStage(gomock.Any(), "entry-1", gomock.Any()).
			Return(queueDto.QueueEntryResponse{}, failure.InvalidTransition("cannot change stage of a completed entry"))

		mockPublisher.EXPECT().
			PublishActivity(gomock.Any(), gomock.Any()).
			Times(1)

		res, err := svc.BookRoomForVisit(context.Background(), "entry-1", bookingReq)

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("tenant scope mismatch", func(t *testing.T) {
		svc, mockQueue, _, _ := newFlow(t)

		otherTenant := bookingReq
		otherTenant.TenantScope = "clinic-b"

		mockQueue.EXPECT().
			Get(gomock.Any(), "entry-1").
			Return(entry, nil)

		_, err := svc.BookRoomForVisit(context.Background(), "entry-1", otherTenant)

		assert.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})
}

func TestFlowService_CancelAndNoShow(t *testing.T) {
	svc, mockQueue, _, mockPublisher := newFlow(t)

	mockQueue.EXPECT().
		UpdateStatus(gomock.Any(), "entry-1", queueDto.UpdateStatusRequest{Status: queueModel.StatusCancelled}).
		Return(queueDto.QueueEntryResponse{ID: "entry-1", Status: queueModel.StatusCancelled}, nil)

	mockQueue.EXPECT().
		UpdateStatus(gomock.Any(), "entry-2", queueDto.UpdateStatusRequest{Status: queueModel.StatusNoShow}).
		Return(queueDto.QueueEntryResponse{ID: "entry-2", Status: queueModel.StatusNoShow}, nil)

	// each operation announces itself, not a generic status change
	mockPublisher.EXPECT().
		PublishActivity(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.ActivityEvent) {
			assert.Equal(t, events.ActionCancelled, event.Action)
			assert.Equal(t, "entry-1", event.EntityID)
		})

	mockPublisher.EXPECT().
		PublishActivity(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.ActivityEvent) {
			assert.Equal(t, events.ActionNoShow, event.Action)
			assert.Equal(t, "entry-2", event.EntityID)
		})

	assert.NoError(t, svc.Cancel(context.Background(), "entry-1"))

	res, err := svc.MarkNoShow(context.Background(), "entry-2")
	assert.NoError(t, err)
	assert.Equal(t, queueModel.StatusNoShow, res.Status)
}

func TestFlowService_Remove(t *testing.T) {
	svc, mockQueue, _, mockPublisher := newFlow(t)

	mockQueue.EXPECT().
		Get(gomock.Any(), "entry-1").
		Return(queueDto.QueueEntryResponse{ID: "entry-1", TenantScope: "clinic-a"}, nil)

	mockQueue.EXPECT().
		Remove(gomock.Any(), "entry-1").
		Return(nil)

	mockPublisher.EXPECT().
		PublishActivity(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.ActivityEvent) {
			assert.Equal(t, events.ActionRemoved, event.Action)
		})

	assert.NoError(t, svc.Remove(context.Background(), "entry-1"))
}
