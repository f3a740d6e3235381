package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"patientflow/config"
	"patientflow/infras/otel/mocks"
	bookingMocks "patientflow/internal/domains/booking/mocks"
	"patientflow/internal/domains/booking/model"
	"patientflow/internal/domains/booking/model/dto"
	"patientflow/internal/domains/booking/service"
	cacheMocks "patientflow/shared/cache/mocks"
	"patientflow/shared/constant"
	"patientflow/shared/failure"
)

func clock(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(constant.ClockFormat, value)
	if err != nil {
		t.Fatalf("failed to parse clock value %s: %v", value, err)
	}

	return parsed
}

func existingBooking(id, room, start, end string, t *testing.T) model.RoomBooking {
	t.Helper()

	date, _ := time.Parse(constant.BookingDateFormat, "2026-03-02")

	return model.RoomBooking{
		ID:          id,
		TenantScope: "clinic-a",
		RoomName:    room,
		BookingDate: date,
		StartTime:   clock(t, start),
		EndTime:     clock(t, end),
		Status:      model.StatusBooked,
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockRoomBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	validReq := dto.CreateRoomBookingRequest{
		TenantScope: "clinic-a",
		RoomName:    "consult-1",
		BookingDate: "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}

	tests := []struct {
		name           string
		req            dto.CreateRoomBookingRequest
		setupMock      func()
		wantErr        bool
		wantKind       string
		wantConflictID string
	}{
		{
			name: "successful creation on empty slot",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					ActiveForSlot(gomock.Any(), "clinic-a", "consult-1", "2026-03-02").
					Return(nil, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "overlapping booking is rejected with the colliding id",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					ActiveForSlot(gomock.Any(), "clinic-a", "consult-1", "2026-03-02").
					Return([]model.RoomBooking{existingBooking("existing-id", "consult-1", "09:30", "10:30", t)}, nil)
			},
			wantErr:        true,
			wantKind:       failure.KindConflict,
			wantConflictID: "existing-id",
		},
		{
			name: "adjacent booking does not conflict",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					ActiveForSlot(gomock.Any(), "clinic-a", "consult-1", "2026-03-02").
					Return([]model.RoomBooking{existingBooking("existing-id", "consult-1", "10:00", "11:00", t)}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "end before start",
			req: dto.CreateRoomBookingRequest{
				TenantScope: "clinic-a",
				RoomName:    "consult-1",
				BookingDate: "2026-03-02",
				StartTime:   "10:00",
				EndTime:     "09:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name: "malformed time",
			req: dto.CreateRoomBookingRequest{
				TenantScope: "clinic-a",
				RoomName:    "consult-1",
				BookingDate: "2026-03-02",
				StartTime:   "nine",
				EndTime:     "10:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					ActiveForSlot(gomock.Any(), "clinic-a", "consult-1", "2026-03-02").
					Return(nil, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}

				if tt.wantConflictID != "" {
					var fail *failure.Failure
					if assert.ErrorAs(t, err, &fail) {
						assert.Equal(t, tt.wantConflictID, fail.ConflictID)
					}
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusBooked, res.Status)
			}
		})
	}
}

func TestBookingService_Create_ConcurrentSameSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockRoomBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	var mu sync.Mutex
	var stored []model.RoomBooking

	mockRepo.EXPECT().
		ActiveForSlot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string) ([]model.RoomBooking, error) {
			mu.Lock()
			defer mu.Unlock()

			out := make([]model.RoomBooking, len(stored))
			copy(out, stored)

			return out, nil
		}).
		AnyTimes()

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.RoomBooking) error {
			mu.Lock()
			defer mu.Unlock()

			stored = append(stored, booking)

			return nil
		}).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	req := dto.CreateRoomBookingRequest{
		TenantScope: "clinic-a",
		RoomName:    "consult-1",
		BookingDate: "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}

	const attempts = 8

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := range attempts {
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()

			_, err := svc.Create(context.Background(), req)
			results[idx] = err
		}(i)
	}

	wg.Wait()
	time.Sleep(20 * time.Millisecond)

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.Equal(t, failure.KindConflict, failure.GetKind(err))
		}
	}

	assert.Equal(t, 1, winners)
	assert.Len(t, stored, 1)
}

func TestBookingService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockRoomBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	current := existingBooking("booking-1", "consult-1", "09:00", "10:00", t)

	tests := []struct {
		name      string
		req       dto.UpdateRoomBookingRequest
		id        string
		setupMock func()
		wantErr   bool
		wantKind  string
	}{
		{
			name: "status-only transition skips the slot check",
			req:  dto.UpdateRoomBookingRequest{Status: model.StatusInUse},
			id:   "booking-1",
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "booking-1").
					Return(current, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "illegal status transition",
			req:  dto.UpdateRoomBookingRequest{Status: model.StatusCompleted},
			id:   "booking-1",
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "booking-1").
					Return(current, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
		{
			name: "reschedule onto an occupied interval",
			req:  dto.UpdateRoomBookingRequest{StartTime: "11:00", EndTime: "12:00"},
			id:   "booking-1",
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "booking-1").
					Return(current, nil)

				mockRepo.EXPECT().
					ActiveForSlot(gomock.Any(), "clinic-a", "consult-1", "2026-03-02").
					Return([]model.RoomBooking{existingBooking("other-id", "consult-1", "11:30", "12:30", t)}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "reschedule ignores its own interval",
			req:  dto.UpdateRoomBookingRequest{StartTime: "09:30", EndTime: "10:30"},
			id:   "booking-1",
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "booking-1").
					Return(current, nil)

				mockRepo.EXPECT().
					ActiveForSlot(gomock.Any(), "clinic-a", "consult-1", "2026-03-02").
					Return([]model.RoomBooking{current}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			req:  dto.UpdateRoomBookingRequest{Status: model.StatusInUse},
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "missing-id").
					Return(model.RoomBooking{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name:      "empty request",
			req:       dto.UpdateRoomBookingRequest{},
			id:        "booking-1",
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockRoomBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantKind  string
	}{
		{
			name: "successful cancellation",
			id:   "booking-1",
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "booking-1").
					Return(existingBooking("booking-1", "consult-1", "09:00", "10:00", t), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "cancelling twice is a no-op",
			id:   "booking-1",
			setupMock: func() {
				cancelled := existingBooking("booking-1", "consult-1", "09:00", "10:00", t)
				cancelled.Status = model.StatusCancelled

				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "booking-1").
					Return(cancelled, nil)
			},
			wantErr: false,
		},
		{
			name: "cannot cancel a completed booking",
			id:   "booking-1",
			setupMock: func() {
				completed := existingBooking("booking-1", "consult-1", "09:00", "10:00", t)
				completed.Status = model.StatusCompleted

				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "booking-1").
					Return(completed, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
		{
			name: "booking not found",
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "missing-id").
					Return(model.RoomBooking{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Cancel(ctx, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockRoomBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache miss, successful get from db",
			id:   "booking-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "consult-1", "09:00", "10:00", t), nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-1",
		},
		{
			name: "booking not found",
			id:   "missing-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.RoomBooking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, result.ID)
			}
		})
	}
}
