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
	queueMocks "patientflow/internal/domains/queue/mocks"
	"patientflow/internal/domains/queue/model"
	"patientflow/internal/domains/queue/model/dto"
	"patientflow/internal/domains/queue/service"
	cacheMocks "patientflow/shared/cache/mocks"
	"patientflow/shared/constant"
	gDto "patientflow/shared/dto"
	"patientflow/shared/failure"
)

func waitingEntry(id, patientID string, priority int, enqueuedAt time.Time) model.VisitQueueEntry {
	return model.VisitQueueEntry{
		ID:          id,
		TenantScope: "clinic-a",
		PatientID:   patientID,
		Department:  "general",
		Priority:    priority,
		Stage:       model.StageRegistration,
		Status:      model.StatusWaiting,
		EnqueuedAt:  enqueuedAt,
	}
}

func TestQueueService_Enqueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := queueMocks.NewMockVisitQueue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	req := dto.CheckInRequest{
		TenantScope: "clinic-a",
		PatientID:   "patient-1",
		Department:  "general",
	}

	tests := []struct {
		name      string
		req       dto.CheckInRequest
		setupMock func()
		wantErr   bool
		wantKind  string
	}{
		{
			name: "successful check-in with default priority",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().
					ActiveForPatient(gomock.Any(), "clinic-a", "patient-1", "general").
					Return(nil, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
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
			name: "duplicate check-in",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().
					ActiveForPatient(gomock.Any(), "clinic-a", "patient-1", "general").
					Return([]model.VisitQueueEntry{waitingEntry("existing", "patient-1", 3, time.Now())}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindDuplicate,
		},
		{
			name: "repository error",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().
					ActiveForPatient(gomock.Any(), "clinic-a", "patient-1", "general").
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
			res, err := svc.Enqueue(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusWaiting, res.Status)
				assert.Equal(t, model.StageRegistration, res.Stage)
				assert.Equal(t, constant.DefaultValuePriority, res.Priority)
			}
		})
	}
}

func TestQueueService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := queueMocks.NewMockVisitQueue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name       string
		id         string
		req        dto.UpdateStatusRequest
		setupMock  func()
		wantErr    bool
		wantKind   string
		wantStatus string
		check      func(t *testing.T, res dto.QueueEntryResponse)
	}{
		{
			name: "waiting to called stamps called_at",
			id:   "entry-1",
			req:  dto.UpdateStatusRequest{Status: model.StatusCalled, RoomNumber: "room-2"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "entry-1").
					Return(waitingEntry("entry-1", "patient-1", 3, time.Now()), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCalled, fields[model.FieldStatus])
						assert.NotNil(t, fields[model.FieldCalledAt])
						assert.Equal(t, "room-2", fields[model.FieldRoomNumber])

						return nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:    false,
			wantStatus: model.StatusCalled,
			check: func(t *testing.T, res dto.QueueEntryResponse) {
				assert.NotEmpty(t, res.CalledAt)
				assert.Equal(t, "room-2", res.RoomNumber)
			},
		},
		{
			name: "illegal transition leaves entry unchanged",
			id:   "entry-1",
			req:  dto.UpdateStatusRequest{Status: model.StatusCompleted},
			setupMock: func() {
				// no Update expected: the entry must not be touched
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "entry-1").
					Return(waitingEntry("entry-1", "patient-1", 3, time.Now()), nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
		{
			name: "terminal entry rejects further transitions",
			id:   "entry-1",
			req:  dto.UpdateStatusRequest{Status: model.StatusCalled},
			setupMock: func() {
				done := waitingEntry("entry-1", "patient-1", 3, time.Now())
				done.Status = model.StatusCompleted

				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "entry-1").
					Return(done, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
		{
			name: "entry not found",
			id:   "missing-id",
			req:  dto.UpdateStatusRequest{Status: model.StatusCalled},
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "missing-id").
					Return(model.VisitQueueEntry{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.UpdateStatus(ctx, tt.id, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.Status)

				if tt.check != nil {
					tt.check(t, res)
				}
			}
		})
	}
}

func TestQueueService_UpdateStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := queueMocks.NewMockVisitQueue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateStageRequest
		setupMock func()
		wantErr   bool
		wantKind  string
	}{
		{
			name: "advance stage on an active entry",
			id:   "entry-1",
			req:  dto.UpdateStageRequest{Stage: model.StageTriage, RoomNumber: "triage-1"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "entry-1").
					Return(waitingEntry("entry-1", "patient-1", 3, time.Now()), nil)

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
			name: "stage change on a cancelled entry",
			id:   "entry-1",
			req:  dto.UpdateStageRequest{Stage: model.StageTriage},
			setupMock: func() {
				cancelled := waitingEntry("entry-1", "patient-1", 3, time.Now())
				cancelled.Status = model.StatusCancelled

				mockRepo.EXPECT().
					GetCurrent(gomock.Any(), "entry-1").
					Return(cancelled, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.UpdateStage(ctx, tt.id, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.Stage, res.Stage)
			}
		})
	}
}

func TestQueueService_CallNext_Ordering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := queueMocks.NewMockVisitQueue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	// priority 3 arrived first; the two priority 1 entries still go ahead of it
	entries := []model.VisitQueueEntry{
		waitingEntry("e1", "p1", 3, base),
		waitingEntry("e2", "p2", 1, base.Add(time.Minute)),
		waitingEntry("e3", "p3", 1, base.Add(2*time.Minute)),
	}

	mockRepo.EXPECT().
		ActiveEntries(gomock.Any(), "clinic-a", "general").
		Return(entries, nil)

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

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")

	res, found, err := svc.CallNext(ctx, dto.CallNextRequest{TenantScope: "clinic-a", Department: "general", RoomNumber: "room-1"})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "e2", res.ID)
	assert.Equal(t, model.StatusCalled, res.Status)
	assert.Equal(t, "room-1", res.RoomNumber)
	assert.NotEmpty(t, res.CalledAt)
}

func TestQueueService_EndToEnd_CallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := queueMocks.NewMockVisitQueue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	var mu sync.Mutex
	store := map[string]*model.VisitQueueEntry{}

	mockRepo.EXPECT().
		ActiveForPatient(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tenant, patient, department string) ([]model.VisitQueueEntry, error) {
			mu.Lock()
			defer mu.Unlock()

			var out []model.VisitQueueEntry
			for _, e := range store {
				if e.TenantScope == tenant && e.PatientID == patient && e.Department == department && model.IsActiveStatus(e.Status) {
					out = append(out, *e)
				}
			}

			return out, nil
		}).
		AnyTimes()

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry model.VisitQueueEntry) error {
			mu.Lock()
			defer mu.Unlock()

			store[entry.ID] = &entry

			return nil
		}).
		AnyTimes()

	mockRepo.EXPECT().
		ActiveEntries(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tenant, department string) ([]model.VisitQueueEntry, error) {
			mu.Lock()
			defer mu.Unlock()

			var out []model.VisitQueueEntry
			for _, e := range store {
				if e.TenantScope == tenant && e.Department == department && model.IsActiveStatus(e.Status) {
					out = append(out, *e)
				}
			}

			return out, nil
		}).
		AnyTimes()

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
			mu.Lock()
			defer mu.Unlock()

			_, args := filter.GetWhereClause()
			id, _ := args[model.FieldID].(string)

			if entry, ok := store[id]; ok {
				if status, ok := fields[model.FieldStatus].(string); ok {
					entry.Status = status
				}
			}

			return nil
		}).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")

	resA, err := svc.Enqueue(ctx, dto.CheckInRequest{TenantScope: "clinic-a", PatientID: "patient-a", Department: "general", Priority: 5})
	assert.NoError(t, err)

	resB, err := svc.Enqueue(ctx, dto.CheckInRequest{TenantScope: "clinic-a", PatientID: "patient-b", Department: "general", Priority: 1})
	assert.NoError(t, err)

	callReq := dto.CallNextRequest{TenantScope: "clinic-a", Department: "general"}

	first, found, err := svc.CallNext(ctx, callReq)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, resB.ID, first.ID)

	second, found, err := svc.CallNext(ctx, callReq)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, resA.ID, second.ID)

	_, found, err = svc.CallNext(ctx, callReq)
	assert.NoError(t, err)
	assert.False(t, found)

	time.Sleep(20 * time.Millisecond)
}

func TestQueueService_CallNext_ConcurrentDistinctPatients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := queueMocks.NewMockVisitQueue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	store := map[string]*model.VisitQueueEntry{}

	for i, id := range []string{"e1", "e2", "e3"} {
		entry := waitingEntry(id, "p"+id, 3, base.Add(time.Duration(i)*time.Minute))
		store[id] = &entry
	}

	mockRepo.EXPECT().
		ActiveEntries(gomock.Any(), "clinic-a", "general").
		DoAndReturn(func(_ context.Context, tenant, department string) ([]model.VisitQueueEntry, error) {
			mu.Lock()
			defer mu.Unlock()

			var out []model.VisitQueueEntry
			for _, e := range store {
				if e.TenantScope == tenant && e.Department == department && model.IsActiveStatus(e.Status) {
					out = append(out, *e)
				}
			}

			return out, nil
		}).
		AnyTimes()

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
			mu.Lock()
			defer mu.Unlock()

			_, args := filter.GetWhereClause()
			id, _ := args[model.FieldID].(string)

			if entry, ok := store[id]; ok {
				if status, ok := fields[model.FieldStatus].(string); ok {
					entry.Status = status
				}
			}

			return nil
		}).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	req := dto.CallNextRequest{TenantScope: "clinic-a", Department: "general"}

	// three stations racing call-next must each get a different patient
	var wg sync.WaitGroup
	var resMu sync.Mutex
	calledIDs := map[string]int{}

	for i := 0; i < 3; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			res, found, err := svc.CallNext(ctx, req)

			resMu.Lock()
			defer resMu.Unlock()

			assert.NoError(t, err)
			assert.True(t, found)
			calledIDs[res.ID]++
		}()
	}

	wg.Wait()

	assert.Len(t, calledIDs, 3)
	for id, count := range calledIDs {
		assert.Equal(t, 1, count, "entry %s called more than once", id)
	}

	// nobody left waiting
	_, found, err := svc.CallNext(ctx, req)
	assert.NoError(t, err)
	assert.False(t, found)

	time.Sleep(20 * time.Millisecond)
}

func TestQueueService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := queueMocks.NewMockVisitQueue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	now := time.Now()
	calledAt := now.Add(-5 * time.Minute)

	called := waitingEntry("e2", "p2", 1, now.Add(-15*time.Minute))
	called.Status = model.StatusCalled
	called.CalledAt = &calledAt

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.VisitQueueEntry{
			waitingEntry("e1", "p1", 3, now.Add(-10*time.Minute)),
			called,
		}, nil)

	res, err := svc.Stats(context.Background(), "clinic-a", "general")

	assert.NoError(t, err)
	assert.Equal(t, 1, res.WaitingCount)
	assert.Equal(t, 1, res.CalledCount)
	assert.Greater(t, res.AvgWaitSeconds, 0.0)
}
