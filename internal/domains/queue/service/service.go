package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names VisitQueue=MockVisitQueueService

import (
	"context"
	"fmt"
	"patientflow/config"
	"patientflow/infras/otel"
	"patientflow/internal/domains/queue/model"
	"patientflow/internal/domains/queue/model/dto"
	"patientflow/internal/domains/queue/repository"
	"patientflow/internal/domains/queue/selector"
	"patientflow/shared"
	"patientflow/shared/cache"
	"patientflow/shared/constant"
	gDto "patientflow/shared/dto"
	"patientflow/shared/failure"
	"patientflow/shared/keylock"
	gRepo "patientflow/shared/repository"
	"patientflow/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetEntry    = "queue:get"
	cacheGetAllEntry = "queue:gets"
	cacheCountEntry  = "queue:count"
	cacheSnapshot    = "queue:snapshot"
	cacheNowServing  = "queue:serving"
)

type VisitQueue interface {
	Enqueue(ctx context.Context, req dto.CheckInRequest) (dto.QueueEntryResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.QueueEntryResponse, error)
	UpdateStage(ctx context.Context, id string, req dto.UpdateStageRequest) (dto.QueueEntryResponse, error)
	CallNext(ctx context.Context, req dto.CallNextRequest) (dto.QueueEntryResponse, bool, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.QueueEntryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetQueueEntriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Snapshot(ctx context.Context, tenantScope, department string) (dto.SnapshotResponse, error)
	NowServing(ctx context.Context, tenantScope, department string) (dto.SnapshotResponse, error)
	Stats(ctx context.Context, tenantScope, department string) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo  repository.VisitQueue
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	locks *keylock.KeyedMutex
}

func New(repo repository.VisitQueue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) VisitQueue {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		locks: keylock.New(),
	}
}

func (s *serviceImpl) Enqueue(ctx context.Context, req dto.CheckInRequest) (res dto.QueueEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Enqueue")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	entry := req.ToModel(user)

	// One check-in at a time per (tenant, patient, department) so two desks
	// can't both pass the duplicate check.
	unlock := s.locks.Lock(keylock.Key(req.TenantScope, req.PatientID, req.Department))
	defer unlock()

	active, err := s.repo.ActiveForPatient(ctx, req.TenantScope, req.PatientID, req.Department)
	if err != nil {
		log.Error().Err(err).Msg("failed to check active entries for patient")

		return res, fmt.Errorf("failed to check active entries for patient: %w", err)
	}

	if len(active) > 0 {
		return res, failure.Duplicate("patient already has an active entry in this department") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Duplicate("patient already has an active entry in this department") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to enqueue patient")

		return res, fmt.Errorf("failed to enqueue patient: %w", err)
	}

	s.invalidateEntry(ctx, entry.ID)

	res.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.QueueEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.repo.GetCurrent(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get queue entry")

		return res, fmt.Errorf("failed to get queue entry: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("queue entry not found") // nolint:wrapcheck
	}

	if !model.CanTransition(current.Status, req.Status) {
		return res, failure.InvalidTransition(fmt.Sprintf("queue entry cannot move from %s to %s", current.Status, req.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	current.Status = req.Status
	current.ModifiedAt = now
	current.ModifiedBy = user

	switch req.Status {
	case model.StatusCalled:
		updatedFields[model.FieldCalledAt] = now
		current.CalledAt = &now
	case model.StatusCompleted:
		updatedFields[model.FieldCompletedAt] = now
		current.CompletedAt = &now
	}

	if req.RoomNumber != constant.Empty {
		updatedFields[model.FieldRoomNumber] = req.RoomNumber
		current.RoomNumber = req.RoomNumber
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update queue entry status")

		return res, fmt.Errorf("failed to update queue entry status: %w", err)
	}

	s.invalidateEntry(ctx, id)

	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) UpdateStage(ctx context.Context, id string, req dto.UpdateStageRequest) (res dto.QueueEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStage")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.repo.GetCurrent(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get queue entry")

		return res, fmt.Errorf("failed to get queue entry: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("queue entry not found") // nolint:wrapcheck
	}

	if !model.IsActiveStatus(current.Status) {
		return res, failure.InvalidTransition(fmt.Sprintf("cannot change stage of a %s entry", current.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldStage:         req.Stage,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	current.Stage = req.Stage
	current.ModifiedAt = now
	current.ModifiedBy = user

	if req.RoomNumber != constant.Empty {
		updatedFields[model.FieldRoomNumber] = req.RoomNumber
		current.RoomNumber = req.RoomNumber
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update queue entry stage")

		return res, fmt.Errorf("failed to update queue entry stage: %w", err)
	}

	s.invalidateEntry(ctx, id)

	res.FromModel(current)

	return res, nil
}

// CallNext picks the next waiting patient for a department and transitions
// them to called. The boolean is false when nobody is waiting; that is a
// normal outcome, not an error.
func (s *serviceImpl) CallNext(ctx context.Context, req dto.CallNextRequest) (res dto.QueueEntryResponse, found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CallNext")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// Serialize per department so two stations never call the same patient.
	unlock := s.locks.Lock(keylock.Key(req.TenantScope, req.Department))
	defer unlock()

	entries, err := s.repo.ActiveEntries(ctx, req.TenantScope, req.Department)
	if err != nil {
		log.Error().Err(err).Msg("failed to load queue for call-next")

		return res, false, fmt.Errorf("failed to load queue for call-next: %w", err)
	}

	candidate, ok := selector.Next(entries)
	if !ok {
		return res, false, nil
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusCalled,
		model.FieldCalledAt:      now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	candidate.Status = model.StatusCalled
	candidate.CalledAt = &now
	candidate.ModifiedAt = now
	candidate.ModifiedBy = user

	if req.RoomNumber != constant.Empty {
		updatedFields[model.FieldRoomNumber] = req.RoomNumber
		candidate.RoomNumber = req.RoomNumber
	}

	// The status filter backstops the lock: the update only lands if the
	// entry is still waiting.
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    candidate.ID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusWaiting,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
				ArgName:  "status_waiting",
			},
		},
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to call next patient")

		return res, false, fmt.Errorf("failed to call next patient: %w", err)
	}

	s.invalidateEntry(ctx, candidate.ID)

	res.FromModel(candidate)

	return res, true, nil
}

func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if queue entry exists")

		return fmt.Errorf("failed to check if queue entry exists: %w", err)
	}

	if !exist {
		return failure.NotFound("queue entry not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to remove queue entry")

		return fmt.Errorf("failed to remove queue entry: %w", err)
	}

	s.invalidateEntry(ctx, id)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.QueueEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEntry, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for queue entry")

		return res, nil
	}

	entry, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get queue entry")

		return res, fmt.Errorf("failed to get queue entry: %w", err)
	}

	if entry.ID == constant.Empty {
		return res, failure.NotFound("queue entry not found") // nolint:wrapcheck
	}

	res.FromModel(entry)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save queue entry to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetQueueEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEntry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for queue entries")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count queue entries")

		return res, fmt.Errorf("failed to count queue entries: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get queue entries")

		return res, fmt.Errorf("failed to get queue entries: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save queue entries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEntry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for queue entry count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count queue entries")

		return res, fmt.Errorf("failed to count queue entries: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save queue entry count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) activeDepartmentFilter(tenantScope, department string, statuses []string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldTenantScope,
			Value:    tenantScope,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    statuses,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
	}

	if department != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldDepartment,
			Value:    department,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters}
}

// Snapshot lists a department's non-terminal entries in serving order. It is
// a display read: served from cache when possible, never used for decisions.
func (s *serviceImpl) Snapshot(ctx context.Context, tenantScope, department string) (res dto.SnapshotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Snapshot")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSnapshot, tenantScope, department)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for queue snapshot")

		return res, nil
	}

	entries, err := s.repo.GetAll(ctx, gDto.QueryParams{}, s.activeDepartmentFilter(tenantScope, department, model.ActiveStatuses()))
	if err != nil {
		log.Error().Err(err).Msg("failed to get queue snapshot")

		return res, fmt.Errorf("failed to get queue snapshot: %w", err)
	}

	res.FromModels(selector.Order(entries))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save queue snapshot to cache")
		}
	}()

	return res, nil
}

// NowServing lists the entries currently with staff (called or in_progress).
func (s *serviceImpl) NowServing(ctx context.Context, tenantScope, department string) (res dto.SnapshotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NowServing")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheNowServing, tenantScope, department)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for now serving")

		return res, nil
	}

	serving := []string{model.StatusCalled, model.StatusInProgress}

	entries, err := s.repo.GetAll(ctx, gDto.QueryParams{}, s.activeDepartmentFilter(tenantScope, department, serving))
	if err != nil {
		log.Error().Err(err).Msg("failed to get now serving entries")

		return res, fmt.Errorf("failed to get now serving entries: %w", err)
	}

	res.FromModels(selector.Order(entries))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save now serving entries to cache")
		}
	}()

	return res, nil
}

// Stats reports waiting/called counts and the average wait. Waiting entries
// contribute their current age; called entries contribute the time between
// enqueue and call.
func (s *serviceImpl) Stats(ctx context.Context, tenantScope, department string) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	statuses := []string{model.StatusWaiting, model.StatusCalled}

	entries, err := s.repo.GetAll(ctx, gDto.QueryParams{}, s.activeDepartmentFilter(tenantScope, department, statuses))
	if err != nil {
		log.Error().Err(err).Msg("failed to get queue stats")

		return res, fmt.Errorf("failed to get queue stats: %w", err)
	}

	now := timezone.Now()
	totalWait := 0.0
	sampled := 0

	for _, entry := range entries {
		switch entry.Status {
		case model.StatusWaiting:
			res.WaitingCount++

			totalWait += now.Sub(entry.EnqueuedAt).Seconds()
			sampled++
		case model.StatusCalled:
			res.CalledCount++

			if entry.CalledAt != nil {
				totalWait += entry.CalledAt.Sub(entry.EnqueuedAt).Seconds()
				sampled++
			}
		}
	}

	if sampled > 0 {
		res.AvgWaitSeconds = totalWait / float64(sampled)
	}

	return res, nil
}

func (s *serviceImpl) invalidateEntry(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEntry, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete queue entry from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEntry)
		shared.InvalidateCaches(c, s.cache, cacheCountEntry)
		shared.InvalidateCaches(c, s.cache, cacheSnapshot)
		shared.InvalidateCaches(c, s.cache, cacheNowServing)
	}()
}
