package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names RoomBooking=MockRoomBookingService

import (
	"context"
	"fmt"
	"patientflow/config"
	"patientflow/infras/otel"
	"patientflow/internal/domains/booking/model"
	"patientflow/internal/domains/booking/model/dto"
	"patientflow/internal/domains/booking/repository"
	"patientflow/shared"
	"patientflow/shared/cache"
	"patientflow/shared/constant"
	gDto "patientflow/shared/dto"
	"patientflow/shared/failure"
	"patientflow/shared/interval"
	"patientflow/shared/keylock"
	gRepo "patientflow/shared/repository"
	"patientflow/shared/timezone"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type RoomBooking interface {
	Create(ctx context.Context, req dto.CreateRoomBookingRequest) (dto.RoomBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomBookingResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomBookingRequest, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.RoomBooking
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	locks *keylock.KeyedMutex
}

func New(repo repository.RoomBooking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) RoomBooking {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		locks: keylock.New(),
	}
}

func slotKey(tenantScope, roomName, bookingDate string) string {
	return keylock.Key(tenantScope, roomName, bookingDate)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomBookingRequest) (res dto.RoomBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !interval.IsValid(booking.StartTime, booking.EndTime) {
		return res, failure.BadRequestFromString("end_time must be after start_time") // nolint:wrapcheck
	}

	// All booking attempts for this slot race through one mutex; the overlap
	// check and the insert below form a single critical section.
	unlock := s.locks.Lock(slotKey(req.TenantScope, req.RoomName, req.BookingDate))
	defer unlock()

	if err = s.checkSlotFree(ctx, req.TenantScope, req.RoomName, req.BookingDate, booking.StartTime, booking.EndTime, constant.Empty); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		if gRepo.IsUniqueViolation(err) || gRepo.IsExclusionViolation(err) {
			return res, failure.Conflict("room is already booked for the requested interval") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

// checkSlotFree rejects the requested interval when it overlaps any
// non-cancelled booking for the slot, skipping excludeID so updates do not
// collide with themselves. Callers must hold the slot lock.
func (s *serviceImpl) checkSlotFree(ctx context.Context, tenantScope, roomName, bookingDate string, startTime, endTime time.Time, excludeID string) error {
	active, err := s.repo.ActiveForSlot(ctx, tenantScope, roomName, bookingDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings for slot")

		return fmt.Errorf("failed to load bookings for slot: %w", err)
	}

	for _, existing := range active {
		if existing.ID == excludeID {
			continue
		}

		if interval.Overlaps(startTime, endTime, existing.StartTime, existing.EndTime) {
			return failure.ConflictWithID("room is already booked for the requested interval", existing.ID) // nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.RoomName == constant.Empty && req.RoomType == constant.Empty && req.BookingDate == constant.Empty &&
		req.StartTime == constant.Empty && req.EndTime == constant.Empty && req.Status == constant.Empty &&
		req.AppointmentID == constant.Empty && len(req.EquipmentRequired) == 0 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.repo.GetCurrent(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if req.Status != constant.Empty && req.Status != current.Status && !model.CanTransition(current.Status, req.Status) {
		return failure.InvalidTransition(fmt.Sprintf("booking cannot move from %s to %s", current.Status, req.Status)) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if len(req.EquipmentRequired) > 0 {
		updatedFields[model.FieldEquipmentRequired] = pq.StringArray(req.EquipmentRequired)
	}

	if req.ChangesSlot() {
		if model.IsTerminalStatus(current.Status) {
			return failure.InvalidTransition(fmt.Sprintf("cannot reschedule a %s booking", current.Status)) // nolint:wrapcheck
		}

		newRoom := current.RoomName
		if req.RoomName != constant.Empty {
			newRoom = req.RoomName
		}

		newDate := current.BookingDate.Format(constant.BookingDateFormat)
		if req.BookingDate != constant.Empty {
			parsed, parseErr := time.Parse(constant.BookingDateFormat, req.BookingDate)
			if parseErr != nil {
				return failure.BadRequestFromString(fmt.Sprintf("invalid booking_date: %v", parseErr)) // nolint:wrapcheck
			}

			newDate = req.BookingDate
			updatedFields[model.FieldBookingDate] = parsed
		}

		newStart := current.StartTime
		if req.StartTime != constant.Empty {
			parsed, parseErr := time.Parse(constant.ClockFormat, req.StartTime)
			if parseErr != nil {
				return failure.BadRequestFromString(fmt.Sprintf("invalid start_time: %v", parseErr)) // nolint:wrapcheck
			}

			newStart = parsed
			updatedFields[model.FieldStartTime] = parsed
		}

		newEnd := current.EndTime
		if req.EndTime != constant.Empty {
			parsed, parseErr := time.Parse(constant.ClockFormat, req.EndTime)
			if parseErr != nil {
				return failure.BadRequestFromString(fmt.Sprintf("invalid end_time: %v", parseErr)) // nolint:wrapcheck
			}

			newEnd = parsed
			updatedFields[model.FieldEndTime] = parsed
		}

		if !interval.IsValid(newStart, newEnd) {
			return failure.BadRequestFromString("end_time must be after start_time") // nolint:wrapcheck
		}

		oldKey := slotKey(current.TenantScope, current.RoomName, current.BookingDate.Format(constant.BookingDateFormat))
		newKey := slotKey(current.TenantScope, newRoom, newDate)

		// Lock keys in a fixed order so two movers can never deadlock.
		if oldKey == newKey {
			unlock := s.locks.Lock(oldKey)
			defer unlock()
		} else if oldKey < newKey {
			unlockOld := s.locks.Lock(oldKey)
			defer unlockOld()
			unlockNew := s.locks.Lock(newKey)
			defer unlockNew()
		} else {
			unlockNew := s.locks.Lock(newKey)
			defer unlockNew()
			unlockOld := s.locks.Lock(oldKey)
			defer unlockOld()
		}

		if err = s.checkSlotFree(ctx, current.TenantScope, newRoom, newDate, newStart, newEnd, current.ID); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsUniqueViolation(err) || gRepo.IsExclusionViolation(err) {
			return failure.Conflict("room is already booked for the requested interval") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

// Cancel releases the booking's interval. Cancelling an already-cancelled
// booking is a no-op so retried requests stay safe.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.repo.GetCurrent(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if current.Status == model.StatusCancelled {
		return nil
	}

	if current.Status == model.StatusCompleted {
		return failure.InvalidTransition("cannot cancel a completed booking") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
