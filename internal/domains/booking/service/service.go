package service

import (
	"context"
	"errors"
	"fmt"

	"dwell/config"
	"dwell/infras/otel"
	"dwell/internal/domains/booking/model"
	"dwell/internal/domains/booking/model/dto"
	"dwell/internal/domains/booking/repository"
	roomModel "dwell/internal/domains/room/model"
	roomRepository "dwell/internal/domains/room/repository"
	"dwell/permissions"
	"dwell/shared"
	"dwell/shared/cache"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	"dwell/shared/failure"
	"dwell/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	checkOutOrderMessage = "Check-out date must be after check-in date."
	roomBookedMessage    = "The room has already been booked"
	duplicateMessage     = "You have already booked this room"
)

type Booking interface {
	Create(ctx context.Context, actor permissions.Identity, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, actor permissions.Identity, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, actor permissions.Identity, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, actor permissions.Identity, id string) (any, error)
	Update(ctx context.Context, actor permissions.Identity, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, actor permissions.Identity, id string) error
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// scopeFilter narrows a listing to the caller's own bookings when the
// caller is a student. Other roles see every record.
func scopeFilter(actor permissions.Identity, filter gDto.FilterGroup) gDto.FilterGroup {
	if !permissions.IsStudent(actor) {
		return filter
	}

	own := gDto.Filter{
		Field:    model.FieldStudentID,
		Operator: gDto.FilterOperatorEq,
		Value:    actor.UserID,
		Table:    model.TableName,
	}

	if len(filter.Filters) == 0 {
		return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{own}}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{own, filter},
	}
}

func (s *serviceImpl) Create(ctx context.Context, actor permissions.Identity, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !permissions.IsStudent(actor) {
		return failure.ForbiddenError
	}

	checkIn, err := timezone.Parse(constant.DateOnlyFormat, req.CheckInDate)
	if err != nil {
		return failure.BadRequest(err)
	}

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, req.CheckOutDate)
	if err != nil {
		return failure.BadRequest(err)
	}

	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString(checkOutOrderMessage)
	}

	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return failure.NotFound("room not found")
	}

	if err = s.repo.InsertPending(ctx, req.ToModel(actor.UserID, actor.Email, checkIn, checkOut)); err != nil {
		if errors.Is(err, repository.ErrApprovedBookingExists) {
			return failure.Conflict(roomBookedMessage)
		}

		if shared.IsUniqueViolation(err) {
			return failure.Conflict(duplicateMessage)
		}

		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, actor permissions.Identity, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !actor.Authenticated {
		return res, failure.Unauthorized("authentication required")
	}

	scoped := scopeFilter(actor, filter)
	cacheKey := shared.BuildCacheKey(dto.ViewFor(actor), shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, scoped))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, actor, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit, dto.ProjectionFor(actor))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, actor permissions.Identity, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !actor.Authenticated {
		return res, failure.Unauthorized("authentication required")
	}

	scoped := scopeFilter(actor, filter)
	cacheKey := shared.BuildCacheKey(dto.ViewFor(actor), shared.BuildCacheKeyWithQuery(cacheCountBooking, req, scoped))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, scoped)
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

func (s *serviceImpl) Get(ctx context.Context, actor permissions.Identity, id string) (res any, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !actor.Authenticated {
		return res, failure.Unauthorized("authentication required")
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, dto.ViewFor(actor), actor.UserID, id)

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

	if permissions.IsStudent(actor) && booking.StudentID != actor.UserID {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res = dto.ProjectionFor(actor)(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor permissions.Identity, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !permissions.IsCustodianOrAdmin(actor) {
		return failure.ForbiddenError
	}

	if req.CheckInDate != nil && req.CheckOutDate != nil {
		checkIn, err := timezone.Parse(constant.DateOnlyFormat, *req.CheckInDate)
		if err != nil {
			return failure.BadRequest(err)
		}

		checkOut, err := timezone.Parse(constant.DateOnlyFormat, *req.CheckOutDate)
		if err != nil {
			return failure.BadRequest(err)
		}

		if !checkOut.After(checkIn) {
			return failure.BadRequestFromString(checkOutOrderMessage)
		}
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found")
	}

	updatedFields := shared.TransformFields(req, actor.Email)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict(roomBookedMessage)
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, actor permissions.Identity, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !permissions.IsCustodianOrAdmin(actor) {
		return failure.ForbiddenError
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}
