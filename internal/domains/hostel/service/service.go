package service

import (
	"context"
	"errors"
	"fmt"

	"dwell/config"
	"dwell/infras/otel"
	"dwell/internal/domains/hostel/model"
	"dwell/internal/domains/hostel/model/dto"
	"dwell/internal/domains/hostel/repository"
	userModel "dwell/internal/domains/user/model"
	userRepository "dwell/internal/domains/user/repository"
	"dwell/permissions"
	"dwell/shared"
	"dwell/shared/cache"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	"dwell/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetHostel    = "hostel:get"
	cacheGetAllHostel = "hostel:gets"
	cacheCountHostel  = "hostel:count"

	custodianRoleMessage = "The assigned user must have the role of 'custodian'."
)

type Hostel interface {
	Create(ctx context.Context, actor permissions.Identity, req dto.CreateHostelRequest) error
	GetAll(ctx context.Context, actor permissions.Identity, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHostelsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, actor permissions.Identity, id string) (any, error)
	Update(ctx context.Context, actor permissions.Identity, req dto.UpdateHostelRequest, id string) error
	Delete(ctx context.Context, actor permissions.Identity, id string) error
}

type serviceImpl struct {
	repo     repository.Hostel
	userRepo userRepository.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Hostel, userRepo userRepository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Hostel {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// ensureCustodian rejects a custodian assignment unless the referenced user
// exists and carries the custodian role.
func (s *serviceImpl) ensureCustodian(ctx context.Context, custodianID string) error {
	custodian, err := s.userRepo.Get(ctx, shared.FilterByID(custodianID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get custodian")

		return fmt.Errorf("failed to get custodian: %w", err)
	}

	if custodian.ID == constant.Empty || custodian.Role != constant.RoleCustodian {
		return failure.BadRequestFromString(custodianRoleMessage)
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, actor permissions.Identity, req dto.CreateHostelRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !permissions.IsAdmin(actor) {
		return failure.ForbiddenError
	}

	if err = s.ensureCustodian(ctx, req.CustodianID); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(actor.Email)); err != nil {
		if errors.Is(err, repository.ErrCustodianRoleMismatch) {
			return failure.BadRequestFromString(custodianRoleMessage)
		}

		log.Error().Err(err).Msg("failed to create hostel")

		return fmt.Errorf("failed to create hostel: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllHostel)
		shared.InvalidateCaches(c, s.cache, cacheCountHostel)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, actor permissions.Identity, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHostelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(dto.ViewFor(actor), shared.BuildCacheKeyWithQuery(cacheGetAllHostel, req, filter))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hostels")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hostels")

		return res, fmt.Errorf("failed to count hostels: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hostels")

		return res, fmt.Errorf("failed to get hostels: %w", err)
	}

	res.FromModels(models, total, req.Limit, dto.ProjectionFor(actor))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hostels to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountHostel, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hostel count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hostels")

		return res, fmt.Errorf("failed to count hostels: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hostel count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, actor permissions.Identity, id string) (res any, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetHostel, dto.ViewFor(actor), id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hostel")

		return res, nil
	}

	hostel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hostel")

		return res, fmt.Errorf("failed to get hostel: %w", err)
	}

	if hostel.ID == constant.Empty {
		return res, failure.NotFound("hostel not found") // nolint:wrapcheck
	}

	res = dto.ProjectionFor(actor)(hostel)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hostel to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor permissions.Identity, req dto.UpdateHostelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !permissions.IsAdmin(actor) {
		return failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hostel exists")

		return fmt.Errorf("failed to check if hostel exists: %w", err)
	}

	if !exist {
		log.Error().Msg("hostel not found")

		return failure.NotFound("hostel not found")
	}

	if req.CustodianID != nil {
		if err = s.ensureCustodian(ctx, *req.CustodianID); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, actor.Email)

	if req.CustodianID != nil {
		err = s.repo.UpdateWithCustodian(ctx, updatedFields, filter, *req.CustodianID)
	} else {
		err = s.repo.Update(ctx, updatedFields, filter)
	}

	if err != nil {
		if errors.Is(err, repository.ErrCustodianRoleMismatch) {
			return failure.BadRequestFromString(custodianRoleMessage)
		}

		log.Error().Err(err).Msg("failed to update hostel")

		return fmt.Errorf("failed to update hostel: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetHostel)
		shared.InvalidateCaches(c, s.cache, cacheGetAllHostel)
		shared.InvalidateCaches(c, s.cache, cacheCountHostel)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, actor permissions.Identity, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !permissions.IsAdmin(actor) {
		return failure.ForbiddenError
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hostel exists")

		return fmt.Errorf("failed to check if hostel exists: %w", err)
	}

	if !exist {
		log.Error().Msg("hostel not found")

		return failure.NotFound("hostel not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete hostel")

		return fmt.Errorf("failed to delete hostel: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetHostel)
		shared.InvalidateCaches(c, s.cache, cacheGetAllHostel)
		shared.InvalidateCaches(c, s.cache, cacheCountHostel)
	}()

	return nil
}
