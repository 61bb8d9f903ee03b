package hostel

import (
	"net/http"

	"dwell/infras/otel"
	"dwell/internal/domains/hostel/model"
	"dwell/internal/domains/hostel/model/dto"
	"dwell/internal/domains/hostel/service"
	"dwell/permissions"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	"dwell/shared/validator"
	"dwell/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Hostel
	otel    otel.Otel
}

func New(service service.Hostel, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hostels", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateHostel)
		routerGroup.Get("/", handler.GetHostels)
		routerGroup.Get("/{id}", handler.GetHostelByID)
		routerGroup.Patch("/{id}", handler.UpdateHostel)
		routerGroup.Delete("/{id}", handler.DeleteHostel)
	})
}

// CreateHostel creates a hostel with an assigned custodian.
// @Summary Create a new hostel
// @Description Create a hostel. The assigned custodian must be a user with the custodian role.
// @Tags Hostel
// @Accept json
// @Produce json
// @Param request body dto.CreateHostelRequest true "Create Hostel Request"
// @Success 201 {object} response.Message "Hostel created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hostels [post]
// @Security BearerAuth
func (handler *Handler) CreateHostel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHostel")
	defer scope.End()

	req := dto.CreateHostelRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, permissions.FromContext(ctx), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hostel")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Hostel created successfully")

	response.WithMessage(writer, http.StatusCreated, "Hostel created successfully")
}

// GetHostels lists hostels in the caller's projection.
// @Summary Get all hostels
// @Description Retrieve hostels with optional filtering and pagination. Admins and custodians see the full record; everyone else gets the public view.
// @Tags Hostel
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (partial match)"
// @Param location query string false "Filter by location (partial match)"
// @Success 200 {object} response.Data[dto.GetHostelsResponse] "List of hostels"
// @Failure 500 {object} response.Error
// @Router /v1/hostels [get]
func (handler *Handler) GetHostels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHostels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	location := r.URL.Query().Get(model.FieldLocation)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if location != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorLike,
			Value:    location,
			Table:    model.TableName,
		})
	}

	hostels, err := handler.service.GetAll(ctx, permissions.FromContext(ctx), queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hostels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hostels retrieved successfully")

	response.WithJSON(w, http.StatusOK, hostels)
}

// GetHostelByID retrieves a hostel by its ID.
// @Summary Get a hostel by ID
// @Description Retrieve a hostel by its unique identifier in the caller's projection.
// @Tags Hostel
// @Accept json
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} response.Data[dto.HostelResponse] "Hostel details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hostels/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetHostelByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHostelByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hostel, err := handler.service.Get(ctx, permissions.FromContext(ctx), id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hostel by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hostel retrieved successfully")

	response.WithJSON(w, http.StatusOK, hostel)
}

// UpdateHostel updates a hostel.
// @Summary Update a hostel
// @Description Update hostel fields. Reassigning the custodian revalidates the custodian role.
// @Tags Hostel
// @Accept json
// @Produce json
// @Param id path string true "Hostel ID"
// @Param request body dto.UpdateHostelRequest true "Update Hostel Request"
// @Success 200 {object} response.Message "Hostel updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hostels/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHostel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHostel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateHostelRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, permissions.FromContext(ctx), req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update hostel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hostel updated successfully")

	response.WithMessage(w, http.StatusOK, "Hostel updated successfully")
}

// DeleteHostel deletes a hostel.
// @Summary Delete a hostel
// @Description Delete a hostel by its unique identifier.
// @Tags Hostel
// @Accept json
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} response.Message "Hostel deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hostels/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHostel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHostel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, permissions.FromContext(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hostel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hostel deleted successfully")

	response.WithMessage(w, http.StatusOK, "Hostel deleted successfully")
}
