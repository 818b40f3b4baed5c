package drink

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"arcade/infras/otel"
	"arcade/internal/domains/drink/model"
	"arcade/internal/domains/drink/model/dto"
	"arcade/internal/domains/drink/service"
	"arcade/shared/constant"
	gDto "arcade/shared/dto"
	"arcade/shared/validator"
	"arcade/transport/http/response"
)

type Handler struct {
	service service.Drink
	otel    otel.Otel
}

func New(service service.Drink, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/drinks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDrink)
		routerGroup.Get("/", handler.GetDrinks)
		routerGroup.Get("/{id}", handler.GetDrinkByID)
		routerGroup.Patch("/{id}", handler.UpdateDrink)
		routerGroup.Delete("/{id}", handler.DeleteDrink)
	})
}

// CreateDrink adds a drink to the menu.
// @Summary Create a new drink
// @Description Add a drink to the menu with its unit price.
// @Tags Drink
// @Accept json
// @Produce json
// @Param request body dto.CreateDrinkRequest true "Create Drink Request"
// @Success 201 {object} response.Message "Drink created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/drinks [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateDrink(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDrink")
	defer scope.End()

	req := dto.CreateDrinkRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create drink")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Drink created successfully")
}

// GetDrinks retrieves the menu.
// @Summary Get all drinks
// @Description Retrieve the drink menu with optional name filtering and pagination.
// @Tags Drink
// @Produce json
// @Param name query string false "Filter by name"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetDrinksResponse "List of drinks"
// @Failure 500 {object} response.Error
// @Router /v1/drinks [get]
func (handler *Handler) GetDrinks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDrinks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	drinks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get drinks")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, drinks)
}

// GetDrinkByID retrieves one drink.
// @Summary Get a drink by ID
// @Description Retrieve one drink by its unique identifier.
// @Tags Drink
// @Produce json
// @Param id path string true "Drink ID"
// @Success 200 {object} dto.DrinkResponse "Drink details"
// @Failure 404 {object} response.Error
// @Router /v1/drinks/{id} [get]
func (handler *Handler) GetDrinkByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDrinkByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	drink, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get drink")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, drink)
}

// UpdateDrink updates a drink's name or price.
// @Summary Update a drink by ID
// @Description Update a drink's name or price. Open sessions are billed from the menu at checkout time.
// @Tags Drink
// @Accept json
// @Produce json
// @Param id path string true "Drink ID"
// @Param request body dto.UpdateDrinkRequest true "Update Drink Request"
// @Success 200 {object} response.Message "Drink updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/drinks/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateDrink(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDrink")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDrinkRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update drink")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Drink updated successfully")
}

// DeleteDrink removes a drink from the menu.
// @Summary Delete a drink by ID
// @Description Remove a drink from the menu. Past checkout records keep their totals.
// @Tags Drink
// @Produce json
// @Param id path string true "Drink ID"
// @Success 200 {object} response.Message "Drink deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/drinks/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteDrink(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDrink")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete drink")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Drink deleted successfully")
}
