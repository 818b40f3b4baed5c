package history

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"arcade/infras/otel"
	"arcade/internal/domains/history/model"
	"arcade/internal/domains/history/repository"
	"arcade/internal/domains/history/service"
	"arcade/shared/constant"
	gDto "arcade/shared/dto"
	"arcade/shared/failure"
	"arcade/shared/timezone"
	"arcade/transport/http/response"
)

const (
	requestParamFrom   = "from"
	requestParamUntil  = "until"
	requestParamSearch = "search"
)

type Handler struct {
	service service.History
	otel    otel.Otel
}

func New(service service.History, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/checkouts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCheckouts)
		routerGroup.Get("/stats", handler.GetCheckoutStats)
		routerGroup.Get("/{id}", handler.GetCheckoutByID)
	})
}

// filters builds the shared filter group for the list and stats endpoints.
func filters(r *http.Request) (gDto.FilterGroup, error) {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	query := r.URL.Query()

	if phone := query.Get(model.FieldPhone); phone != "" {
		filterGroup.Filters = append(filterGroup.Filters, repository.FilterByPhone(phone))
	}

	if search := query.Get(requestParamSearch); search != "" {
		filterGroup.Filters = append(filterGroup.Filters, repository.FilterBySearch(search))
	}

	if room := query.Get(model.FieldRoomID); room != "" {
		roomID, err := strconv.Atoi(room)
		if err != nil {
			return filterGroup, failure.BadRequestFromString("room_id must be numeric") // nolint:wrapcheck
		}

		filterGroup.Filters = append(filterGroup.Filters, repository.FilterByRoom(roomID))
	}

	if from := query.Get(requestParamFrom); from != "" {
		day, err := parseDay(from)
		if err != nil {
			return filterGroup, err
		}

		filterGroup.Filters = append(filterGroup.Filters, repository.FilterFrom(day))
	}

	if until := query.Get(requestParamUntil); until != "" {
		day, err := parseDay(until)
		if err != nil {
			return filterGroup, err
		}

		// Inclusive through the end of the named day.
		filterGroup.Filters = append(filterGroup.Filters, repository.FilterUntil(day.AddDate(0, 0, 1).Add(-time.Nanosecond)))
	}

	return filterGroup, nil
}

func parseDay(value string) (time.Time, error) {
	day, err := timezone.Parse(constant.CalendarFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("dates must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	return day, nil
}

// GetCheckouts retrieves the checkout log, newest first.
// @Summary Get checkout history
// @Description Retrieve the checkout log, newest first, with optional phone, room, substring search and date range filters.
// @Tags History
// @Produce json
// @Param phone query string false "Filter by customer phone"
// @Param room_id query int false "Filter by station"
// @Param search query string false "Substring match on phone or room name"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param until query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetCheckoutsResponse "Checkout records"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkouts [get]
func (handler *Handler) GetCheckouts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCheckouts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if queryParams.SortBy == "" {
		queryParams.SortBy = model.FieldEndTime
		queryParams.SortDir = gDto.SortDirDesc
	}

	filterGroup, err := filters(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	checkouts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get checkouts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, checkouts)
}

// GetCheckoutStats aggregates the checkout log.
// @Summary Get checkout statistics
// @Description Aggregate checkout count and revenue split over the same filters as the list endpoint.
// @Tags History
// @Produce json
// @Param phone query string false "Filter by customer phone"
// @Param room_id query int false "Filter by station"
// @Param search query string false "Substring match on phone or room name"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param until query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatsResponse "Aggregated statistics"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkouts/stats [get]
func (handler *Handler) GetCheckoutStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCheckoutStats")
	defer scope.End()

	filterGroup, err := filters(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	stats, err := handler.service.Stats(ctx, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get checkout stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetCheckoutByID retrieves one checkout record.
// @Summary Get a checkout record by ID
// @Description Retrieve one immutable checkout record.
// @Tags History
// @Produce json
// @Param id path string true "Checkout ID"
// @Success 200 {object} dto.CheckoutResponse "Checkout record"
// @Failure 404 {object} response.Error
// @Router /v1/checkouts/{id} [get]
func (handler *Handler) GetCheckoutByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCheckoutByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	checkout, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get checkout")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, checkout)
}
