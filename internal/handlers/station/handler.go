package station

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"arcade/infras/otel"
	"arcade/internal/domains/station/model/dto"
	"arcade/internal/domains/station/service"
	"arcade/shared/constant"
	"arcade/shared/failure"
	"arcade/shared/validator"
	"arcade/transport/http/response"
)

type Handler struct {
	service service.Station
	otel    otel.Otel
}

func New(service service.Station, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStations)
		routerGroup.Get("/{id}", handler.GetStationByID)
		routerGroup.Post("/{id}/book", handler.BookStation)
		routerGroup.Post("/{id}/orders", handler.OrderDrink)
		routerGroup.Get("/{id}/bill", handler.GetBill)
		routerGroup.Post("/{id}/checkout", handler.CheckoutStation)
	})

	router.Route("/rates", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRates)
		routerGroup.Put("/", handler.UpdateRates)
	})
}

func stationID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("station id must be numeric") // nolint:wrapcheck
	}

	return id, nil
}

// GetStations lists every station with its live occupancy.
// @Summary Get all stations
// @Description Retrieve every station with its occupancy and open session, ordered by id.
// @Tags Station
// @Produce json
// @Success 200 {object} dto.GetRoomsResponse "List of stations"
// @Failure 500 {object} response.Error
// @Router /v1/stations [get]
func (handler *Handler) GetStations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStations")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Rooms(ctx))
}

// GetStationByID retrieves one station.
// @Summary Get a station by ID
// @Description Retrieve one station with its occupancy and open session.
// @Tags Station
// @Produce json
// @Param id path int true "Station ID"
// @Success 200 {object} dto.RoomResponse "Station details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/stations/{id} [get]
func (handler *Handler) GetStationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStationByID")
	defer scope.End()

	id, err := stationID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	station, err := handler.service.Room(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get station")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, station)
}

// BookStation opens a session on an available station.
// @Summary Book a station
// @Description Open a session for the customer phone on an available station. Fails when the station is occupied.
// @Tags Station
// @Accept json
// @Produce json
// @Param id path int true "Station ID"
// @Param request body dto.BookRequest true "Book Request"
// @Success 201 {object} dto.SessionResponse "Opened session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stations/{id}/book [post]
// @Security ApiKeyAuth
func (handler *Handler) BookStation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookStation")
	defer scope.End()

	id, err := stationID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.BookRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Book(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book station")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session opened on station " + strconv.Itoa(id))

	response.WithJSON(w, http.StatusCreated, session)
}

// OrderDrink appends a drink order to the station's open session.
// @Summary Order a drink for a station
// @Description Append a drink order to the open session. Orders are never merged.
// @Tags Station
// @Accept json
// @Produce json
// @Param id path int true "Station ID"
// @Param request body dto.OrderRequest true "Order Request"
// @Success 200 {object} dto.SessionResponse "Session with the new order"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stations/{id}/orders [post]
// @Security ApiKeyAuth
func (handler *Handler) OrderDrink(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OrderDrink")
	defer scope.End()

	id, err := stationID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.OrderRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Order(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to order drink")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

// GetBill quotes the station's open session without closing it.
// @Summary Get a live bill for a station
// @Description Quote the open session as of now. The session stays open and nothing is persisted.
// @Tags Station
// @Produce json
// @Param id path int true "Station ID"
// @Success 200 {object} dto.BillResponse "Live bill"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stations/{id}/bill [get]
func (handler *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBill")
	defer scope.End()

	id, err := stationID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	bill, err := handler.service.Bill(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote bill")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// CheckoutStation closes the station's session and returns the receipt.
// @Summary Check out a station
// @Description Close the open session, archive the checkout record, credit the customer's hours and free the station.
// @Tags Station
// @Produce json
// @Param id path int true "Station ID"
// @Success 200 {object} dto.ReceiptResponse "Final receipt"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stations/{id}/checkout [post]
// @Security ApiKeyAuth
func (handler *Handler) CheckoutStation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckoutStation")
	defer scope.End()

	id, err := stationID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	receipt, err := handler.service.Checkout(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out station")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Station " + strconv.Itoa(id) + " checked out")

	response.WithJSON(w, http.StatusOK, receipt)
}

// GetRates retrieves the hourly rate table.
// @Summary Get hourly rates
// @Description Retrieve the current hourly rate per station category.
// @Tags Station
// @Produce json
// @Success 200 {object} dto.RatesResponse "Rate table"
// @Router /v1/rates [get]
func (handler *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRates")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Rates(ctx))
}

// UpdateRates replaces the hourly rate table.
// @Summary Update hourly rates
// @Description Replace the hourly rate per station category. Open sessions keep their booked rate.
// @Tags Station
// @Accept json
// @Produce json
// @Param request body dto.UpdateRatesRequest true "Update Rates Request"
// @Success 200 {object} response.Message "Rates updated successfully"
// @Failure 400 {object} response.Error
// @Router /v1/rates [put]
// @Security ApiKeyAuth
func (handler *Handler) UpdateRates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRates")
	defer scope.End()

	req := dto.UpdateRatesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateRates(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update rates")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Rates updated successfully")
}
