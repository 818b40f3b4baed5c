package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"arcade/config"
	"arcade/infras/customerapi"
	"arcade/infras/kafka"
	"arcade/infras/otel"
	"arcade/internal/domains/billing"
	customerModel "arcade/internal/domains/customer/model"
	customerRepo "arcade/internal/domains/customer/repository"
	customerService "arcade/internal/domains/customer/service"
	drinkModel "arcade/internal/domains/drink/model"
	drinkRepo "arcade/internal/domains/drink/repository"
	drinkService "arcade/internal/domains/drink/service"
	historyService "arcade/internal/domains/history/service"
	"arcade/internal/domains/station/model/dto"
	"arcade/internal/domains/station/repository"
	"arcade/internal/domains/station/state"
	"arcade/shared"
	"arcade/shared/cache"
	"arcade/shared/constant"
	gDto "arcade/shared/dto"
	"arcade/shared/failure"
	gModel "arcade/shared/model"
	"arcade/shared/timezone"
)

// CacheRates survives restarts so edited rates are not lost when the floor is
// reprovisioned from config.
const CacheRates = "station:rates"

// turnoverRetries bounds how often billing retries when another terminal
// settles and rebooks the room mid-operation.
const turnoverRetries = 3

type sessionStartedEvent struct {
	RoomID    int    `json:"room_id"`
	Phone     string `json:"phone"`
	Category  string `json:"category"`
	StartTime string `json:"start_time"`
}

type Station interface {
	Rooms(ctx context.Context) dto.GetRoomsResponse
	Room(ctx context.Context, roomID int) (dto.RoomResponse, error)
	Book(ctx context.Context, roomID int, req dto.BookRequest) (dto.SessionResponse, error)
	Order(ctx context.Context, roomID int, req dto.OrderRequest) (dto.SessionResponse, error)
	Bill(ctx context.Context, roomID int) (dto.BillResponse, error)
	Checkout(ctx context.Context, roomID int) (dto.ReceiptResponse, error)
	Rates(ctx context.Context) dto.RatesResponse
	UpdateRates(ctx context.Context, req dto.UpdateRatesRequest) error
}

type serviceImpl struct {
	floor     *state.Floor
	repo      repository.Station
	customers customerRepo.Customer
	drinks    drinkRepo.Drink
	registry  customerapi.Client
	cfg       *config.Config
	cache     cache.RedisCache
	producer  kafka.Client
	otel      otel.Otel
}

func New(
	floor *state.Floor,
	repo repository.Station,
	customers customerRepo.Customer,
	drinks drinkRepo.Drink,
	registry customerapi.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	producer kafka.Client,
	otel otel.Otel,
) Station {
	return &serviceImpl{
		floor:     floor,
		repo:      repo,
		customers: customers,
		drinks:    drinks,
		registry:  registry,
		cfg:       cfg,
		cache:     cache,
		producer:  producer,
		otel:      otel,
	}
}

func (s *serviceImpl) Rooms(ctx context.Context) dto.GetRoomsResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rooms")
	defer scope.End()

	res := dto.GetRoomsResponse{}
	res.FromModels(s.floor.Rooms())

	return res
}

func (s *serviceImpl) Room(ctx context.Context, roomID int) (res dto.RoomResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.floor.Room(roomID)
	if err != nil {
		return res, mapFloorError(err)
	}

	res.FromModel(room)

	return res, nil
}

// Book resolves the phone against the ledger (falling back to the remote
// registry, then to a fresh walk-in entry), then opens the session. The room
// stays free when resolution fails.
func (s *serviceImpl) Book(ctx context.Context, roomID int, req dto.BookRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.floor.Room(roomID)
	if err != nil {
		return res, mapFloorError(err)
	}

	// A rejected booking must not leave a new ledger entry behind.
	if room.Occupied {
		return res, mapFloorError(state.ErrRoomUnavailable)
	}

	customer, err := s.ensureCustomer(ctx, req.Phone)
	if err != nil {
		log.Error().Err(err).Str("phone", req.Phone).Msg("failed to resolve customer")

		return res, failure.BadRequest(fmt.Errorf("customer unresolved: %w", err)) // nolint:wrapcheck
	}

	session, err := s.floor.Book(roomID, customer.ID, customer.Phone)
	if err != nil {
		return res, mapFloorError(err)
	}

	res.FromModel(session)

	go func() {
		c := context.WithoutCancel(ctx)

		event := sessionStartedEvent{
			RoomID:    roomID,
			Phone:     session.Phone,
			Category:  string(session.Category),
			StartTime: timezone.Format(session.StartTime, constant.DateFormat),
		}

		message := kafka.Message{Key: fmt.Sprintf("room-%d", roomID), Value: event}
		if err := s.producer.SendMessages(c, s.cfg.Kafka.Topic.SessionStarted, message); err != nil {
			log.Error().Err(err).Msg("failed to publish session started event")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Order(ctx context.Context, roomID int, req dto.OrderRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Order")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.drinks.Exist(ctx, shared.FilterByID(req.DrinkID, drinkModel.FieldID, drinkModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check drink existence")

		return res, fmt.Errorf("failed to check drink existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("drink not found") // nolint:wrapcheck
	}

	session, err := s.floor.AddOrder(roomID, req.DrinkID, req.Quantity)
	if err != nil {
		return res, mapFloorError(err)
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Bill(ctx context.Context, roomID int) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bill")
	defer scope.End()
	defer scope.TraceIfError(err)

	menu, err := s.menu(ctx)
	if err != nil {
		return res, err
	}

	for attempt := 0; attempt < turnoverRetries; attempt++ {
		room, err := s.floor.Room(roomID)
		if err != nil {
			return res, mapFloorError(err)
		}

		if room.Session == nil {
			return res, mapFloorError(state.ErrRoomNotOccupied)
		}

		phone := room.Session.Phone

		charges, err := s.floor.Quote(roomID, menu, s.discountFor(ctx, phone))
		if err != nil {
			return res, mapFloorError(err)
		}

		// The discount lookup runs outside the floor lock. If the room turned
		// over in between, the quote carries the wrong customer's discount.
		current, err := s.floor.Room(roomID)
		if err != nil {
			return res, mapFloorError(err)
		}

		if current.Session != nil && current.Session.Phone == phone {
			res.FromModel(roomID, charges, timezone.Format(timezone.Now(), constant.DateFormat))

			return res, nil
		}
	}

	return res, failure.Conflict("room is being settled by another terminal") // nolint:wrapcheck
}

// Checkout closes the session, then archives the record and credits the hours
// in one transaction. If archiving fails the session is put back on the room,
// so nothing is billed twice and nothing is lost.
func (s *serviceImpl) Checkout(ctx context.Context, roomID int) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	menu, err := s.menu(ctx)
	if err != nil {
		return res, err
	}

	checkout, err := s.closeSession(ctx, roomID, menu)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyOperator).(string)
	checkout.Record.Metadata = gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  user,
		ModifiedBy: user,
	}

	if err = s.repo.Archive(ctx, checkout.Record, checkout.HoursPlayed); err != nil {
		log.Error().Err(err).Int("roomID", roomID).Msg("failed to archive checkout, restoring session")

		if restoreErr := s.floor.Restore(roomID, checkout.Session); restoreErr != nil {
			log.Error().Err(restoreErr).Int("roomID", roomID).Msg("failed to restore session after archive failure")
		}

		return res, fmt.Errorf("failed to archive checkout: %w", err)
	}

	res.FromModel(checkout.Record, checkout.HoursPlayed)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, historyService.CachePrefix)
		shared.InvalidateCaches(c, s.cache, customerService.CachePrefix)

		message := kafka.Message{Key: checkout.Record.ID, Value: checkout.Record}
		if err := s.producer.SendMessages(c, s.cfg.Kafka.Topic.Checkout, message); err != nil {
			log.Error().Err(err).Msg("failed to publish checkout event")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Rates(ctx context.Context) dto.RatesResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rates")
	defer scope.End()

	res := dto.RatesResponse{}
	res.FromModel(s.floor.Rates())

	return res
}

func (s *serviceImpl) UpdateRates(ctx context.Context, req dto.UpdateRatesRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRates")
	defer scope.End()
	defer scope.TraceIfError(err)

	rates := req.ToModel()

	if err = s.floor.SetRates(rates); err != nil {
		return mapFloorError(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, CacheRates, rates, 0); err != nil {
			log.Error().Err(err).Msg("failed to persist rate table")
		}
	}()

	return nil
}

// closeSession closes the room's open session. The discount is looked up by
// phone outside the floor lock, so the phone on the closed session must match
// the one the discount was fetched for; when the room turned over in between,
// the foreign session is put back untouched and the new occupant settled
// instead.
func (s *serviceImpl) closeSession(ctx context.Context, roomID int, menu billing.Menu) (state.Checkout, error) {
	for attempt := 0; attempt < turnoverRetries; attempt++ {
		room, err := s.floor.Room(roomID)
		if err != nil {
			return state.Checkout{}, mapFloorError(err)
		}

		if room.Session == nil {
			return state.Checkout{}, mapFloorError(state.ErrRoomNotOccupied)
		}

		phone := room.Session.Phone

		checkout, err := s.floor.Checkout(roomID, menu, s.discountFor(ctx, phone))
		if err != nil {
			return state.Checkout{}, mapFloorError(err)
		}

		if checkout.Session.Phone == phone {
			return checkout, nil
		}

		log.Warn().Int("roomID", roomID).Msg("room turned over during checkout, retrying with the new occupant")

		if restoreErr := s.floor.Restore(roomID, checkout.Session); restoreErr != nil {
			return state.Checkout{}, fmt.Errorf("failed to restore session after stale checkout: %w", restoreErr)
		}
	}

	return state.Checkout{}, failure.Conflict("room is being settled by another terminal") // nolint:wrapcheck
}

// ensureCustomer resolves a phone to a ledger entry, creating one lazily from
// the remote registry or, for an unknown walk-in, from scratch.
func (s *serviceImpl) ensureCustomer(ctx context.Context, phone string) (customerModel.Customer, error) {
	customer, err := s.customers.Get(ctx, customerRepo.FilterByPhone(phone))
	if err != nil {
		return customer, fmt.Errorf("failed to get customer by phone: %w", err)
	}

	if customer.ID != constant.Empty {
		return customer, nil
	}

	customer = customerModel.Customer{
		ID:        uuid.NewString(),
		Phone:     phone,
		LastVisit: timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	record, err := s.registry.Lookup(ctx, phone)

	switch {
	case err == nil:
		customer.Name = record.Name
		customer.Hours = record.Hours
		customer.Discount = record.Discount
	case errors.Is(err, customerapi.ErrNotFound):
		log.Info().Str("phone", phone).Msg("phone unknown to registry, creating walk-in entry")
	default:
		return customer, fmt.Errorf("failed to look up customer: %w", err)
	}

	if err := s.customers.Insert(ctx, customer); err != nil {
		return customer, fmt.Errorf("failed to create customer: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, customerService.CachePrefix)
	}()

	return customer, nil
}

// menu builds the drink id to price map used by billing, cached until the next
// drink mutation.
func (s *serviceImpl) menu(ctx context.Context) (menu billing.Menu, err error) {
	err = s.cache.Get(ctx, drinkService.CacheMenu, &menu)
	if err == nil {
		return menu, nil
	}

	models, err := s.drinks.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to load drink menu")

		return nil, fmt.Errorf("failed to load drink menu: %w", err)
	}

	menu = make(billing.Menu, len(models))
	for _, drink := range models {
		menu[drink.ID] = drink.Price
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, drinkService.CacheMenu, menu, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save drink menu to cache")
		}
	}()

	return menu, nil
}

// discountFor is best-effort: billing proceeds without a discount when the
// ledger read fails or the entry is gone.
func (s *serviceImpl) discountFor(ctx context.Context, phone string) int {
	customer, err := s.customers.Get(ctx, customerRepo.FilterByPhone(phone))
	if err != nil {
		log.Error().Err(err).Str("phone", phone).Msg("failed to get customer discount, billing without it")

		return 0
	}

	return customer.Discount
}

func mapFloorError(err error) error {
	switch {
	case errors.Is(err, state.ErrRoomNotFound):
		return failure.NotFound("room not found") // nolint:wrapcheck
	case errors.Is(err, state.ErrRoomUnavailable):
		return failure.Conflict("room is already occupied") // nolint:wrapcheck
	case errors.Is(err, state.ErrRoomNotOccupied):
		return failure.BadRequest(state.ErrRoomNotOccupied) // nolint:wrapcheck
	case errors.Is(err, state.ErrInvalidQuantity):
		return failure.BadRequest(state.ErrInvalidQuantity) // nolint:wrapcheck
	case errors.Is(err, state.ErrInvalidRate):
		return failure.BadRequest(state.ErrInvalidRate) // nolint:wrapcheck
	default:
		return err
	}
}
