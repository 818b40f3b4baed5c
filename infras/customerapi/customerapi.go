package customerapi

//go:generate go run go.uber.org/mock/mockgen -source=./customerapi.go -destination=./mocks/customerapi_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"arcade/config"
	"arcade/infras/otel"
	"arcade/shared/constant"
	"arcade/shared/validator"
)

// ErrNotFound reports that the remote registry has no record for the phone.
var ErrNotFound = errors.New("customer not found")

// Record is the shape the remote customer registry returns. It is validated at
// this boundary; malformed records are rejected rather than propagated inward.
type Record struct {
	ID       string `json:"id"          validate:"omitempty,max=64"`
	Name     string `json:"name"        validate:"omitempty,max=100"`
	Phone    string `json:"phoneNumber" validate:"required,max=20"`
	Hours    int    `json:"hours"       validate:"min=0"`
	Discount int    `json:"discount"    validate:"min=0,max=100"`
}

type Client interface {
	Lookup(ctx context.Context, phone string) (Record, error)
}

type clientImpl struct {
	cfg    *config.Config
	otel   otel.Otel
	client *http.Client
}

func New(cfg *config.Config, otl otel.Otel) Client {
	timeout := time.Duration(cfg.External.CustomerAPI.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &clientImpl{
		cfg:    cfg,
		otel:   otl,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *clientImpl) Lookup(ctx context.Context, phone string) (res Record, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".customerapi.Lookup")
	defer scope.End()
	defer scope.TraceIfError(err)

	url := fmt.Sprintf("%s/api/Customers/GetCustomer/%s", c.cfg.External.CustomerAPI.BaseURL, phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return res, fmt.Errorf("failed to build customer lookup request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("customer lookup request failed")

		return res, fmt.Errorf("failed to look up customer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return res, ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("customer lookup returned unexpected status")

		return res, fmt.Errorf("customer lookup returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("failed to decode customer record: %w", err)
	}

	if err = validator.ValidateStruct(&res); err != nil {
		log.Error().Err(err).Msg("remote customer record failed validation")

		return res, fmt.Errorf("malformed customer record: %w", err)
	}

	return res, nil
}
