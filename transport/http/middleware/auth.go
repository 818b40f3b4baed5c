package middleware

import (
	"net/http"

	"arcade/config"
	"arcade/infras/otel"
	"arcade/shared/constant"
	"arcade/shared/failure"
	"arcade/transport/http/response"
)

// Auth guards mutating endpoints with the shared front-desk API key.
type Auth interface {
	APIKey(next http.Handler) http.Handler
}

type authImpl struct {
	otel otel.Otel
	cfg  *config.Config
}

func NewAuthMiddleware(otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		otel: otel,
		cfg:  cfg,
	}
}

// APIKey rejects requests whose X-API-Key header does not match the configured
// key. An empty configured key disables the check, which is only sensible in
// development.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		if m.cfg.App.APIKey == constant.Empty {
			next.ServeHTTP(writer, request)

			return
		}

		if request.Header.Get(constant.RequestHeaderAPIKey) != m.cfg.App.APIKey {
			err := failure.ForbiddenError
			scope.TraceError(err)

			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}
