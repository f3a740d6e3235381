package middleware

import (
	"context"
	"fmt"
	"net/http"
	"patientflow/config"
	"patientflow/infras/otel"
	"patientflow/shared/cache"
	"patientflow/shared/constant"
	"patientflow/shared/failure"
	"patientflow/transport/http/response"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": a.getUA(r),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// APIKey gates mutating desk operations behind the shared station key. When
// the key matches, the station id from the companion header is carried in
// context as the acting user for audit columns.
func (a *appMiddleware) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if station := r.Header.Get(constant.RequestHeaderStationID); station != "" {
			ctx = context.WithValue(ctx, constant.ContextKeyUserID, station)
		}

		if a.config.App.APIKey != "" {
			apiKey := r.Header.Get(constant.RequestHeaderAPIKey)
			if apiKey != a.config.App.APIKey {
				response.WithError(w, failure.Unauthorized("missing or invalid API key"))

				return
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
