package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID  contextKey = "user_id"
	ContextKeyTokenID contextKey = "token_id"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID          = "id"
	RequestParamTenantScope = "tenant_scope"
	RequestParamDepartment  = "department"
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

// Default urgency band for walk-in patients; lower numbers are served first.
const (
	DefaultValuePriority = 3
	MinValuePriority     = 1
	MaxValuePriority     = 9
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeFkViolation        = "23503"
	PqErrorCodeExclusionViolation = "23P01"
)

const (
	DateFormat        = time.RFC3339
	BookingDateFormat = "2006-01-02"
	ClockFormat       = "15:04"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderStationID          = "X-Station-ID"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
