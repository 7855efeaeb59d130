package constants

const (
	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyClaims    = "claims"
	ContextKeyRequestID = "request_id"
	ContextKeyBody      = "validated_body"
	ContextKeyIDPrefix  = "param_"

	// Session
	SessionCookieName = "task_session"
	SessionKeyToken   = "token"

	// Headers
	HeaderRequestID  = "X-Request-ID"
	HeaderTotalCount = "X-Total-Count"

	// Validation
	MaxTitleLength = 200

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// AI
	MaxAIGeneratedTasks = 20
)
