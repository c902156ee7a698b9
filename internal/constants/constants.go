package constants

// Session and context keys
const (
	SessionCookieName = "taskboard_session"

	SessionKeyUserID = "user_id"
	SessionKeyName   = "user_name"
	SessionKeyEmail  = "user_email"
	SessionKeyRole   = "user_role"

	ContextKeyPrincipal = "principal"
)

// Validation limits
const (
	MinPasswordLength    = 6
	MinTitleLength       = 2
	MinProjectNameLength = 2
	MinUserNameLength    = 2
)
