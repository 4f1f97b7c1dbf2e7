package middleware

// Activity sources attached to tracked requests
const (
	// ActivitySourceAPI marks activity observed on an authenticated API call
	ActivitySourceAPI = "api"
)

// HTTP request parameter names
const (
	// URLParamUserID is the chi route parameter carrying the user id
	URLParamUserID = "userID"

	// QueryParamUserID is the query parameter fallback for the user id
	QueryParamUserID = "user_id"
)

// EmptyUserID represents an empty or missing user ID
const EmptyUserID = ""

// Log messages
const (
	// LogMsgActivityEventPublishFailed indicates activity event publishing failed
	LogMsgActivityEventPublishFailed = "Failed to publish user activity event"
)
