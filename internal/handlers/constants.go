package handlers

const (
	ErrInvalidRequestBody  = "Invalid request body"
	ErrInvalidQuery        = "Invalid query parameter"
	ErrChildNotFound       = "Child not found"
	ErrDuplicateEntry      = "An entry with this id already exists"
	ErrEmailUnavailable    = "Email digests are not configured"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
)
