package apperrors

var (
	// Domain errors — used in services/repositories
	ErrCredentialsRequired = InvalidArg("username & password required")
	ErrInvalidCredentials  = Unauthorized("invalid credentials")
	ErrUsernameTaken       = AlreadyExists("username exists")
	ErrUserNotFound        = NotFound("user not found")
	ErrPostNotFound        = NotFound("post not found")
	ErrInvalidPost         = InvalidArg("title and mediaType are required")
	ErrTitleTooLong        = InvalidArg("title too long")
	ErrNoUpdatableFields   = InvalidArg("no valid fields to update")
	ErrTextRequired        = InvalidArg("text required")
	ErrItemRequired        = InvalidArg("itemId required")
	ErrSelfFollow          = InvalidArg("cannot follow self")
	ErrTokenMissing        = Unauthorized("missing token")
	ErrTokenInvalid        = Unauthorized("invalid token")
)
