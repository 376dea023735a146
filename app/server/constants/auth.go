package constants

import "time"

// AuthTokenDuration is the lifetime of a signed session token. There is no
// refresh mechanism: once expired, the client has to log in again.
const AuthTokenDuration = 24 * time.Hour

// User roles. Non-admins can read content but never mutate it.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)
