package auth

// User represents a row in the users table. Passwords are stored and compared
// verbatim; the existing user base has no hashed credentials and migrating them
// is out of scope for this service.
type User struct {
	Username string
	Password string
	ID       string
}

// Token is a persisted login token. ExpiresAt is epoch seconds; expired tokens
// stay in the store and are rejected by comparison at verification time.
type Token struct {
	Value     string `json:"token"`
	Username  string `json:"username"`
	UserID    string `json:"userId"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Identity is stored in the request context after authentication.
type Identity struct {
	UserID   string
	Username string
}

// Session is the result of a successful login.
type Session struct {
	Token             string
	ExpiresAt         int64
	ExpirationMinutes int
}
