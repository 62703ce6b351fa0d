package dto

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login. The session token is also
// set as an HttpOnly cookie; the body copy exists for non-browser clients.
type LoginResponse struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// CheckAuthResponse reports the current session identity
type CheckAuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}
