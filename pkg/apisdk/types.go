package apisdk

import "time"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// MessageResponse carries a human-readable confirmation for operations that
// return no resource, like requesting a password recovery email.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the login response.
type TokenResponse struct {
	// AccessToken is the JWT bearer token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`
}

// User is the public representation of a user account. The password hash
// never leaves the server.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Active    bool      `json:"active"`
	Superuser bool      `json:"superuser"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UsersPage is one page of users plus the total count across all pages.
type UsersPage struct {
	Users []User `json:"users"`
	Count int    `json:"count"`
}

// SignupRequest registers a new account through the public signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// CreateUserRequest creates an account on behalf of a superuser.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Superuser bool   `json:"superuser"`
}

// UpdateMeRequest is a partial self-service profile update. Omitted fields
// are left unchanged.
type UpdateMeRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// UpdatePasswordRequest changes the caller's own password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AdminUpdateUserRequest is a partial update of any account by a superuser.
// Omitted fields are left unchanged.
type AdminUpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	Password  *string `json:"password,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	Superuser *bool   `json:"superuser,omitempty"`
}

// PasswordRecoveryRequest asks for a recovery email.
type PasswordRecoveryRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest consumes a recovery token to set a new password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Item is the public representation of an item.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemsPage is one page of items plus the total count across all pages.
type ItemsPage struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// CreateItemRequest creates an item owned by the caller.
type CreateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateItemRequest is a partial item update. Omitted fields are left
// unchanged.
type UpdateItemRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// HealthResponse is returned from the /livez and /readyz endpoints. Checks is
// only populated by /readyz.
type HealthResponse struct {
	// Status indicates the overall health status (e.g. "ok")
	Status string `json:"status"`

	// Uptime is the service uptime as a duration string (e.g. "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks holds per-dependency results for /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each critical dependency.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
