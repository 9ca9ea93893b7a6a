package apisdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/portside-dev/portside/pkg/httpx"
)

// Wire error codes. The server emits these in the "error" field of every
// error response; clients can switch on them without parsing descriptions.
const (
	ErrorCodeInvalidRequest        = "invalid_request"
	ErrorCodeInvalidCredentials    = "invalid_credentials"
	ErrorCodeInvalidToken          = "invalid_token"
	ErrorCodeTokenExpired          = "token_expired"
	ErrorCodePrincipalNotFound     = "principal_not_found"
	ErrorCodeInsufficientPrivilege = "insufficient_privilege"
	ErrorCodeRegistrationDisabled  = "registration_disabled"
	ErrorCodeEmailTaken            = "email_taken"
	ErrorCodeInvalidEmail          = "invalid_email"
	ErrorCodeWeakPassword          = "weak_password"
	ErrorCodeSamePassword          = "same_password"
	ErrorCodeInvalidTitle          = "invalid_title"
	ErrorCodeNotFound              = "not_found"
	ErrorCodeRateLimitExceeded     = "rate_limit_exceeded"
	ErrorCodeServerError           = "server_error"
)

// Error is the wire error of the API: an HTTP status plus a machine-readable
// code and a human-readable description. It implements the error interface
// and is shared between the server handlers (WriteError) and the SDK client
// (returned from failed calls).
type Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this error to an HTTP response writer.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter, carries an invalid value or is otherwise malformed.
	ErrInvalidRequest = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidContentType is returned when a form endpoint receives a body
	// that is not application/x-www-form-urlencoded.
	ErrInvalidContentType = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "content-type must be application/x-www-form-urlencoded",
	}

	// ErrInvalidFormBody is returned when the form body cannot be parsed.
	ErrInvalidFormBody = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid form body",
	}

	// ErrInvalidJSONBody is returned when the JSON body cannot be parsed.
	ErrInvalidJSONBody = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid json body",
	}

	// ErrInvalidCredentials is returned on login failure. It deliberately does
	// not say whether the email or the password was wrong.
	ErrInvalidCredentials = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "incorrect email or password",
	}

	// ErrInvalidToken is returned when the access token is missing, malformed
	// or fails signature verification.
	ErrInvalidToken = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or malformed",
	}

	// ErrTokenExpired is returned when the access token is past its expiry.
	ErrTokenExpired = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeTokenExpired,
		Description: "the access token has expired",
	}

	// ErrPrincipalNotFound is returned when a valid token references a user
	// that no longer exists or has been deactivated.
	ErrPrincipalNotFound = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodePrincipalNotFound,
		Description: "the token subject no longer resolves to an active user",
	}

	// ErrInsufficientPrivilege is returned when an authenticated user attempts
	// an operation above their privileges.
	ErrInsufficientPrivilege = &Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientPrivilege,
		Description: "this operation requires superuser privileges",
	}

	// ErrRegistrationDisabled is returned from the signup endpoint when open
	// registration is switched off.
	ErrRegistrationDisabled = &Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeRegistrationDisabled,
		Description: "open registration is disabled on this server",
	}

	// ErrEmailTaken is returned when creating or updating a user would collide
	// with an existing email address.
	ErrEmailTaken = &Error{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "a user with this email already exists",
	}

	// ErrInvalidEmail is returned when an email address fails validation.
	ErrInvalidEmail = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidEmail,
		Description: "the email address is not valid",
	}

	// ErrWeakPassword is returned when a password falls outside the accepted
	// length bounds.
	ErrWeakPassword = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWeakPassword,
		Description: "password must be between 8 and 40 characters",
	}

	// ErrSamePassword is returned when a password change submits the current
	// password as the new one.
	ErrSamePassword = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeSamePassword,
		Description: "the new password must differ from the current one",
	}

	// ErrSelfDelete is returned when a superuser tries to delete their own
	// account.
	ErrSelfDelete = &Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInvalidRequest,
		Description: "superusers may not delete their own account",
	}

	// ErrInvalidTitle is returned when an item title is empty or too long.
	ErrInvalidTitle = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidTitle,
		Description: "title must be a non-empty string of at most 255 characters",
	}

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	// ErrServerError is returned when the server hit an unexpected condition.
	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewError creates an Error with the given status code, error code and
// description, for cases the predefined values do not cover.
func NewError(statusCode int, code, description string) *Error {
	return &Error{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// parseErrorResponse turns a non-2xx HTTP response into a typed *Error.
// Returns nil for success responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &Error{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &Error{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
