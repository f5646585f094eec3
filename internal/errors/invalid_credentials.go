package errors

import "net/http"

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password, so login failures never disclose which accounts exist.
var ErrInvalidCredentials = &Exception{
	Message:    "username or password incorrect",
	StatusCode: http.StatusUnauthorized,
}
