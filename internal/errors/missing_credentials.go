package errors

import "net/http"

var ErrMissingCredentials = &Exception{
	Message:    "username and password are required",
	StatusCode: http.StatusBadRequest,
}
