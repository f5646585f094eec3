package errors

import "net/http"

var ErrUsernameTaken = &Exception{
	Message:    "username already taken",
	StatusCode: http.StatusConflict,
}
