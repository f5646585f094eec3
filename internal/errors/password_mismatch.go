package errors

import "net/http"

var ErrPasswordMismatch = &Exception{
	Message:    "passwords do not match",
	StatusCode: http.StatusBadRequest,
}
