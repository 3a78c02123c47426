package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"digit-identifier/api/internal/recognize"
)

var (
	ErrUnsupportedMedia = errors.New("Only JPEG and PNG images are supported.")
	ErrEmptyUpload      = errors.New("Uploaded file is empty.")
	ErrUploadRead       = errors.New("Failed to read uploaded file.")
	ErrRecognition      = errors.New("Failed to recognize digits in the image.")
)

// HTTPError is an error with the status it should be answered with.
// Err is what the caller sees; Cause stays in the server log.
type HTTPError struct {
	Status int
	Err    error
	Cause  error
}

func (e *HTTPError) Error() string { return e.Err.Error() }
func (e *HTTPError) Unwrap() error { return e.Err }

func httpErr(status int, err error) *HTTPError { return &HTTPError{Status: status, Err: err} }

type Handle struct {
	eng       recognize.Engine
	maxUpload int64
}

func New(eng recognize.Engine, maxUploadBytes int64) *Handle {
	return &Handle{
		eng:       eng,
		maxUpload: maxUploadBytes,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers {"detail": ...}. Anything that is not an *HTTPError is a 500.
func writeError(w http.ResponseWriter, err error) {
	var he *HTTPError
	if !errors.As(err, &he) {
		he = httpErr(http.StatusInternalServerError, err)
	}
	writeJSON(w, he.Status, map[string]string{"detail": he.Error()})
}
