package handle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"digit-identifier/api/internal/recognize"
	"digit-identifier/api/internal/util"
)

// FileField is the multipart form field carrying the image.
const FileField = "file"

// MaxRequestTimeoutSec caps a caller supplied deadline.
const MaxRequestTimeoutSec = 3600

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Predict handles POST /predict: validate the upload, ask the engine,
// parse its reply. Validation failures never reach the engine.
func (h *Handle) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "POST only"})
		return
	}
	rid := util.RequestID(r.Context())

	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}
	img, mime, err := readUpload(r)
	if err != nil {
		var he *HTTPError
		if errors.As(err, &he) && he.Cause != nil {
			log.Printf("[%s] predict: %v: %v", rid, he.Err, he.Cause)
		}
		writeError(w, err)
		return
	}

	if !util.MatchesMIME(mime, img) {
		log.Printf("[%s] predict: declared %s but content looks like %s", rid, mime, util.SniffMIME(img))
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	start := time.Now()
	res, err := recognize.Recognize(ctx, h.eng, img, mime)
	if err != nil {
		log.Printf("[%s] predict: %s/%s failed after %v: %v", rid, h.eng.Name(), h.eng.GetModel(), time.Since(start), err)
		writeError(w, httpErr(http.StatusInternalServerError, ErrRecognition))
		return
	}
	log.Printf("[%s] predict: %s/%s %d bytes %s -> no_digit=%t raw=%q",
		rid, h.eng.Name(), h.eng.GetModel(), len(img), mime, res.NoDigit, res.RawResponse)

	writeJSON(w, http.StatusOK, res)
}

// readUpload streams the multipart body up to the file field, checks its
// declared type before reading a single byte of it, then reads it whole.
func readUpload(r *http.Request) ([]byte, string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", httpErr(http.StatusBadRequest, fmt.Errorf("Expected a multipart/form-data upload: %w", err))
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", httpErr(http.StatusBadRequest, fmt.Errorf("Missing form field %q.", FileField))
		}
		if err != nil {
			return nil, "", classifyReadErr(err, http.StatusBadRequest)
		}
		if part.FormName() != FileField {
			_ = part.Close()
			continue
		}
		return readFilePart(part)
	}
}

func readFilePart(part *multipart.Part) ([]byte, string, error) {
	defer part.Close()

	mime := strings.TrimSpace(part.Header.Get("Content-Type"))
	if !allowedTypes[mime] {
		return nil, "", httpErr(http.StatusBadRequest, ErrUnsupportedMedia)
	}
	img, err := io.ReadAll(part)
	if err != nil {
		return nil, "", classifyReadErr(err, http.StatusInternalServerError)
	}
	if len(img) == 0 {
		return nil, "", httpErr(http.StatusBadRequest, ErrEmptyUpload)
	}
	return img, mime, nil
}

// classifyReadErr maps a body read error: oversized bodies are 413,
// everything else gets the given status.
func classifyReadErr(err error, status int) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return httpErr(http.StatusRequestEntityTooLarge,
			fmt.Errorf("Upload exceeds the %d byte limit.", mbe.Limit))
	}
	if status >= http.StatusInternalServerError {
		return &HTTPError{Status: status, Err: ErrUploadRead, Cause: err}
	}
	return httpErr(status, fmt.Errorf("Malformed multipart body: %w", err))
}

// requestContext applies the optional caller deadline (X-Request-Timeout
// header or timeoutSec query, seconds). Without one the engine call is unbounded.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ts := r.Header.Get("X-Request-Timeout")
	if ts == "" {
		ts = r.URL.Query().Get("timeoutSec")
	}
	if v, _ := strconv.Atoi(ts); v > 0 {
		v = min(v, MaxRequestTimeoutSec)
		return context.WithTimeout(r.Context(), time.Duration(v)*time.Second)
	}
	return context.WithCancel(r.Context())
}
