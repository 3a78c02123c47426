package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"digit-identifier/api/internal/handle"
)

type Options struct {
	Addr         string
	AllowOrigins []string
}

type Server struct {
	srv *http.Server
}

// Routes wires the public surface. Method checks live in the handlers so
// that a wrong method still answers JSON.
func Routes(h *handle.Handle, allowOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handle.Healthz)
	mux.HandleFunc("/{$}", h.Root)
	mux.HandleFunc("/predict", h.Predict)

	return withRequestID(withAccessLog(withCORS(mux, allowOrigins)))
}

func New(opt Options, h *handle.Handle) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              opt.Addr,
			Handler:           Routes(h, opt.AllowOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run listens until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("shutting down")
	if err := s.srv.Shutdown(shCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
