// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
)

type Handlers struct {
	Guests    *app.GuestDirectory
	Employees *app.EmployeeDirectory
	Rooms     *app.RoomInventory
	Bookings  *app.BookingLedger
	Resources *app.ResourceCatalog
	// Ready reports store and cache health for /readyz; nil means always ready.
	Ready func(ctx context.Context) error
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/readyz", h.ready)

	s.mux.Route("/v1", func(r chi.Router) {
		r.Use(APIVersion)
		r.Route("/guests", h.guestRoutes)
		r.Route("/employees", h.employeeRoutes)
		r.Route("/rooms", h.roomRoutes)
		r.Route("/bookings", h.bookingRoutes)
		if h.Resources != nil {
			r.Route("/resources", h.resourceRoutes)
			r.Delete("/providers/{providerID}/links", h.unlinkProvider)
		}
	})
}

func (h *Handlers) ready(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil {
		if err := h.Ready(r.Context()); err != nil {
			writeProblem(w, http.StatusServiceUnavailable, "Not Ready", err.Error())
			return
		}
	}
	w.WriteHeader(200)
	_, _ = w.Write([]byte("ready"))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps registry errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", detail(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrIllegalOperation):
		writeProblem(w, http.StatusConflict, "Illegal Operation", detail(err, domain.ErrIllegalOperation))
	case errors.Is(err, domain.ErrCommunication):
		writeProblem(w, http.StatusBadGateway, "Provider Service Error", detail(err, domain.ErrCommunication))
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// detail strips the sentinel prefix, leaving the reason.
func detail(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeRead answers a GET, honouring If-None-Match.
func writeRead(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

// respond writes v with status, or the mapped error.
func respond[T any](w http.ResponseWriter, r *http.Request, status int, v T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if r.Method == http.MethodGet {
		writeRead(w, r, v)
		return
	}
	writeJSON(w, status, v)
}

func noContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into dst, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	return true
}

// pathID parses the named URL parameter, answering 400 itself on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", name+" must be a positive number")
		return 0, false
	}
	return id, true
}

func pathIDs(w http.ResponseWriter, r *http.Request, a, b string) (int64, int64, bool) {
	x, ok := pathID(w, r, a)
	if !ok {
		return 0, 0, false
	}
	y, ok := pathID(w, r, b)
	return x, y, ok
}
