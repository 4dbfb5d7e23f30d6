// Package mockapi serves a randomuser.me compatible API offline. Batches
// are generated deterministically from the seed, so tests and demos see
// stable data.
package mockapi

import (
	"bytes"
	"encoding/json"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"userdir/internal/domain"
)

const (
	// ErrorMessage is what randomuser.me answers when it cannot serve a request
	ErrorMessage = "Uh oh, something has gone wrong. Please tweet us @randomapi about the issue. Thank you."

	Version    = "1.4"
	maxResults = 5000
	portraitPx = 64
)

// Server is the mock API
type Server struct {
	log zerolog.Logger
}

// New creates a mock API server
func New(logger zerolog.Logger) *Server {
	return &Server{log: logger.With().Str("component", "mockapi").Logger()}
}

// Handler returns the chi router serving the API
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleUsers)
		r.Get("/portraits/{folder}/{file}", s.handlePortrait)
		r.Get("/portraits/{size}/{folder}/{file}", s.handlePortrait)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", ww.Status()).
			Msg("request")
	})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("fail") != "" {
		s.writeJSON(w, http.StatusOK, domain.Envelope{Error: ErrorMessage})
		return
	}

	results := intParam(q.Get("results"), 1)
	if results < 1 {
		results = 1
	}
	if results > maxResults {
		results = maxResults
	}
	page := intParam(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	seed := q.Get("seed")
	if seed == "" {
		seed = strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	}
	var nat []string
	if v := q.Get("nat"); v != "" {
		nat = strings.Split(v, ",")
	}

	users := GenerateUsers(seed, page, results, nat, baseURL(r)+"/api/")
	s.writeJSON(w, http.StatusOK, domain.Envelope{
		Results: users,
		Info:    &domain.Info{Seed: seed, Results: results, Page: page, Version: Version},
	})
}

func (s *Server) handlePortrait(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	file := chi.URLParam(r, "file")
	n, err := strconv.Atoi(strings.TrimSuffix(file, ".png"))
	if (folder != "men" && folder != "women") || err != nil || n < 0 || n > 99 {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Portrait(folder, n)); err != nil {
		s.log.Error().Err(err).Msg("encode portrait")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// Portrait draws a simple avatar: a head and shoulders on a colored background
func Portrait(folder string, n int) image.Image {
	h := fnv.New32a()
	h.Write([]byte(folder + strconv.Itoa(n)))
	sum := h.Sum32()

	bg := color.RGBA{uint8(sum), uint8(sum >> 8), uint8(sum >> 16), 255}
	skin := color.RGBA{0xe0, 0xac, 0x69, 255}
	shirt := color.RGBA{uint8(sum>>16) / 2, uint8(sum) / 2, uint8(sum>>8) / 2, 255}

	img := image.NewRGBA(image.Rect(0, 0, portraitPx, portraitPx))
	cx, cy, r := portraitPx/2, portraitPx*2/5, portraitPx/5
	for y := 0; y < portraitPx; y++ {
		for x := 0; x < portraitPx; x++ {
			dx, dy := x-cx, y-cy
			sx, sy := x-cx, y-portraitPx
			switch {
			case dx*dx+dy*dy <= r*r:
				img.Set(x, y, skin)
			case sx*sx+sy*sy <= (portraitPx*2/5)*(portraitPx*2/5):
				img.Set(x, y, shirt)
			default:
				img.Set(x, y, bg)
			}
		}
	}
	return img
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func intParam(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}
