package handlers

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/app"
	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/metrics"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument records request durations by route pattern, so path
// parameters do not blow up label cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		metrics.APIRequestDuration.WithLabelValues(
			path,
			r.Method,
			strconv.Itoa(rec.status),
		).Observe(time.Since(start).Seconds())
	})
}

// sessionGate loads the caller's session at request start and rejects
// callers whose role is not listed. An empty role list admits any
// logged-in user. With auth disabled every request passes.
type sessionGate struct {
	service *app.Service
}

func (g sessionGate) require(roles ...models.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !g.service.AuthEnabled() {
				next(w, r)
				return
			}

			token, err := g.service.SessionToken(r)
			if err != nil {
				HandleAPIError(w, r, err)
				return
			}

			session, err := g.service.Sessions.Fetch(r.Context(), token)
			if err != nil {
				HandleAPIError(w, r, err)
				return
			}

			if len(roles) > 0 && !slices.Contains(roles, session.Role) {
				logger.Debug.Printf("Role %s denied for %s %s", session.Role, r.Method, r.URL.Path)
				HandleAPIError(w, r, apperrors.ErrPermissionDenied)
				return
			}

			next(w, r.WithContext(app.WithSession(r.Context(), session)))
		}
	}
}
