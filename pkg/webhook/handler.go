package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
	"github.com/fivetwenty-io/comms-client/pkg/events"
)

// Route paths.
const (
	PathEvents = "/events"
	PathHealth = "/health"
)

// HandlerFunc processes one decoded event. A returned error answers the
// webhook with 500 so the sender retries.
//
// Events in an array are handled in order and handling stops at the first
// error. The 500 body reports how many events were processed before it; a
// sender that retries delivers those again, so delivery is at least once and
// handlers should tolerate duplicates.
type HandlerFunc func(ctx context.Context, event events.Event) error

type config struct {
	secret       string
	now          func() time.Time
	logger       comms.Logger
	maxBodyBytes int64
}

// Option configures the webhook handler.
type Option func(*config)

// WithSignatureSecret requires every request to carry a token signed with
// secret. An empty secret disables verification.
func WithSignatureSecret(secret string) Option {
	return func(c *config) {
		c.secret = secret
	}
}

// WithClock sets the time source used to validate token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for request and rejection messages.
func WithLogger(logger comms.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxBodyBytes caps the accepted body size.
func WithMaxBodyBytes(limit int64) Option {
	return func(c *config) {
		if limit > 0 {
			c.maxBodyBytes = limit
		}
	}
}

type receiver struct {
	handle       HandlerFunc
	verifier     *Verifier
	logger       comms.Logger
	maxBodyBytes int64
}

// NewHandler returns an http.Handler serving POST /events and GET /health.
func NewHandler(handle HandlerFunc, opts ...Option) http.Handler {
	cfg := config{
		now:          time.Now,
		logger:       comms.NoopLogger{},
		maxBodyBytes: constants.MaxWebhookBodyBytes,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	rcv := &receiver{handle: handle, logger: cfg.logger, maxBodyBytes: cfg.maxBodyBytes}
	if cfg.secret != "" {
		rcv.verifier = NewVerifier(cfg.secret)
		rcv.verifier.now = cfg.now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.logger))

	r.Get(PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post(PathEvents, rcv.receiveEvents)

	return r
}

// POST /events
func (rcv *receiver) receiveEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rcv.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")

			return
		}

		writeError(w, http.StatusBadRequest, "failed to read body")

		return
	}

	if rcv.verifier != nil {
		_, err = rcv.verifier.Verify(r.Header.Get(constants.HeaderAuthorization), body)
		if err != nil {
			rcv.logger.Warn("Rejected webhook", map[string]interface{}{
				"request_id": middleware.GetReqID(r.Context()),
				"error":      err.Error(),
			})
			writeError(w, http.StatusUnauthorized, "invalid signature")

			return
		}
	}

	decoded, err := decodeBody(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	for processed, event := range decoded {
		err = rcv.handle(r.Context(), event)
		if err != nil {
			rcv.logger.Error("Webhook handler failed", map[string]interface{}{
				"request_id": middleware.GetReqID(r.Context()),
				"type":       event.Type(),
				"processed":  processed,
				"error":      err.Error(),
			})
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":     "failed to process event",
				"processed": processed,
			})

			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]int{"received": len(decoded)})
}

// decodeBody accepts one event object or an array of events.
func decodeBody(body []byte) ([]events.Event, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, comms.NewMalformedPayloadError("", errEmptyBody)
	}

	if trimmed[0] == '[' {
		var list events.List

		err := json.Unmarshal(trimmed, &list)
		if err != nil {
			return nil, err
		}

		return list, nil
	}

	event, err := events.Decode(trimmed)
	if err != nil {
		return nil, err
	}

	return []events.Event{event}, nil
}

var errEmptyBody = errors.New("empty body")

func requestLogger(logger comms.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Webhook request", map[string]interface{}{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start).String(),
			})
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(constants.HeaderContentType, constants.MediaTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
