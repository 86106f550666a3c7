// Package middleware guards mutating routes against duplicate submissions.
//
// Every POST, PUT, PATCH or DELETE carries Ax-Request-Id, Ax-Request-At and
// Ax-Actor-Id. The first response for a (method, route, actor, request id)
// is kept in redis and replayed when the same actor retries with the same body.
package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	// HeaderActorID names the staff member performing the request.
	HeaderActorID = "Ax-Actor-Id"

	// a claimed key expires after pendingTTL if the handler never finishes
	pendingTTL   = 60 * time.Second
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second

	actorKey = "actor_id"
)

// axHeaders are the validated retry headers of one mutating request.
type axHeaders struct {
	requestID string
	requestAt time.Time
	actorID   string
}

// readAxHeaders validates request id, then timestamp, then actor, and
// reports the first problem found.
func readAxHeaders(h http.Header, now time.Time) (axHeaders, error) {
	var ax axHeaders

	ax.requestID = strings.TrimSpace(h.Get(HeaderRequestID))
	switch {
	case ax.requestID == "":
		return ax, errors.New("missing Ax-Request-Id")
	case !validReqID(ax.requestID):
		return ax, errors.New("invalid Ax-Request-Id format")
	}

	at, err := parseAxRequestAt(h.Get(HeaderRequestAt))
	if err != nil {
		return ax, err
	}
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return ax, errors.New("Ax-Request-At too skewed")
	}
	ax.requestAt = at

	ax.actorID = strings.TrimSpace(h.Get(HeaderActorID))
	switch {
	case ax.actorID == "":
		return ax, errors.New("missing Ax-Actor-Id")
	case !reActor.MatchString(ax.actorID):
		return ax, errors.New("invalid Ax-Actor-Id")
	}
	return ax, nil
}

// storedResponse is what redis holds under a request key: a pending claim
// while the handler runs, then the captured response.
type storedResponse struct {
	Pending     bool      `json:"pending"`
	Status      int       `json:"status"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	ActorID     string    `json:"actor_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// conflictReason explains why a retry cannot be served from s, or returns ""
// when the stored response may be replayed.
func (s storedResponse) conflictReason(bodySum string) string {
	switch {
	case s.BodySHA256 != "" && s.BodySHA256 != bodySum:
		return "Ax-Request-Id reused with different body"
	case s.Pending || s.Status == 0 || len(s.Body) == 0:
		return "request is already in progress"
	}
	return ""
}

// teeWriter passes the response through while keeping a copy of it.
type teeWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// ActorID returns the validated Ax-Actor-Id of the request, falling back to
// the raw header on routes the middleware does not guard.
func ActorID(c echo.Context) string {
	if v, ok := c.Get(actorKey).(string); ok {
		return v
	}
	return strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
}

type idempotency struct {
	rdb *redis.Client
	ttl time.Duration
	log logrus.FieldLogger
}

// IdempotencyMiddleware keys each mutating request by method, route, actor
// and request id. Ax-Request-At must be epoch seconds or milliseconds, or
// RFC3339 with a zone.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, logger logrus.FieldLogger) echo.MiddlewareFunc {
	m := &idempotency{rdb: rdb, ttl: ttl, log: logger}
	return m.wrap
}

func (m *idempotency) wrap(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		switch req.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return next(c)
		}

		ax, err := readAxHeaders(req.Header, nowUTC())
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		c.Set(actorKey, ax.actorID)

		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		sum := bodyHash(body)

		key := buildKey(req.Method, c.Path(), ax.actorID, ax.requestID)
		log := m.log.WithFields(logrus.Fields{"key": key, "actor": ax.actorID})
		entry := storedResponse{
			Pending:     true,
			BodySHA256:  sum,
			RequestID:   ax.requestID,
			ActorID:     ax.actorID,
			RequestAtMS: ax.requestAt.UnixMilli(),
			CreatedAt:   nowUTC(),
		}

		ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
		defer cancel()
		claimed, err := claimKey(ctx, m.rdb, key, entry)
		if err != nil {
			log.WithError(err).Error("idempotency: store unavailable")
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
		}
		if !claimed {
			cur, err := loadStored(ctx, m.rdb, key)
			if err != nil {
				log.WithError(err).Warn("idempotency: load stored response failed")
			}
			if reason := cur.conflictReason(sum); reason != "" {
				return c.JSON(http.StatusConflict, map[string]string{"error": reason})
			}
			log.Debug("idempotency: replaying stored response")
			return c.Blob(cur.Status, echo.MIMEApplicationJSON, cur.Body)
		}

		tee := &teeWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
		c.Response().Writer = tee
		if err := next(c); err != nil {
			c.Error(err)
		}

		entry.Pending = false
		entry.Status = tee.status
		entry.Body = tee.body.Bytes()
		entry.CreatedAt = nowUTC()
		if err := storeFinal(context.Background(), m.rdb, key, entry, m.ttl); err != nil {
			log.WithError(err).Warn("idempotency: save response failed")
		}
		return nil
	}
}
