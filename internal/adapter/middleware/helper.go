package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
	// staff login names or employee codes
	reActor = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,64}$`)
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

// buildKey scopes a request id to the actor that sent it, so two clerks
// reusing an id never see each other's responses.
func buildKey(method, path, actorID, requestID string) string {
	return strings.Join([]string{"idemp", strings.ToLower(method), path, actorID, requestID}, ":")
}

func validReqID(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

// parseAxRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339
// (with optional fraction) carrying a zone. Naive timestamps are rejected.
func parseAxRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing Ax-Request-At")
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("Ax-Request-At must be epoch (s/ms) or RFC3339 with timezone")
}

// claimKey stores a pending entry unless the key is already taken.
func claimKey(ctx context.Context, rdb *redis.Client, key string, entry storedResponse) (bool, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return false, err
	}
	return rdb.SetNX(ctx, key, payload, pendingTTL).Result()
}

func loadStored(ctx context.Context, rdb *redis.Client, key string) (storedResponse, error) {
	var s storedResponse
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(v, &s); err != nil {
		return storedResponse{}, err
	}
	return s, nil
}

func storeFinal(ctx context.Context, rdb *redis.Client, key string, entry storedResponse, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, payload, ttl).Err()
}
