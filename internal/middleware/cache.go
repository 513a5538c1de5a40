package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "log/slog"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/logger/sl"
    "github.com/iliyamo/fyyur/internal/session"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }
func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 || cw.size < cw.limit {
        remain := cw.limit - cw.size
        if cw.limit <= 0 {
            cw.buf.Write(b)
        } else if remain > 0 {
            if int64(len(b)) <= remain {
                cw.buf.Write(b)
            } else {
                cw.buf.Write(b[:remain])
            }
        }
    }
    cw.size += int64(len(b))
    return cw.ResponseWriter.Write(b)
}

// PageCache caches rendered GET pages in Redis. Pages are shared between
// visitors, so nothing per-user is stored: Set-Cookie headers are dropped
// and requests carrying a flash cookie skip the cache entirely.
type PageCache struct {
    cfg     config.CacheConfig
    rdb     *redis.Client
    log     *slog.Logger
    methods map[string]bool
}

// NewPageCache returns a cache backed by rdb. A nil client or a disabled
// config yields a cache whose middleware passes through and whose Purge is
// a no-op.
func NewPageCache(cfg config.CacheConfig, rdb *redis.Client, log *slog.Logger) *PageCache {
    if cfg.TTL <= 0 {
        cfg.TTL = 30 * time.Second
    }
    if cfg.Prefix == "" {
        cfg.Prefix = "fyyur:cache"
    }
    return &PageCache{cfg: cfg, rdb: rdb, log: log, methods: cfg.MethodSet()}
}

func (pc *PageCache) enabled() bool { return pc != nil && pc.cfg.Enabled && pc.rdb != nil }

// Build a stable cache key honoring prefix/strategy.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    method := r.Method
    route := c.Path()
    // route alone would collide /venues/1 with /venues/2
    if r.URL.Path != "" {
        route = r.URL.Path
    }
    query := r.URL.RawQuery

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        parts = append(parts, "route", route)
    case "method_route":
        parts = append(parts, "method", method, "route", route)
    case "method_route_query":
        parts = append(parts, "method", method, "route", route, "q", query)
    default: // "route_query"
        parts = append(parts, "route", route, "q", query)
    }

    tail := strings.Join(parts[1:], ":")
    sum := sha1.Sum([]byte(tail))
    return fmt.Sprintf("%s:%x", parts[0], sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    total := 4 + 4 + len(hdrJSON) + len(body)
    out := make([]byte, total)
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:8+len(hdrJSON)], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    var hdr http.Header
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
            return 0, nil, nil, false
        }
    } else {
        hdr = make(http.Header)
    }
    body = bs[8+hlen:]
    return status, hdr, body, true
}

// skipHeader lists response headers that are never stored or replayed.
func skipHeader(k string) bool {
    return strings.EqualFold(k, "Content-Length") || strings.EqualFold(k, "Set-Cookie") ||
        strings.EqualFold(k, echo.HeaderXRequestID)
}

// Middleware serves cached pages and stores 200 responses on a miss.
func (pc *PageCache) Middleware() echo.MiddlewareFunc {
    if !pc.enabled() {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
    }
    maxBody := int64(pc.cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            if !pc.methods[strings.ToUpper(req.Method)] || session.HasCookie(req) {
                return next(c)
            }

            ctx := req.Context()
            key := cacheKeyFrom(pc.cfg, c)

            // Try get from Redis
            if bs, err := pc.rdb.Get(ctx, key).Bytes(); err == nil {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    for k, vals := range hdr {
                        if skipHeader(k) {
                            continue
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            } else if err != redis.Nil {
                pc.log.Warn("cache get failed", slog.String("key", key), sl.Err(err))
            }

            // Miss: capture
            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            // truncated bodies are not worth replaying
            if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
                return nil
            }
            hdr := make(http.Header, len(c.Response().Header()))
            for k, vals := range c.Response().Header() {
                if skipHeader(k) {
                    continue
                }
                hdr[k] = append([]string(nil), vals...)
            }
            payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
            if err != nil {
                return nil
            }
            if err := pc.rdb.SetEx(context.Background(), key, payload, pc.cfg.TTL).Err(); err != nil {
                pc.log.Warn("cache set failed", slog.String("key", key), sl.Err(err))
            }
            return nil
        }
    }
}

// Purge deletes every cached page. It is called after each successful
// mutation so lists and detail pages never show stale data.
func (pc *PageCache) Purge(ctx context.Context) error {
    if !pc.enabled() {
        return nil
    }
    const op = "middleware.PageCache.Purge"

    iter := pc.rdb.Scan(ctx, 0, pc.cfg.Prefix+":*", 100).Iterator()
    var keys []string
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
        if len(keys) == 100 {
            if err := pc.rdb.Del(ctx, keys...).Err(); err != nil {
                return fmt.Errorf("%s: %w", op, err)
            }
            keys = keys[:0]
        }
    }
    if err := iter.Err(); err != nil {
        return fmt.Errorf("%s: %w", op, err)
    }
    if len(keys) > 0 {
        if err := pc.rdb.Del(ctx, keys...).Err(); err != nil {
            return fmt.Errorf("%s: %w", op, err)
        }
    }
    return nil
}
