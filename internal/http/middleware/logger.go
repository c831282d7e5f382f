package middleware

import (
    "encoding/json"
    "io"
    "os"
    "time"

    "github.com/gofiber/fiber/v2"
)

// Logger logs each HTTP request as one JSON object per line on stdout.
// Fields:
// - ts (RFC3339, in the server's local time)
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - user_id (only when the request carried a valid token)
func Logger() fiber.Handler {
    return LoggerWithWriter(os.Stdout, time.Local)
}

// LoggerWithWriter is Logger with the output and timezone injectable,
// mainly for tests.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
    enc := json.NewEncoder(w)

    return func(c *fiber.Ctx) error {
        start := time.Now()

        // Process request
        err := c.Next()

        // Collect fields after handler executed to capture final status
        rid, _ := c.Locals(RequestIDLocalKey).(string)
        fields := map[string]any{
            "ts":         time.Now().In(loc).Format(time.RFC3339),
            "request_id": rid,
            "method":     c.Method(),
            // Use only the path segment (no query string)
            "path":    c.Path(),
            "status":  c.Response().StatusCode(),
            "latency": float64(time.Since(start).Milliseconds()),
        }
        if uid, ok := c.Locals(UserIDLocalKey).(string); ok && uid != "" {
            fields["user_id"] = uid
        }

        _ = enc.Encode(fields)

        return err
    }
}
