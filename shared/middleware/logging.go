package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gemchat-dev/gemchat/shared/domain"
	"github.com/gemchat-dev/gemchat/shared/logger"
	"github.com/gemchat-dev/gemchat/shared/utils"
)

// statusRecorder wraps http.ResponseWriter to capture the first status written.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// logFields is filled by inner middleware so the access log can see
// values that live on a derived request context.
type logFields struct {
	userID domain.UserId
	authed bool
}

type logFieldsKey struct{}

func setLogUser(ctx context.Context, id domain.UserId) {
	if f, ok := ctx.Value(logFieldsKey{}).(*logFields); ok {
		f.userID = id
		f.authed = true
	}
}

// Logging writes one structured line per request. Level follows the status class.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		fields := &logFields{}
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), logFieldsKey{}, fields)))

		durationMs := float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
		args := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.statusCode),
			slog.Float64("duration_ms", durationMs),
		}
		if id := GetRequestID(r.Context()); id != "" {
			args = append(args, slog.String("request_id", id))
		}
		if ip, err := utils.GetIP(r); err == nil {
			args = append(args, slog.String("remote_ip", ip))
		}
		if fields.authed {
			args = append(args, slog.Int64("user_id", fields.userID))
		}

		level := slog.LevelInfo
		if rec.statusCode >= 500 {
			level = slog.LevelError
		} else if rec.statusCode >= 400 {
			level = slog.LevelWarn
		}

		logger.Log.Log(r.Context(), level, "http_request", args...)
	})
}
