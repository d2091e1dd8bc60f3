package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/printshop/pkg/locale"
)

const (
	SessionCookie = "print_session"
	SessionHeader = "X-Session-ID"

	sessionKey = "httpx.session"
)

// RequestLogger logs one line per request and every error attached to the
// context with c.Error.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		}
		if sid, ok := c.Get(sessionKey); ok {
			attrs = append(attrs, slog.Any("session", sid))
		}

		switch {
		case len(c.Errors) > 0:
			log.Error("request failed", append(attrs, slog.String("err", c.Errors.String()))...)
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request failed", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}

// Session resolves the caller's session id from the header or cookie and
// mints a new one when neither carries a valid UUID.
func Session(cookieMaxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(sid); err != nil {
			sid, _ = c.Cookie(SessionCookie)
		}
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sid, int(cookieMaxAge.Seconds()), "/", "", false, true)
		c.Set(sessionKey, sid)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// Locale validates the :locale path parameter and echoes the canonical form
// as Content-Language. Unsupported locales are 404.
func Locale(r *locale.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc, ok := r.Resolve(c.Param("locale"))
		if !ok {
			Abort(c, status.Errorf(codes.NotFound, "locale %q not found", c.Param("locale")))
			return
		}
		c.Header("Content-Language", loc)
		c.Next()
	}
}
