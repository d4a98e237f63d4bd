package rest

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestLogging assigns a request id, echoes it in X-Request-ID and logs one
// line per request once the handler chain has finished.
func requestLogging(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(common.RequestIDHeaderName, id)
		c.Request = c.Request.WithContext(logging.ContextWith(c.Request.Context(), "request_id", id))

		c.Next()

		logger.Info(c.Request.Context(), "http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)
	}
}

// cors answers preflight requests from allowed origins before the identity
// gate runs. Entries may end in ":*" to allow any port on that host.
func cors(allowed []string) gin.HandlerFunc {
	methods := strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		preflight := c.Request.Method == http.MethodOptions &&
			c.GetHeader("Access-Control-Request-Method") != ""

		if !originAllowed(origin, allowed) {
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Add("Vary", "Origin")

		if preflight {
			h.Set("Access-Control-Allow-Methods", methods)
			if req := c.GetHeader("Access-Control-Request-Headers"); req != "" {
				h.Set("Access-Control-Allow-Headers", req)
			} else {
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			}
			h.Set("Access-Control-Max-Age", strconv.Itoa(600))
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		h.Set("Access-Control-Expose-Headers", common.RequestIDHeaderName)
		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
		if host, ok := strings.CutSuffix(a, ":*"); ok {
			u, err := url.Parse(origin)
			if err != nil {
				continue
			}
			if u.Scheme+"://"+u.Hostname() == host && u.Port() != "" {
				return true
			}
		}
	}
	return false
}

// identity runs the resolver for every request. Public paths pass through
// untouched; protected ones either get the identity attached to the request
// context or are aborted with 401.
func (s *Server) identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		d := s.resolver.Resolve(ctx, c.Request.URL.Path, c.GetHeader(common.AuthorizationHeaderName))
		switch d.Outcome {
		case auth.PassedThrough:
			c.Next()
		case auth.Authenticated:
			ctx = logging.ContextWith(auth.WithIdentity(ctx, d.Identity), "user_id", d.Identity.UserID)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		default:
			reason := d.Reason()
			s.metrics.ObserveRejection(reason)
			s.logger.Warn(ctx, "request rejected",
				"path", c.Request.URL.Path,
				"reason", reason,
			)
			s.fail(c, d.Err)
		}
	}
}
