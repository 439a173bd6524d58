package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/PankajGoutam/User-Api/internal/api/metrics"
	"github.com/PankajGoutam/User-Api/internal/core/service"
)

// ContextUserKey is the echo context key under which Authenticate stores the
// verified user snapshot.
const ContextUserKey = "user"

type authError struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// Authenticate extracts a bearer token candidate from the request, verifies
// it, and attaches the embedded user snapshot to the context.
//
// Candidate precedence follows the original contract: JSON body "token"
// field, "token" query parameter, then the Authorization header. The
// candidate must be a two-part "scheme token" value; the scheme itself is
// not checked, only the token part is verified.
func Authenticate(tokens *service.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenCandidate(c)
			if raw == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return c.JSON(http.StatusForbidden, authError{Msg: "Token is required for authentication"})
			}

			// Two-part "scheme token" shape. Anything else leaves an
			// empty token that fails verification below.
			var token string
			if parts := strings.SplitN(raw, " ", 2); len(parts) == 2 {
				token = parts[1]
			}

			user, err := tokens.Verify(token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return c.JSON(http.StatusBadRequest, authError{Msg: "Invalid Token"})
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// tokenCandidate finds the raw token value: body field first, then query
// parameter, then the Authorization header.
func tokenCandidate(c echo.Context) string {
	if t := tokenFromBody(c); t != "" {
		return t
	}
	if t := c.QueryParam("token"); t != "" {
		return t
	}
	return c.Request().Header.Get("Authorization")
}

// tokenFromBody peeks at a JSON body for a "token" field, restoring the body
// so downstream binds still work.
func tokenFromBody(c echo.Context) string {
	req := c.Request()
	if req.Body == nil || req.Body == http.NoBody {
		return ""
	}
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return ""
	}

	body, err := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}

	var probe struct {
		Token string `json:"token"`
	}
	if json.Unmarshal(body, &probe) != nil {
		return ""
	}
	return probe.Token
}
