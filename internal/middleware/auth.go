package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "bytes"         // body restoration after peeking for a token
    "encoding/json" // decoding a token field out of a JSON body
    "io"            // reading and re-wrapping the request body
    "net/http"      // HTTP status codes for responses
    "strings"       // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/hmisra/plant-store/internal/utils"
)

// TokenCookieName is the cookie under which the login handler stores the
// admin token.  The auth gate checks this cookie first.
const TokenCookieName = "token"

// maxPeekBody caps how much of a request body the gate will read while
// looking for a token.  Larger bodies simply cannot carry one.
const maxPeekBody = 1 << 20

// TokenAuth returns an Echo middleware that gates protected routes behind a
// valid admin token.  The token is looked up in three transport locations in
// strict priority order: the "token" cookie, the Authorization header as a
// Bearer value, and finally a "token" field in a JSON request body.  The
// first non-empty value wins; locations are never merged.
//
// A request with no token in any location is rejected with 400 before the
// protected handler runs.  A token that fails verification is rejected with
// 401, with the verification failure reason attached for diagnostics.  On
// success the admin ID from the token's subject is stored in the context
// under "admin_id" and the request proceeds.  The gate never issues or
// refreshes tokens.
func TokenAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := extractToken(c)
            if raw == "" {
                return c.JSON(http.StatusBadRequest, echo.Map{
                    "success": false,
                    "message": "Token is missing",
                })
            }
            adminID, err := utils.VerifyAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{
                    "success": false,
                    "message": "Token isn't valid",
                    "error":   err.Error(),
                })
            }
            c.Set("admin_id", adminID)
            return next(c)
        }
    }
}

// extractToken tries the three transport locations in priority order and
// returns the first non-empty token found, or "".
func extractToken(c echo.Context) string {
    // 1. Cookie set by the login handler.
    if ck, err := c.Cookie(TokenCookieName); err == nil && ck.Value != "" {
        return ck.Value
    }
    // 2. Authorization: Bearer <token>.
    auth := c.Request().Header.Get("Authorization")
    if strings.HasPrefix(auth, "Bearer ") {
        if raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); raw != "" {
            return raw
        }
    }
    // 3. A "token" field in a JSON body.  The body is read and restored so
    // the downstream handler can still bind it.
    req := c.Request()
    ct := req.Header.Get(echo.HeaderContentType)
    if req.Body == nil || !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
        return ""
    }
    body, err := io.ReadAll(io.LimitReader(req.Body, maxPeekBody))
    if err != nil {
        return ""
    }
    req.Body = io.NopCloser(bytes.NewReader(body))
    var peek struct {
        Token string `json:"token"`
    }
    if err := json.Unmarshal(body, &peek); err != nil {
        return ""
    }
    return strings.TrimSpace(peek.Token)
}
