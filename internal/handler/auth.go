package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // sentinel sql.ErrNoRows for unknown emails
    "errors"       // errors.Is for repository sentinels
    "net/http"     // HTTP status codes and cookie primitives
    "strings"      // string manipulation utilities
    "time"         // timeouts for DB calls and cookie expiry

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/hmisra/plant-store/internal/config"
    "github.com/hmisra/plant-store/internal/middleware"
    "github.com/hmisra/plant-store/internal/model"
    "github.com/hmisra/plant-store/internal/repository"
    "github.com/hmisra/plant-store/internal/utils"
)

// AdminStore is the slice of the admin repository the auth endpoints need.
// *repository.AdminRepo satisfies it; tests use an in-memory fake.
type AdminStore interface {
    Create(ctx context.Context, email, password string, cost int) (uint64, error)
    GetByEmail(ctx context.Context, email string) (model.Admin, error)
}

// AuthHandler bundles dependencies for the admin auth endpoints.
type AuthHandler struct {
    Cfg    config.Config
    Admins AdminStore
}

func NewAuthHandler(cfg config.Config, a AdminStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Admins: a}
}

// ----- DTOs -----

type credentialsReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type adminPart struct {
    ID    uint64 `json:"id"`
    Email string `json:"email"`
}

// Login verifies admin credentials and issues a token.  The same "Invalid
// email or password" message is returned whether the email is unknown or the
// password is wrong, so the endpoint cannot be used to enumerate accounts.
// On success the token travels back twice: in the JSON body for clients that
// store it themselves, and in an HTTP-only SameSite-Strict cookie whose
// MaxAge equals the token TTL.
func (h *AuthHandler) Login(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    a, err := h.Admins.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid email or password"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
    }
    if !utils.VerifyPassword(a.PasswordHash, req.Password) {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid email or password"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, a.ID, h.Cfg.TokenTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
    }

    c.SetCookie(h.tokenCookie(access))

    return c.JSON(http.StatusOK, echo.Map{
        "token":   access.Token,
        "success": true,
        "message": "Login successful",
        "admin":   adminPart{ID: a.ID, Email: a.Email},
    })
}

// AddAdmin provisions an admin account.  There is no signup UI; this is the
// direct API call that seeds the credential store.  The UNIQUE key on the
// email column is the arbiter for duplicates, so two concurrent calls with
// the same email cannot both succeed.
func (h *AuthHandler) AddAdmin(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Admins.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": "Admin already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, id, h.Cfg.TokenTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "message": "Admin created successfully",
        "token":   access.Token,
        "admin":   adminPart{ID: id, Email: req.Email},
    })
}

// tokenCookie builds the transport cookie for an issued token.  HttpOnly
// keeps it away from page scripts, SameSite=Strict blunts CSRF, and Secure
// is flagged only in production so local HTTP development still works.
func (h *AuthHandler) tokenCookie(access utils.AccessToken) *http.Cookie {
    return &http.Cookie{
        Name:     middleware.TokenCookieName,
        Value:    access.Token,
        Path:     "/",
        Expires:  access.Exp,
        MaxAge:   h.Cfg.TokenTTLMin * 60,
        HttpOnly: true,
        SameSite: http.SameSiteStrictMode,
        Secure:   h.Cfg.Env == "production",
    }
}
