package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
)

const (
	// CookieName carries the signed session id.
	CookieName = "mentawai_session"

	sessionKey = "session"
	issuer     = "mentawai-shores"
)

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Manager ports.SessionManager
	Secret  []byte
	TTL     time.Duration
	Secure  bool
	Log     zerolog.Logger
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Session resolves the visitor's session from the cookie, rehydrates it from
// storage and stores it on the context. Visitors without a valid cookie get a
// new session id. The cookie is re-issued once half its lifetime has passed.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := readCookie(c, cfg.Secret)
			if err != nil && !errors.Is(err, http.ErrNoCookie) {
				cfg.Log.Debug().Err(err).Msg("discarding invalid session cookie")
			}

			var sid string
			renew := true
			if claims != nil {
				sid = claims.SID
				renew = claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) < cfg.TTL/2
			}
			if sid == "" {
				sid = cfg.Manager.NewID()
			}

			sess, err := cfg.Manager.Open(c.Request().Context(), sid)
			if err != nil {
				return err
			}

			if renew {
				if err := writeCookie(c, cfg, sid); err != nil {
					return err
				}
			}

			SetSession(c, sess)
			return next(c)
		}
	}
}

// SetSession attaches sess to the request context.
func SetSession(c echo.Context, sess ports.Session) {
	c.Set(sessionKey, sess)
}

// SessionFrom returns the session stored by the Session middleware.
func SessionFrom(c echo.Context) (ports.Session, bool) {
	sess, ok := c.Get(sessionKey).(ports.Session)
	return sess, ok
}

func readCookie(c echo.Context, secret []byte) (*sessionClaims, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return nil, err
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !tkn.Valid {
		return nil, err
	}
	return claims, nil
}

func writeCookie(c echo.Context, cfg SessionConfig, sid string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	})
	signed, err := token.SignedString(cfg.Secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(cfg.TTL),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
