package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func NewAuthentication(username string, passwordHash []byte) AuthenticationMiddleware {
	return AuthenticationMiddleware{
		username:     username,
		passwordHash: passwordHash,
	}
}

// AuthenticationMiddleware guards the console. Operators sign in with a single set of credentials
// of which only the bcrypt hash is configured.
type AuthenticationMiddleware struct {
	username     string
	passwordHash []byte
}

type userKey struct{}

// BasicAuthentication Inspiration: https://www.pandurang-waghulde.com/custom-http-basic-authentication-using-gin/
func (m AuthenticationMiddleware) BasicAuthentication(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		m.handleError(c, errors.New("invalid Authorization header format"))
		return
	}

	if err := m.signIn(username, password); err != nil {
		m.handleError(c, err)
		return
	}

	c.Set("user", username)
	c.Request = c.Request.WithContext(NewContextWithUser(c.Request.Context(), username))
	c.Next()
}

func (m AuthenticationMiddleware) signIn(username, password string) error {
	usernameMatches := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	err := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password))
	if !usernameMatches || err != nil {
		return errdef.NewUnauthorized("invalid username or password")
	}
	return nil
}

func (m AuthenticationMiddleware) handleError(c *gin.Context, e error) {
	c.Header("WWW-Authenticate", `Basic realm="channel-admin"`)
	_ = c.AbortWithError(http.StatusUnauthorized, e)
}

// NewContextWithUser returns a new [context.Context] that carries the signed in username.
func NewContextWithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey{}, username)
}

// GetUser returns the username stored in the ctx, if any.
func GetUser(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userKey{}).(string)
	return username, ok
}
