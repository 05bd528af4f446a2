package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/response"
	"github.com/ghostpin/ghostpin-api/internal/pkg/jwthelper"
)

// ContextKeyUserID is where the authenticated user's id is stored on the gin context.
const ContextKeyUserID = "userID"

var (
	errMissingToken      = errors.New("missing bearer token")
	errUserAgentMismatch = errors.New("token was issued to a different user agent")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return a.verify(extractToken)
}

// VerifyJWTFromQuery also accepts the token in the access_token query parameter. Browsers cannot
// set headers on websocket handshakes, so mount it on the stream route only.
func (a *Authenticator) VerifyJWTFromQuery() gin.HandlerFunc {
	return a.verify(func(ctx *gin.Context) string {
		if token := extractToken(ctx); token != "" {
			return token
		}

		return ctx.Query("access_token")
	})
}

func (a *Authenticator) verify(extract func(*gin.Context) string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extract(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		if err := a.authenticate(ctx, token); err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Next()
	}
}

// OptionalJWT lets anonymous requests through but still rejects a bad token.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			ctx.Next()
			return
		}

		if err := a.authenticate(ctx, token); err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Next()
	}
}

func (a *Authenticator) authenticate(ctx *gin.Context, token string) error {
	claims, err := jwthelper.ParseToken(a.signingKey, token)
	if err != nil {
		return err
	}
	if claims.UserAgent != ctx.Request.UserAgent() {
		return errUserAgentMismatch
	}

	ctx.Set(ContextKeyUserID, claims.UserID)

	return nil
}

// extractToken reads the Authorization header.
func extractToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}
