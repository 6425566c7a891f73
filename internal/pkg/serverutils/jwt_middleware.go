package serverutils

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserID = "user_id"
	LocalClaims = "claims"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenRevoker reports tokens that were logged out before they expired.
type TokenRevoker interface {
	IsRevoked(jti string) bool
}

type JwtGuard struct {
	secret  []byte
	revoker TokenRevoker
}

func NewJwtGuard(secret string, revoker TokenRevoker) *JwtGuard {
	return &JwtGuard{secret: []byte(secret), revoker: revoker}
}

// Issue signs an HS256 access token for userID.
func (g *JwtGuard) Issue(userID uuid.UUID, ttl time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (g *JwtGuard) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	if g.revoker != nil && g.revoker.IsRevoked(claims.ID) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func bearerToken(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(authHeader[7:]), true
}

// Required rejects the request unless a valid, unrevoked token is present.
// The message never says why, so it cannot be used to probe accounts.
func (g *JwtGuard) Required() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr, ok := bearerToken(ctx)
		if !ok {
			return Unauthorized("You must be signed in.")
		}
		claims, err := g.Parse(tokenStr)
		if err != nil {
			return Unauthorized("You must be signed in.")
		}
		ctx.Locals(LocalUserID, claims.UserID)
		ctx.Locals(LocalClaims, claims)
		return ctx.Next()
	}
}

// Optional attaches the user when a valid token is present and lets
// anonymous requests through otherwise.
func (g *JwtGuard) Optional() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if tokenStr, ok := bearerToken(ctx); ok {
			if claims, err := g.Parse(tokenStr); err == nil {
				ctx.Locals(LocalUserID, claims.UserID)
				ctx.Locals(LocalClaims, claims)
			}
		}
		return ctx.Next()
	}
}

// UserID returns the authenticated user, if any.
func UserID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	raw, ok := ctx.Locals(LocalUserID).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func CurrentClaims(ctx *fiber.Ctx) (*Claims, bool) {
	claims, ok := ctx.Locals(LocalClaims).(*Claims)
	return claims, ok
}
