package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Admin struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
}

// AdminRepository is defined here, by its consumer. The mongo
// implementation lives alongside it in this package.
type AdminRepository interface {
	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
}

type JWTClaims struct {
	AdminID string `json:"adminId"`
	jwt.StandardClaims
}

const tokenLifetime = 24 * time.Hour

// Auth issues and verifies admin session tokens. Tokens are HS256 JWTs
// signed with a shared secret; there is no refresh flow, the admin logs
// in again after 24h.
type Auth struct {
	admins AdminRepository
	secret []byte
}

func NewAuth(admins AdminRepository, secret string) *Auth {
	return &Auth{admins: admins, secret: []byte(secret)}
}

func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := a.admins.GetAdminByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	claims := JWTClaims{
		AdminID: admin.ID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenLifetime).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (a *Auth) Verify(tokenStr string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type contextKey string

const adminIDKey contextKey = "admin_id"

// Middleware rejects requests without a valid Bearer token and stores the
// admin ID on the request context.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"missing token"}`)
			return
		}
		claims, err := a.Verify(tokenStr)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"invalid token"}`)
			return
		}
		ctx := context.WithValue(r.Context(), adminIDKey, claims.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminIDFromContext returns the admin ID set by Middleware.
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey).(string)
	return id, ok
}
