package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "токен недействителен или истек"
	msgForbidden    = "недостаточно прав для операции"

	msgInvalidSalonID = "некорректный ID салона"
	msgForbiddenSalon = "нет доступа к этому салону"
)

type contextKey string

const actorKey contextKey = "actor"

// Claims is the payload of an access token issued by the identity service.
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	// SalonID is required for shop_owner tokens.
	SalonID int64 `json:"salonId,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens.
type Authenticator struct {
	secret []byte
	logger Logger
}

// NewAuthenticator создает проверку токенов с общим секретом
func NewAuthenticator(secret string, logger Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		logger: logger,
	}
}

// Protect требует валидный токен и кладет Actor в контекст запроса
func (a *Authenticator) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			a.logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		actor, err := a.Verify(raw)
		if err != nil {
			a.logger.Warn("%s %s - Token rejected: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// Verify parses the token and returns the caller it identifies.
func (a *Authenticator) Verify(raw string) (domain.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Actor{}, err
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Actor{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	if claims.UserID <= 0 {
		return domain.Actor{}, errors.New("userId claim is missing")
	}
	if role == domain.RoleShopOwner && claims.SalonID <= 0 {
		return domain.Actor{}, errors.New("salonId claim is required for shop_owner")
	}

	actor := domain.Actor{UserID: claims.UserID, Role: role}
	if role == domain.RoleShopOwner {
		actor.SalonID = claims.SalonID
	}
	return actor, nil
}

// RequireRole пропускает только вызывающих с одной из ролей.
// Должен стоять после Protect.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// RequireSalonAccess пропускает администратора и владельца салона из переменной пути varName.
// Должен стоять после Protect.
func RequireSalonAccess(varName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			salonID, err := handlers.PathID(r, varName)
			if err != nil {
				handlers.RespondBadRequest(w, msgInvalidSalonID)
				return
			}

			if !actor.CanManageSalon(salonID) {
				handlers.RespondForbidden(w, msgForbiddenSalon)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithActor stores the caller in ctx.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor returns the caller stored by Protect.
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
