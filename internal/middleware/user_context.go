// internal/middleware/user_context.go
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/evn/sop_backendl/internal/pkg/permissions"
	"github.com/evn/sop_backendl/internal/pkg/response"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const UserIDContextKey contextKey = "user_id"
const ActorContextKey contextKey = "actor"

// Actor — текущий пользователь и его права. Кладется в контекст целиком,
// чтобы обработчики не ходили за правами в глобальное состояние.
type Actor struct {
	UserID int
	Role   string
	Caps   permissions.Capabilities
}

// GetUserIDFromContext возвращает user_id из контекста.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	if val := ctx.Value(UserIDContextKey); val != nil {
		if id, ok := val.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// GetActorFromContext возвращает актора из контекста.
func GetActorFromContext(ctx context.Context) (Actor, bool) {
	if val := ctx.Value(ActorContextKey); val != nil {
		if actor, ok := val.(Actor); ok {
			return actor, true
		}
	}
	return Actor{}, false
}

// AddUserIDToContext извлекает user_id из JWT и кладёт в контекст.
func AddUserIDToContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				next.ServeHTTP(w, r)
				return
			}
			claims := token.PrivateClaims()
			var userID int
			if rawID, ok := claims["user_id"]; ok {
				switch v := rawID.(type) {
				case float64:
					userID = int(v)
				case int:
					userID = v
				case string:
					if id, err := strconv.Atoi(v); err == nil {
						userID = id
					}
				}
			}
			if userID != 0 {
				ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CapabilityLoader загружает права пользователя из внешнего движка прав.
type CapabilityLoader interface {
	LoadCapabilities(ctx context.Context, userID int) (string, permissions.Capabilities, error)
}

// LoadActor собирает Actor {user, права} для аутентифицированных запросов.
func LoadActor(loader CapabilityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
				return
			}
			role, caps, err := loader.LoadCapabilities(r.Context(), userID)
			if err != nil {
				response.RespondWithError(w, http.StatusInternalServerError, "Не удалось загрузить права")
				return
			}
			actor := Actor{UserID: userID, Role: role, Caps: caps}
			ctx := context.WithValue(r.Context(), ActorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAny пропускает запрос, если у актора есть хотя бы одно из прав.
func RequireAny(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActorFromContext(r.Context())
			if !ok {
				response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
				return
			}
			if !actor.Caps.HasAny(names...) {
				response.RespondWithError(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
