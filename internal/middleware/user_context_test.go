package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/evn/sop_backendl/internal/middleware"
	"github.com/evn/sop_backendl/internal/pkg/permissions"
	"github.com/evn/sop_backendl/internal/services/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeLoader struct {
	role string
	caps permissions.Capabilities
	err  error
}

func (l *fakeLoader) LoadCapabilities(ctx context.Context, userID int) (string, permissions.Capabilities, error) {
	return l.role, l.caps, l.err
}

func newRouter(loader *fakeLoader, required ...string) *chi.Mux {
	jwtAuth := jwtauth.New("HS256", []byte(testSecret), nil)

	router := chi.NewRouter()
	router.Use(jwtauth.Verifier(jwtAuth))
	router.Use(jwtauth.Authenticator(jwtAuth))
	router.Use(middleware.AddUserIDToContext())
	router.Use(middleware.LoadActor(loader))
	if len(required) > 0 {
		router.Use(middleware.RequireAny(required...))
	}

	router.Get("/probe", func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActorFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-User-ID", strconv.Itoa(actor.UserID))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(actor.Role))
	})
	return router
}

func probe(t *testing.T, router http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestActorIsBuiltFromToken(t *testing.T) {
	token, err := auth.NewJWTService(testSecret).GenerateToken(42, "operator")
	require.NoError(t, err)

	loader := &fakeLoader{role: "operator", caps: permissions.New(permissions.RequestsView)}
	rec := probe(t, newRouter(loader), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("X-User-ID"))
	assert.Equal(t, "operator", rec.Body.String())
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	loader := &fakeLoader{role: "operator", caps: permissions.New()}
	rec := probe(t, newRouter(loader), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoaderFailureIsInternalError(t *testing.T) {
	token, err := auth.NewJWTService(testSecret).GenerateToken(42, "operator")
	require.NoError(t, err)

	loader := &fakeLoader{err: errors.New("движок прав недоступен")}
	rec := probe(t, newRouter(loader), token)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAny(t *testing.T) {
	token, err := auth.NewJWTService(testSecret).GenerateToken(42, "operator")
	require.NoError(t, err)

	granted := &fakeLoader{role: "operator", caps: permissions.New(permissions.RequestsView)}
	rec := probe(t, newRouter(granted, permissions.RequestsView, permissions.RequestsApprove), token)
	assert.Equal(t, http.StatusOK, rec.Code)

	denied := &fakeLoader{role: "operator", caps: permissions.New()}
	rec = probe(t, newRouter(denied, permissions.RequestsApprove), token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
