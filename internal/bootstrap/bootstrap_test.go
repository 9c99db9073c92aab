package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/enlistment/internal/config"
	"github.com/yigit/enlistment/internal/pkg/tokenstore"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.JWT.Secret = "bootstrap-test"
	cfg.JWT.AccessTokenExpiration = "15m"
	cfg.JWT.Issuer = "test"
	cfg.Auth.EnforceCapabilities = true
	cfg.Auth.RoleCapabilities = config.DefaultRoleCapabilities()
	return cfg
}

func TestSetupRouter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cfg := testConfig()
	deps := BuildDependencies(cfg, mock, tokenstore.NewMemoryStore(), zerolog.Nop())

	for name, tc := range map[string]struct {
		pinger Pinger
		path   string
		want   int
	}{
		"root":          {stubPinger{}, "/", http.StatusOK},
		"health up":     {stubPinger{}, "/health", http.StatusOK},
		"health down":   {stubPinger{err: errors.New("down")}, "/health", http.StatusServiceUnavailable},
		"metrics":       {stubPinger{}, "/metrics", http.StatusOK},
		"protected":     {stubPinger{}, "/courses", http.StatusUnauthorized},
		"unknown route": {stubPinger{}, "/nope", http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			router := SetupRouter(cfg, deps, tc.pinger, zerolog.Nop())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupRevocationStoreWithoutRedis(t *testing.T) {
	cfg := testConfig()
	store, client, err := SetupRevocationStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.IsType(t, &tokenstore.MemoryStore{}, store)
}
