package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/mahjong-scoreboard/internal/api/middleware"
	"github.com/mcoot/mahjong-scoreboard/internal/dependencies/mocks"
	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
	"github.com/mcoot/mahjong-scoreboard/internal/services/scoreboard"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
	"github.com/mcoot/mahjong-scoreboard/internal/storage/memory"
	"github.com/mcoot/mahjong-scoreboard/internal/testutil"
)

// brokenStorage fails every player listing. Other methods are not called.
type brokenStorage struct {
	storage.Storage
}

func (brokenStorage) ListPlayers(context.Context) ([]*model.Player, error) {
	return nil, errors.New("dial tcp 10.0.0.7:27017: connection refused")
}

func TestInternalErrorsAreLoggedNotLeaked(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	h := NewPlayerHandler(scoreboard.New(brokenStorage{}, clk, logger), logger)

	rr := httptest.NewRecorder()
	h.GetAll(rr, httptest.NewRequest(http.MethodGet, "/api/get-all", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"internal server error"}`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "10.0.0.7")

	assert.Contains(t, logs.String(), "request failed")
	assert.Contains(t, logs.String(), "connection refused")
	assert.Contains(t, logs.String(), "/api/get-all")
}

func TestClientErrorsAreNotLogged(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	h := NewPlayerHandler(scoreboard.New(brokenStorage{}, clk, logger), logger)

	rr := httptest.NewRecorder()
	h.GetSingle(rr, httptest.NewRequest(http.MethodGet, "/api/get-single", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NotContains(t, logs.String(), "request failed")
}

func TestAdminActionsLogTokenSubject(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New()
	issuer, err := auth.NewJWTIssuer([]byte("test-secret"), clk)
	require.NoError(t, err)
	authService := auth.New(store, auth.NewBcryptHasher(bcrypt.MinCost), issuer, clk, auth.DefaultConfig(), logger)
	h := NewAdminHandler(authService, scoreboard.New(store, clk, logger), logger)

	token, err := authService.InitPassword(context.Background(), "secret1")
	require.NoError(t, err)
	adminID, err := authService.ValidateToken(token)
	require.NoError(t, err)

	guarded := middleware.Auth(authService)(http.HandlerFunc(h.ResetScores))
	send := func(password string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/reset-scores", strings.NewReader(`{"password":"`+password+`"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send("wrong-password"))
	assert.Contains(t, logs.String(), "destructive action rejected")

	assert.Equal(t, http.StatusOK, send("secret1"))
	assert.Contains(t, logs.String(), `"action":"reset-scores"`)
	assert.Contains(t, logs.String(), `"admin_id":"`+adminID+`"`)
}
