package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/ads-service/internal/config"
	"github.com/rajivgeraev/ads-service/internal/repositories/memory"
	"github.com/rajivgeraev/ads-service/internal/utils"
)

const botToken = "12345:test-bot-token"

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID         uuid.UUID `json:"id"`
		TelegramID int64     `json:"telegram_id"`
		Username   string    `json:"username"`
	} `json:"user"`
}

func newAuthApp(t *testing.T, token string) (*fiber.App, *utils.JWTService) {
	t.Helper()

	cfg := &config.Config{TelegramBotToken: token, JWTSecret: "secret", JWTTTL: time.Hour}
	jwtService := utils.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	app := fiber.New()
	NewAuthService(cfg, jwtService, memory.New().Users()).SetupRoutes(app)
	return app, jwtService
}

// signInitData подписывает initData так же, как это делает Telegram
func signInitData(t *testing.T, values url.Values, token string) string {
	t.Helper()

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(token))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	signed := url.Values{}
	for key := range values {
		signed.Set(key, values.Get(key))
	}
	signed.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return signed.Encode()
}

func login(t *testing.T, app *fiber.App, initData string) *http.Response {
	t.Helper()

	body, err := json.Marshal(map[string]string{"init_data": initData})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/telegram", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func telegramValues(username string) url.Values {
	return url.Values{
		"auth_date": {strconv.FormatInt(time.Now().Unix(), 10)},
		"query_id":  {"AAHdF6IQAAAAAN0XohDhrOrc"},
		"user":      {`{"id":279058397,"first_name":"Alice","username":"` + username + `"}`},
	}
}

func TestTelegramLoginIssuesToken(t *testing.T) {
	app, jwtService := newAuthApp(t, botToken)

	resp := login(t, app, signInitData(t, telegramValues("alice"), botToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
	assert.Equal(t, int64(279058397), first.User.TelegramID)
	assert.Equal(t, "alice", first.User.Username)

	userID, err := jwtService.ExtractUserID(first.Token)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, userID)

	// Повторный вход обновляет данные, но не меняет пользователя
	resp = login(t, app, signInitData(t, telegramValues("alice_new"), botToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "alice_new", second.User.Username)
}

func TestTelegramLoginRejectsForgedData(t *testing.T) {
	app, _ := newAuthApp(t, botToken)

	resp := login(t, app, signInitData(t, telegramValues("mallory"), "other:token"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = login(t, app, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTelegramLoginDisabledWithoutBotToken(t *testing.T) {
	app, _ := newAuthApp(t, "")

	resp := login(t, app, signInitData(t, telegramValues("alice"), botToken))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfileRequiresToken(t *testing.T) {
	app, jwtService := newAuthApp(t, botToken)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userID.String(), body["user_id"])
}
