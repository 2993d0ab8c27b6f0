package webapi_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anshusinha/bankist/infra/seed"
	"github.com/anshusinha/bankist/pkg/config"
	"github.com/anshusinha/bankist/pkg/repository"
	sessionsvc "github.com/anshusinha/bankist/pkg/service/session"
	"github.com/anshusinha/bankist/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	accounts, err := seed.Load("")
	require.NoError(t, err)
	store := repository.NewInMemoryStore(accounts)
	svc := sessionsvc.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cfg := &config.App{
		RateLimit: config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	return webapi.SetupApp(svc, cfg)
}

func makeRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func loginAs(t *testing.T, app *fiber.App, username string, pin int) {
	t.Helper()
	resp := makeRequest(t, app, "POST", "/session/login",
		`{"username":"`+username+`","pin":`+jsonInt(pin)+`}`)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func decodeStatement(t *testing.T, resp *http.Response) *sessionsvc.Statement {
	t.Helper()
	var envelope struct {
		Status  int                   `json:"status"`
		Message string                `json:"message"`
		Data    *sessionsvc.Statement `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotNil(t, envelope.Data)
	return envelope.Data
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	resp := makeRequest(t, app, "GET", "/", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLoginVariants(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{
			desc:       "success",
			body:       `{"username":"rks","pin":1010}`,
			wantStatus: fiber.StatusOK,
		},
		{
			desc:       "wrong pin",
			body:       `{"username":"rks","pin":9999}`,
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			desc:       "unknown username",
			body:       `{"username":"zzz","pin":1010}`,
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			desc:       "invalid body",
			body:       `{"username":123}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc:       "missing pin",
			body:       `{"username":"rks"}`,
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			app := newTestApp(t)
			resp := makeRequest(t, app, "POST", "/session/login", tc.body)
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestLoginReturnsStatement(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := makeRequest(t, app, "POST", "/session/login", `{"username":"rks","pin":1010}`)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	st := decodeStatement(t, resp)
	assert.Equal(t, "Ramesh Kumar Sinha", st.Owner)
	assert.InDelta(t, 3840, st.Balance, 1e-9)
	assert.InDelta(t, 5020, st.Deposits, 1e-9)
	assert.InDelta(t, 1180, st.Withdrawals, 1e-9)
	assert.InDelta(t, 436, st.Interest, 1e-9)
	assert.Len(t, st.Movements, 8)
}

func TestStatementRequiresSession(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := makeRequest(t, app, "GET", "/session/statement", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var pd webapi.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, fiber.StatusUnauthorized, pd.Status)
	assert.Equal(t, "No active session", pd.Title)
}

func TestTransferVariants(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{
			desc:       "success",
			body:       `{"to":"ms","amount":100}`,
			wantStatus: fiber.StatusOK,
		},
		{
			desc:       "insufficient funds",
			body:       `{"to":"ms","amount":5000}`,
			wantStatus: fiber.StatusUnprocessableEntity,
		},
		{
			desc:       "self transfer",
			body:       `{"to":"rks","amount":10}`,
			wantStatus: fiber.StatusUnprocessableEntity,
		},
		{
			desc:       "unknown receiver",
			body:       `{"to":"zzz","amount":10}`,
			wantStatus: fiber.StatusNotFound,
		},
		{
			desc:       "negative amount",
			body:       `{"to":"ms","amount":-10}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc:       "zero amount",
			body:       `{"to":"ms","amount":0}`,
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			app := newTestApp(t)
			loginAs(t, app, "rks", 1010)

			resp := makeRequest(t, app, "POST", "/session/transfer", tc.body)
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestTransferUpdatesStatement(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	loginAs(t, app, "rks", 1010)

	resp := makeRequest(t, app, "POST", "/session/transfer", `{"to":"ms","amount":100}`)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	st := decodeStatement(t, resp)
	assert.InDelta(t, 3740, st.Balance, 1e-9)
	assert.InDelta(t, -100, st.Movements[len(st.Movements)-1], 1e-9)
}

func TestLoanVariants(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{
			desc:       "granted",
			body:       `{"amount":20000}`,
			wantStatus: fiber.StatusOK,
		},
		{
			desc:       "no qualifying deposit",
			body:       `{"amount":100000}`,
			wantStatus: fiber.StatusUnprocessableEntity,
		},
		{
			desc:       "missing amount",
			body:       `{}`,
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			app := newTestApp(t)
			loginAs(t, app, "rks", 1010)

			resp := makeRequest(t, app, "POST", "/session/loan", tc.body)
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestToggleSort(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	loginAs(t, app, "rks", 1010)

	resp := makeRequest(t, app, "POST", "/session/sort", "")
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data webapi.SortResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Data.Sorted)

	// The statement now serves the ascending view.
	stResp := makeRequest(t, app, "GET", "/session/statement", "")
	defer stResp.Body.Close() //nolint:errcheck
	st := decodeStatement(t, stResp)
	assert.True(t, st.Sorted)
	for i := 1; i < len(st.Movements); i++ {
		assert.LessOrEqual(t, st.Movements[i-1], st.Movements[i])
	}
}

func TestCloseAccount(t *testing.T) {
	t.Parallel()

	t.Run("success ends the session", func(t *testing.T) {
		app := newTestApp(t)
		loginAs(t, app, "as", 3030)

		resp := makeRequest(t, app, "DELETE", "/session/account", `{"username":"as","pin":3030}`)
		defer resp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		// The closed account can no longer log in.
		loginResp := makeRequest(t, app, "POST", "/session/login", `{"username":"as","pin":3030}`)
		defer loginResp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusUnauthorized, loginResp.StatusCode)
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		app := newTestApp(t)
		loginAs(t, app, "as", 3030)

		resp := makeRequest(t, app, "DELETE", "/session/account", `{"username":"as","pin":1111}`)
		defer resp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

		// Session still alive, account still present.
		stResp := makeRequest(t, app, "GET", "/session/statement", "")
		defer stResp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusOK, stResp.StatusCode)
	})
}
