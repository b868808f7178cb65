package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paywise/paywise-backend/internal/auth"
	"github.com/paywise/paywise-backend/internal/config"
	"github.com/paywise/paywise-backend/internal/models"
	"github.com/paywise/paywise-backend/internal/repository/memory"
	"github.com/paywise/paywise-backend/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *auth.TokenManager) {
	t.Helper()
	store := memory.NewStore()
	tm := auth.NewTokenManager("test-secret", "paywise-test", time.Hour)
	us := services.NewUserService(store.Users(), tm)
	as := services.NewAccountService(store.Accounts())

	srv := httptest.NewServer(NewRouter(config.Config{Env: "test"}, tm, us, as))
	t.Cleanup(srv.Close)
	return srv, tm
}

func userID(t *testing.T, tm *auth.TokenManager, token string) string {
	t.Helper()
	claims, err := tm.Parse(token)
	require.NoError(t, err)
	return claims.UserID
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	fields := map[string]json.RawMessage{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fields))
	return resp, fields
}

func fieldString(t *testing.T, fields map[string]json.RawMessage, key string) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(fields[key], &s))
	return s
}

func signup(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()
	resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/v1/user/signup", "", map[string]string{
		"username":  username,
		"firstName": "Test",
		"lastName":  "User",
		"password":  "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "User created successfully", fieldString(t, fields, "message"))
	return fieldString(t, fields, "token")
}

func balance(t *testing.T, srv *httptest.Server, token string) decimal.Decimal {
	t.Helper()
	resp, fields := doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/balance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var d decimal.Decimal
	require.NoError(t, json.Unmarshal(fields["balance"], &d))
	return d
}

func TestSignupSigninAndMe(t *testing.T) {
	srv, _ := newTestServer(t)
	signup(t, srv, "a@x.com")

	resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/v1/user/signin", "", map[string]string{
		"username": "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := fieldString(t, fields, "token")

	resp, fields = doJSON(t, http.MethodGet, srv.URL+"/api/v1/user/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Test", fieldString(t, fields, "firstName"))
	assert.Equal(t, "User", fieldString(t, fields, "lastName"))
}

func TestSignupValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("short password", func(t *testing.T) {
		resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/v1/user/signup", "", map[string]string{
			"username": "a@x.com", "firstName": "A", "lastName": "B", "password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "password: must be at least 6 characters", fieldString(t, fields, "message"))
	})

	t.Run("not an email", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/user/signup", "", map[string]string{
			"username": "nope", "firstName": "A", "lastName": "B", "password": "secret1",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate email", func(t *testing.T) {
		signup(t, srv, "dup@x.com")
		resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/v1/user/signup", "", map[string]string{
			"username": "dup@x.com", "firstName": "A", "lastName": "B", "password": "secret1",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Email already taken", fieldString(t, fields, "message"))
	})
}

func TestAuthGate(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp, fields := doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/balance", "", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Unauthorized access, token missing", fieldString(t, fields, "message"))
	})

	t.Run("invalid token", func(t *testing.T) {
		resp, fields := doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/balance", "garbage", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Invalid token", fieldString(t, fields, "message"))
	})
}

func TestTransferFlow(t *testing.T) {
	srv, tm := newTestServer(t)
	tokenA := signup(t, srv, "a@x.com")
	tokenB := signup(t, srv, "b@x.com")
	idA, idB := userID(t, tm, tokenA), userID(t, tm, tokenB)

	// the frontend picks recipients from user search
	resp, fields := doJSON(t, http.MethodGet, srv.URL+"/api/v1/user/bulk?filter=", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.UserSummary
	require.NoError(t, json.Unmarshal(fields["users"], &users))
	require.Len(t, users, 2)

	balA := balance(t, srv, tokenA)
	balB := balance(t, srv, tokenB)
	require.True(t, balA.GreaterThanOrEqual(decimal.NewFromInt(1)), "signup grants at least 1")

	amount := decimal.NewFromInt(1)
	resp, fields = doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/transfer", tokenA, map[string]any{
		"to": idB, "amount": amount,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Transfer successful", fieldString(t, fields, "message"))

	gotA := balance(t, srv, tokenA)
	gotB := balance(t, srv, tokenB)
	assert.True(t, gotA.Equal(balA.Sub(amount)), "sender debited: %s vs %s", gotA, balA)
	assert.True(t, gotB.Equal(balB.Add(amount)), "recipient credited: %s vs %s", gotB, balB)

	t.Run("self transfer", func(t *testing.T) {
		resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/transfer", tokenA, map[string]any{
			"to": idA, "amount": 1,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Cannot transfer to your own account", fieldString(t, fields, "message"))
	})

	t.Run("zero amount", func(t *testing.T) {
		resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/transfer", tokenA, map[string]any{
			"to": idB, "amount": 0,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Amount must be greater than zero", fieldString(t, fields, "message"))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/transfer", tokenA, map[string]any{
			"to": idB, "amount": gotA.Add(decimal.NewFromInt(1)),
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Insufficient balance", fieldString(t, fields, "message"))
	})

	t.Run("unknown recipient", func(t *testing.T) {
		resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/transfer", tokenA, map[string]any{
			"to": "no-such-user", "amount": 1,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Recipient account not found", fieldString(t, fields, "message"))
	})
}

func TestProfileUpdateAndSearch(t *testing.T) {
	srv, _ := newTestServer(t)
	token := signup(t, srv, "a@x.com")

	resp, fields := doJSON(t, http.MethodPut, srv.URL+"/api/v1/user", token, map[string]string{
		"firstName": "Renamed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Updated successfully", fieldString(t, fields, "message"))

	resp, fields = doJSON(t, http.MethodGet, srv.URL+"/api/v1/user/bulk?filter=renam", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.UserSummary
	require.NoError(t, json.Unmarshal(fields["users"], &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Renamed", users[0].FirstName)
	assert.Equal(t, "User", users[0].LastName)
}
