package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/echovoice/apiserver/internal/services"
	"github.com/echovoice/apiserver/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestServer(t *testing.T, repo *mockUserRepo, ttl time.Duration) (*httptest.Server, *token.Service) {
	t.Helper()

	tokens, err := token.NewService("test-secret", ttl)
	require.NoError(t, err)

	handler := NewAuthHandler(testLogger(t), services.NewUserService(repo), tokens, nil, 4)
	router := chi.NewRouter()
	router.Route("/api/auth", func(r chi.Router) {
		AuthRouter(r, handler)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, tokens
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var value T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&value))
	return value
}

func TestSignupIssuesVerifiableToken(t *testing.T) {
	repo := newMockUserRepo()
	srv, tokens := newAuthTestServer(t, repo, 30*time.Minute)

	resp := postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email:    "a@b.com",
		Password: "secret1",
		Name:     "Ann",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody[AuthResponse](t, resp)
	assert.Equal(t, "bearer", body.TokenType)
	assert.Equal(t, "Ann", body.Name)
	assert.Equal(t, "a@b.com", body.Email)
	require.NotEmpty(t, body.AccessToken)

	subject, err := tokens.Verify(body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, body.UserID, subject)
}

func TestSignupValidationItemized(t *testing.T) {
	repo := newMockUserRepo()
	srv, _ := newAuthTestServer(t, repo, 30*time.Minute)

	resp := postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email:    "not-an-email",
		Password: "short",
		Name:     "A",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[ValidationErrorResponse](t, resp)
	assert.Contains(t, body.Fields, "email")
	assert.Contains(t, body.Fields, "password")
	assert.Contains(t, body.Fields, "name")
	assert.Empty(t, repo.users)
}

func TestSignupDuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newMockUserRepo()
	srv, _ := newAuthTestServer(t, repo, 30*time.Minute)

	resp := postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email: "a@b.com", Password: "secret1", Name: "Ann",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email: "A@B.com", Password: "secret2", Name: "Ann Again",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Contains(t, body.Error, "already exists")
	assert.Len(t, repo.users, 1)
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	repo := newMockUserRepo()
	srv, _ := newAuthTestServer(t, repo, 30*time.Minute)

	resp := postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email: "a@b.com", Password: "secret1", Name: "Ann",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	wrongPassword := postJSON(t, srv.URL+"/api/auth/login", LoginRequest{
		Email: "a@b.com", Password: "wrong-password",
	})
	unknownEmail := postJSON(t, srv.URL+"/api/auth/login", LoginRequest{
		Email: "nobody@b.com", Password: "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)

	bodyA := decodeBody[ErrorResponse](t, wrongPassword)
	bodyB := decodeBody[ErrorResponse](t, unknownEmail)
	assert.Equal(t, bodyA, bodyB)
}

func TestLoginNormalizesEmail(t *testing.T) {
	repo := newMockUserRepo()
	srv, tokens := newAuthTestServer(t, repo, 30*time.Minute)

	signupResp := postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email: "a@b.com", Password: "secret1", Name: "Ann",
	})
	require.Equal(t, http.StatusCreated, signupResp.StatusCode)
	signupBody := decodeBody[AuthResponse](t, signupResp)

	loginResp := postJSON(t, srv.URL+"/api/auth/login", LoginRequest{
		Email: "A@B.com", Password: "secret1",
	})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	loginBody := decodeBody[AuthResponse](t, loginResp)

	subject, err := tokens.Verify(loginBody.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signupBody.UserID, subject)
}

func getWithToken(t *testing.T, url, tokenString string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if tokenString != "" {
		req.Header.Set("Authorization", "Bearer "+tokenString)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRequireAuthMissingToken(t *testing.T) {
	repo := newMockUserRepo()
	srv, _ := newAuthTestServer(t, repo, 30*time.Minute)

	resp := getWithToken(t, srv.URL+"/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "missing token", body.Error)
}

func TestRequireAuthDistinguishesInvalidAndExpired(t *testing.T) {
	repo := newMockUserRepo()
	srv, _ := newAuthTestServer(t, repo, -1*time.Minute)

	signupResp := postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email: "a@b.com", Password: "secret1", Name: "Ann",
	})
	require.Equal(t, http.StatusCreated, signupResp.StatusCode)
	signupBody := decodeBody[AuthResponse](t, signupResp)

	expired := getWithToken(t, srv.URL+"/api/auth/me", signupBody.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, expired.StatusCode)
	expiredBody := decodeBody[ErrorResponse](t, expired)
	assert.Equal(t, "token expired", expiredBody.Error)

	invalid := getWithToken(t, srv.URL+"/api/auth/me", "garbage.token.value")
	assert.Equal(t, http.StatusUnauthorized, invalid.StatusCode)
	invalidBody := decodeBody[ErrorResponse](t, invalid)
	assert.Equal(t, "invalid token", invalidBody.Error)
}

func TestRequireAuthUnresolvableSubject(t *testing.T) {
	repo := newMockUserRepo()
	srv, _ := newAuthTestServer(t, repo, 30*time.Minute)

	signupResp := postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email: "a@b.com", Password: "secret1", Name: "Ann",
	})
	require.Equal(t, http.StatusCreated, signupResp.StatusCode)
	signupBody := decodeBody[AuthResponse](t, signupResp)

	repo.delete(signupBody.UserID)

	resp := getWithToken(t, srv.URL+"/api/auth/me", signupBody.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeReturnsUser(t *testing.T) {
	repo := newMockUserRepo()
	srv, _ := newAuthTestServer(t, repo, 30*time.Minute)

	signupResp := postJSON(t, srv.URL+"/api/auth/signup", SignupRequest{
		Email: "a@b.com", Password: "secret1", Name: "Ann",
	})
	require.Equal(t, http.StatusCreated, signupResp.StatusCode)
	signupBody := decodeBody[AuthResponse](t, signupResp)

	resp := getWithToken(t, srv.URL+"/api/auth/me", signupBody.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	raw := new(bytes.Buffer)
	_, err := raw.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), `"a@b.com"`)
	assert.False(t, strings.Contains(raw.String(), "password"), "password hash must never be exposed")
}
