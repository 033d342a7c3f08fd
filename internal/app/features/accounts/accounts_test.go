package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/corsit/clubsite/internal/app/system/auth"
	"github.com/corsit/clubsite/internal/domain/models"
	"github.com/corsit/clubsite/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T, users *testutil.UserRepo) *Handler {
	t.Helper()
	tokens, err := auth.NewManager(testSecret, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return NewHandler(users, tokens, zap.NewNop())
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestServeSignup(t *testing.T) {
	users := testutil.NewUserRepo()
	h := newTestHandler(t, users)

	rec := postJSON(t, h.ServeSignup, "/signup",
		`{"name":"Asha Rao","email":"Asha@Example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("signup must return a token")
	}
	if resp.User.Email != "asha@example.com" {
		t.Errorf("got email %q, want normalized lowercase", resp.User.Email)
	}
	if resp.User.IsAdmin || resp.User.AdminAuthenticated {
		t.Error("new accounts must start without privileges or visibility")
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("password hash must not appear in the response")
	}
}

func TestServeSignup_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","password":"hunter2hunter2"}`},
		{"missing email", `{"name":"Asha","password":"hunter2hunter2"}`},
		{"short password", `{"name":"Asha","email":"a@b.com","password":"short"}`},
		{"malformed body", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := testutil.NewUserRepo()
			h := newTestHandler(t, users)
			rec := postJSON(t, h.ServeSignup, "/signup", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestServeSignup_DuplicateEmail(t *testing.T) {
	users := testutil.NewUserRepo()
	users.Seed(models.User{Name: "First", Email: "asha@example.com"})
	h := newTestHandler(t, users)

	rec := postJSON(t, h.ServeSignup, "/signup",
		`{"name":"Second","email":"ASHA@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := testutil.NewUserRepo()
	users.Seed(models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: string(hash)})
	h := newTestHandler(t, users)

	rec := postJSON(t, h.ServeLogin, "/login",
		`{"email":"Asha@Example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("login must return a token")
	}
}

func TestServeLogin_InvalidCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := testutil.NewUserRepo()
	users.Seed(models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: string(hash)})
	h := newTestHandler(t, users)

	tests := []struct {
		name string
		body string
	}{
		{"unknown email", `{"email":"nobody@example.com","password":"hunter2hunter2"}`},
		{"wrong password", `{"email":"asha@example.com","password":"wrongwrongwrong"}`},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.ServeLogin, "/login", tt.body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			bodies = append(bodies, rec.Body.String())
		})
	}
	// Unknown email and wrong password must be indistinguishable.
	if len(bodies) == 2 && bodies[0] != bodies[1] {
		t.Errorf("responses differ: %q vs %q", bodies[0], bodies[1])
	}
}
