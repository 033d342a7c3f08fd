package profile

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corsit/clubsite/internal/app/system/auth"
	"github.com/corsit/clubsite/internal/domain/models"
	"github.com/corsit/clubsite/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(users *testutil.UserRepo, mediaStore *testutil.MediaStore) *Handler {
	if mediaStore == nil {
		return NewHandler(users, nil, "profiles", 5<<20, zap.NewNop())
	}
	return NewHandler(users, mediaStore, "profiles", 5<<20, zap.NewNop())
}

func seedUser(users *testutil.UserRepo) models.User {
	return users.Seed(models.User{
		Name:  "Asha Rao",
		Email: "asha@example.com",
	})
}

func asUser(r *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	})
}

func TestServeGet(t *testing.T) {
	users := testutil.NewUserRepo()
	u := seedUser(users)
	h := newTestHandler(users, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/profile", nil), u)
	rec := httptest.NewRecorder()
	h.ServeGet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("got email %q, want %q", got.Email, u.Email)
	}
}

func TestServeGet_NoUser(t *testing.T) {
	users := testutil.NewUserRepo()
	h := newTestHandler(users, nil)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	h.ServeGet(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestServeUpdate(t *testing.T) {
	users := testutil.NewUserRepo()
	u := seedUser(users)
	h := newTestHandler(users, nil)

	body := `{
		"name": "Asha R",
		"phone": "9876543210",
		"designation": "Core Member",
		"description": "<p>Builds things</p><script>alert(1)</script>",
		"github": "https://github.com/asha",
		"project_description": "<b>Robot arm</b>"
	}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body)), u)
	rec := httptest.NewRecorder()
	h.ServeUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name != "Asha R" {
		t.Errorf("got name %q, want %q", got.Name, "Asha R")
	}
	if strings.Contains(got.Description, "script") {
		t.Errorf("description must be sanitized, got %q", got.Description)
	}
	if !strings.Contains(got.Description, "Builds things") {
		t.Errorf("sanitizing must keep the safe content, got %q", got.Description)
	}
	if !strings.Contains(got.ProjectDescription, "<b>") {
		t.Errorf("safe formatting must survive, got %q", got.ProjectDescription)
	}
}

func TestServeUpdate_NameRequired(t *testing.T) {
	users := testutil.NewUserRepo()
	u := seedUser(users)
	h := newTestHandler(users, nil)

	req := asUser(httptest.NewRequest(http.MethodPut, "/profile",
		strings.NewReader(`{"name":"<i></i>"}`)), u)
	rec := httptest.NewRecorder()
	h.ServeUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("oldpassword1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := testutil.NewUserRepo()
	u := users.Seed(models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: string(hash)})
	h := newTestHandler(users, nil)

	body := `{"current_password":"oldpassword1","new_password":"newpassword1"}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/profile/password", strings.NewReader(body)), u)
	rec := httptest.NewRecorder()
	h.ServePassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	stored, err := users.GetByID(req.Context(), u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword1")) != nil {
		t.Error("new password must verify against the stored hash")
	}
}

func TestServePassword_WrongCurrent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("oldpassword1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := testutil.NewUserRepo()
	u := users.Seed(models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: string(hash)})
	h := newTestHandler(users, nil)

	body := `{"current_password":"not-the-password","new_password":"newpassword1"}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/profile/password", strings.NewReader(body)), u)
	rec := httptest.NewRecorder()
	h.ServePassword(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	stored, err := users.GetByID(req.Context(), u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("oldpassword1")) != nil {
		t.Error("a rejected change must leave the old hash in place")
	}
}

func TestServePhoto(t *testing.T) {
	users := testutil.NewUserRepo()
	u := seedUser(users)
	mediaStore := testutil.NewMediaStore()
	mediaStore.URL = "https://res.cloudinary.test/profile.jpg"
	h := newTestHandler(users, mediaStore)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("photo", "me.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("jpeg bytes")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/profile/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = asUser(req, u)
	rec := httptest.NewRecorder()
	h.ServePhoto(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	stored, err := users.GetByID(req.Context(), u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.PhotoURL != mediaStore.URL {
		t.Errorf("got photo URL %q, want %q", stored.PhotoURL, mediaStore.URL)
	}
	uploads := mediaStore.Uploads()
	if len(uploads) != 1 || uploads[0].Folder != "profiles" {
		t.Errorf("unexpected uploads: %+v", uploads)
	}
}

func TestServePhoto_BadFormat(t *testing.T) {
	users := testutil.NewUserRepo()
	u := seedUser(users)
	h := newTestHandler(users, testutil.NewMediaStore())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("photo", "me.svg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("<svg/>")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/profile/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = asUser(req, u)
	rec := httptest.NewRecorder()
	h.ServePhoto(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
