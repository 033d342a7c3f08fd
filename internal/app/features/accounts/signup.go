// internal/app/features/accounts/signup.go
package accounts

import (
	"errors"
	"net/http"

	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/normalize"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLen is deliberately modest; the club enforces stronger rules
// socially, not in code.
const minPasswordLen = 8

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ServeSignup handles POST /signup. New accounts start without admin
// privileges and without team-page visibility.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)
	switch {
	case req.Name == "":
		httpjson.WriteError(w, http.StatusBadRequest, "name is required")
		return
	case req.Email == "":
		httpjson.WriteError(w, http.StatusBadRequest, "email is required")
		return
	case len(req.Password) < minPasswordLen:
		httpjson.WriteError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "password hash", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "signup")
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.WriteError(w, http.StatusBadRequest, "an account with this email already exists")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "signup", err)
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "token issue", err)
		return
	}

	h.Log.Info("user signed up", zap.String("user_id", u.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, authResponse{Token: token, User: u})
}
