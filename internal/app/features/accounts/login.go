// internal/app/features/accounts/login.go
package accounts

import (
	"errors"
	"net/http"

	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/normalize"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeLogin handles POST /login. Unknown email and wrong password get
// the same response so the endpoint does not confirm which emails exist.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, normalize.Email(req.Email))
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "login lookup", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		httpjson.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(*u)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "token issue", err)
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))
	httpjson.Write(w, http.StatusOK, authResponse{Token: token, User: *u})
}
