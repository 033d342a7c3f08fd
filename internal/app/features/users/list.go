package users

import (
	"net/http"
	"time"

	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/corsit/clubsite/internal/domain/models"
)

// adminUserView is the admin listing projection. Password hashes never leave
// the store, but everything else is on the table for moderation.
type adminUserView struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	USN                string    `json:"usn,omitempty"`
	Year               string    `json:"year,omitempty"`
	Designation        string    `json:"designation,omitempty"`
	AdminAuthenticated bool      `json:"admin_authenticated"`
	IsAdmin            bool      `json:"is_admin"`
	CreatedAt          time.Time `json:"created_at"`
}

func toAdminView(u models.User) adminUserView {
	return adminUserView{
		ID:                 u.ID.Hex(),
		Name:               u.Name,
		Email:              u.Email,
		Phone:              u.Phone,
		USN:                u.USN,
		Year:               u.Year,
		Designation:        u.Designation,
		AdminAuthenticated: u.AdminAuthenticated,
		IsAdmin:            u.IsAdmin,
		CreatedAt:          u.CreatedAt,
	}
}

// ServeList handles GET /admin/users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin user list")
	defer cancel()

	all, err := h.Users.List(ctx)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "admin user list", err)
		return
	}

	views := make([]adminUserView, 0, len(all))
	for _, u := range all {
		views = append(views, toAdminView(u))
	}
	httpjson.Write(w, http.StatusOK, map[string][]adminUserView{"users": views})
}
