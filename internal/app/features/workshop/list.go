// internal/app/features/workshop/list.go
package workshop

import (
	"net/http"
	"time"

	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/corsit/clubsite/internal/domain/models"
)

// teamEntry is one row of the grouped admin view. The leader entry carries
// payment and verification fields and is tagged isTeamHeader; member
// entries carry identity fields only and are tagged isTeamMember.
type teamEntry struct {
	ID         string `json:"id"`
	TeamNumber string `json:"team_number"`

	IsTeamHeader bool `json:"isTeamHeader,omitempty"`
	IsTeamMember bool `json:"isTeamMember,omitempty"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	USN   string `json:"usn"`
	Year  string `json:"year"`

	// Header-only fields.
	MembersCount    int                  `json:"members_count,omitempty"`
	PaymentStatus   models.PaymentStatus `json:"payment_status,omitempty"`
	PaymentVerified *bool                `json:"payment_verified,omitempty"`
	UTR             string               `json:"utr,omitempty"`
	ScreenshotURL   string               `json:"screenshot_url,omitempty"`
	RegisteredAt    *time.Time           `json:"registered_at,omitempty"`
}

type listResponse struct {
	Teams      map[string][]teamEntry `json:"teams"`
	Individual []teamEntry            `json:"individual"`
}

// groupByTeam reshapes the flat record set into the grouped-by-team view.
// It is a pure function of its input: no writes, safe to call repeatedly.
// A team number with no record is simply absent from the output.
func groupByTeam(regs []models.WorkshopRegistration) map[string][]teamEntry {
	teams := make(map[string][]teamEntry, len(regs))
	for _, reg := range regs {
		entries := make([]teamEntry, 0, 1+len(reg.Members))

		verified := reg.Payment.Verified
		registeredAt := reg.RegisteredAt
		entries = append(entries, teamEntry{
			ID:              reg.ID.Hex(),
			TeamNumber:      reg.TeamNumber,
			IsTeamHeader:    true,
			Name:            reg.Leader.Name,
			Email:           reg.Leader.Email,
			Phone:           reg.Leader.Phone,
			USN:             reg.Leader.USN,
			Year:            reg.Leader.Year,
			MembersCount:    reg.MembersCount,
			PaymentStatus:   reg.Payment.Status,
			PaymentVerified: &verified,
			UTR:             reg.Payment.UTR,
			ScreenshotURL:   reg.Payment.ScreenshotURL,
			RegisteredAt:    &registeredAt,
		})

		// Members are stored in slot order already; absent slots were
		// dropped at registration time.
		for _, m := range reg.Members {
			entries = append(entries, teamEntry{
				ID:           reg.ID.Hex(),
				TeamNumber:   reg.TeamNumber,
				IsTeamMember: true,
				Name:         m.Name,
				Email:        m.Email,
				Phone:        m.Phone,
				USN:          m.USN,
				Year:         m.Year,
			})
		}

		teams[reg.TeamNumber] = entries
	}
	return teams
}

// ServeList handles GET /workshop-registrations (admin only).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "registration list")
	defer cancel()

	regs, err := h.Repo.List(ctx)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "registration list", err)
		return
	}

	httpjson.Write(w, http.StatusOK, listResponse{
		Teams:      groupByTeam(regs),
		Individual: []teamEntry{},
	})
}
