// internal/app/features/workshop/register.go
package workshop

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	registrationstore "github.com/corsit/clubsite/internal/app/store/registrations"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/media"
	"github.com/corsit/clubsite/internal/app/system/normalize"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.uber.org/zap"
)

const (
	// allocRetries bounds the insert-retry loop that resolves team-number
	// races through the unique index. Each retry recomputes the maximum
	// from the true persisted state, so no number is ever consumed by a
	// failed attempt.
	allocRetries = 3

	// maxTeamSize includes the leader.
	maxTeamSize = 4

	screenshotField = "payment_screenshot"
)

var screenshotFormats = []string{"jpg", "jpeg", "png"}

// leaderFields are the required form fields, in the order they are
// reported back to the client when missing.
var leaderFields = [5]string{"name", "email", "phone", "usn", "year"}

type registerResponse struct {
	ID         string `json:"id"`
	TeamNumber string `json:"team_number"`
}

// ServeRegister handles POST /workshop-register. The body is a multipart
// form with the leader fields, up to three optional member field sets
// (member2_name ... member4_year), payment fields, and an optional
// payment-screenshot file.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "workshop registration")
	defer cancel()

	// Leave headroom above the screenshot limit for the text fields.
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(h.MaxUploadBytes + (1 << 20)); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "request body must be a multipart form within the size limit")
		return
	}

	reg, err := parseRegistrationForm(r)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "workshop registration", err)
		return
	}

	// Screenshot upload happens before the record write so a stored
	// registration always carries its proof URL.
	if url, err := h.uploadScreenshot(r); err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "payment screenshot upload", err)
		return
	} else if url != "" {
		reg.Payment.ScreenshotURL = url
	}

	// Allocate-and-insert: the unique index on team_number converts a
	// lost race into ErrDuplicateTeamNumber, and the retry recomputes
	// the maximum from persisted state.
	for attempt := 0; attempt < allocRetries; attempt++ {
		max, err := h.Repo.MaxTeamNumber(ctx)
		if err != nil {
			httpjson.WriteTaxonomy(w, h.Log, "team number lookup", err)
			return
		}
		reg.TeamNumber = formatTeamNumber(max + 1)

		err = h.Repo.Insert(ctx, reg)
		if err == nil {
			h.Log.Info("workshop registration created",
				zap.String("team_number", reg.TeamNumber),
				zap.Int("members_count", reg.MembersCount),
			)
			httpjson.Write(w, http.StatusCreated, registerResponse{
				ID:         reg.ID.Hex(),
				TeamNumber: reg.TeamNumber,
			})
			return
		}
		if errors.Is(err, registrationstore.ErrDuplicateTeamNumber) {
			h.Log.Warn("team number collision, retrying",
				zap.String("team_number", reg.TeamNumber),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		httpjson.WriteTaxonomy(w, h.Log, "workshop registration insert", err)
		return
	}

	httpjson.WriteTaxonomy(w, h.Log, "workshop registration",
		fmt.Errorf("team number allocation exhausted %d attempts", allocRetries))
}

// parseRegistrationForm validates the leader fields and normalizes the
// optional member slots. It rejects before any write occurs.
func parseRegistrationForm(r *http.Request) (*models.WorkshopRegistration, error) {
	field := func(name string) string { return normalize.Field(r.FormValue(name)) }

	leader := models.TeamMember{
		Name:  normalize.Name(r.FormValue("name")),
		Email: normalize.Email(r.FormValue("email")),
		Phone: field("phone"),
		USN:   field("usn"),
		Year:  field("year"),
	}
	for _, f := range leaderFields {
		if normalize.Field(r.FormValue(f)) == "" {
			return nil, httpjson.Validationf("missing required leader field %q", f)
		}
	}

	status := models.PaymentStatus(strings.ToLower(field("payment_status")))
	if status == "" {
		status = models.PaymentUnpaid
	}
	if !models.IsValidPaymentStatus(status) {
		return nil, httpjson.Validationf("payment_status must be %q or %q", models.PaymentPaid, models.PaymentUnpaid)
	}

	reg := &models.WorkshopRegistration{
		Leader:  leader,
		Members: collectMembers(r),
		Payment: models.Payment{
			Status: status,
			UTR:    field("utr"),
		},
	}
	reg.MembersCount = 1 + len(reg.Members)
	if reg.MembersCount > maxTeamSize {
		return nil, httpjson.Validationf("a team may have at most %d members", maxTeamSize)
	}
	return reg, nil
}

// collectMembers reads the optional slots 2-4. A slot counts only when
// all five of its fields are supplied and non-empty; partially filled
// slots are treated as absent and not stored at all.
func collectMembers(r *http.Request) []models.TeamMember {
	var members []models.TeamMember
	for slot := 2; slot <= maxTeamSize; slot++ {
		prefix := fmt.Sprintf("member%d_", slot)
		m := models.TeamMember{
			Name:  normalize.Name(r.FormValue(prefix + "name")),
			Email: normalize.Email(r.FormValue(prefix + "email")),
			Phone: normalize.Field(r.FormValue(prefix + "phone")),
			USN:   normalize.Field(r.FormValue(prefix + "usn")),
			Year:  normalize.Field(r.FormValue(prefix + "year")),
		}
		if m.Complete() {
			members = append(members, m)
		}
	}
	return members
}

// uploadScreenshot sends the optional payment screenshot to the media
// store and returns the durable URL, or "" when no file was attached.
func (h *Handler) uploadScreenshot(r *http.Request) (string, error) {
	file, header, err := r.FormFile(screenshotField)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", httpjson.Validationf("unreadable %s upload", screenshotField)
	}
	defer file.Close()

	if err := media.CheckFormat(header.Filename, screenshotFormats); err != nil {
		return "", httpjson.Validationf("payment screenshot: %v", err)
	}
	if header.Size > h.MaxUploadBytes {
		return "", httpjson.Validationf("payment screenshot exceeds the %d MB limit", h.MaxUploadBytes>>20)
	}
	if h.Media == nil {
		return "", errors.New("media storage is not configured")
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "screenshot upload")
	defer cancel()

	return h.Media.Upload(ctx, file, header.Filename, media.UploadOptions{
		Folder:         h.ScreenshotFolder,
		AllowedFormats: screenshotFormats,
		MaxBytes:       h.MaxUploadBytes,
		Transformation: "c_limit,w_1600",
	})
}

// formatTeamNumber renders the persisted two-digit zero-padded identifier.
func formatTeamNumber(n int) string {
	return fmt.Sprintf("%02d", n)
}
