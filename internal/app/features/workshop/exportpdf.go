// internal/app/features/workshop/exportpdf.go
package workshop

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	registrationstore "github.com/corsit/clubsite/internal/app/store/registrations"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/corsit/clubsite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeExportPDF handles GET /workshop-registrations/export/{id} (admin
// only). The document is rendered fully in memory first so a render
// failure can still produce a clean 500 before any headers are written.
func (h *Handler) ServeExportPDF(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "registration not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "registration PDF export")
	defer cancel()

	reg, err := h.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, registrationstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "registration not found")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "registration PDF export", err)
		return
	}

	var buf bytes.Buffer
	if err := renderRegistrationPDF(&buf, reg); err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "registration PDF render", err)
		return
	}

	filename := fmt.Sprintf("registration-%s.pdf", reg.ID.Hex())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Log.Error("PDF write failed", zap.Error(err))
		return
	}

	h.Log.Info("registration PDF exported", zap.String("registration_id", reg.ID.Hex()))
}

// renderRegistrationPDF writes the single-record document: title,
// team-size line, leader block, payment block (UTR only when paid),
// member blocks, and a date-only footer.
func renderRegistrationPDF(w io.Writer, reg *models.WorkshopRegistration) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Workshop Registration", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Workshop Registration", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Team %s  |  %d of %d members", reg.TeamNumber, reg.MembersCount, maxTeamSize),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeMemberBlock(pdf, "Team Leader", reg.Leader)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, "Payment", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	writeField(pdf, "Status", paymentStatusLabel(reg.Payment.Status))
	writeField(pdf, "Verified", yesNo(reg.Payment.Verified))
	if reg.Payment.Status == models.PaymentPaid {
		writeField(pdf, "UTR Number", reg.Payment.UTR)
	}
	pdf.Ln(3)

	for i, m := range reg.Members {
		writeMemberBlock(pdf, fmt.Sprintf("Member %d", i+2), m)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6,
		"Registered on "+reg.RegisteredAt.Format("02 Jan 2006"),
		"", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func writeMemberBlock(pdf *gofpdf.Fpdf, heading string, m models.TeamMember) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, heading, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	writeField(pdf, "Name", m.Name)
	writeField(pdf, "Email", m.Email)
	writeField(pdf, "Phone", m.Phone)
	writeField(pdf, "USN", m.USN)
	writeField(pdf, "Year", m.Year)
	pdf.Ln(3)
}

func writeField(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}
