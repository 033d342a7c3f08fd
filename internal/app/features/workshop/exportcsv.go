// internal/app/features/workshop/exportcsv.go
package workshop

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.uber.org/zap"
)

// csvHeader is the bulk-export header row. "Team No" is a positional
// 1-based index in the registration-time-descending order, a display
// renumbering that is intentionally distinct from the persisted
// team_number identifier.
var csvHeader = []string{
	"Team No", "Role", "Name", "Email", "Phone", "USN", "Year",
	"Payment Status", "Payment Verified", "UTR Number", "Registered At",
}

// ServeExportCSV handles GET /workshop-registrations/export-all (admin
// only). The export is a read-only view of current persisted state.
func (h *Handler) ServeExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "registration CSV export")
	defer cancel()

	regs, err := h.Repo.List(ctx)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "registration CSV export", err)
		return
	}

	filename := fmt.Sprintf("workshop_registrations_%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM for Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		h.Log.Error("CSV write failed (BOM)", zap.Error(err))
		return
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		h.Log.Error("CSV write failed (header)", zap.Error(err))
		return
	}

	for _, row := range buildCSVRows(regs) {
		if err := cw.Write(row); err != nil {
			h.Log.Error("CSV write failed (row)", zap.Error(err))
			return
		}
	}

	h.Log.Info("registration CSV exported", zap.Int("registrations", len(regs)))
}

// buildCSVRows renders the record set as delimited rows. Exactly one
// Leader row per registration; member rows carry identity fields only,
// with the payment and date columns empty. Because absent member slots
// are never stored, a leader-only registration emits no member rows.
func buildCSVRows(regs []models.WorkshopRegistration) [][]string {
	rows := make([][]string, 0, len(regs)*2)
	for i, reg := range regs {
		teamNo := strconv.Itoa(i + 1)

		rows = append(rows, []string{
			teamNo,
			"Leader",
			sanitizeCSVField(reg.Leader.Name),
			reg.Leader.Email,
			sanitizeCSVField(reg.Leader.Phone),
			sanitizeCSVField(reg.Leader.USN),
			sanitizeCSVField(reg.Leader.Year),
			paymentStatusLabel(reg.Payment.Status),
			yesNo(reg.Payment.Verified),
			sanitizeCSVField(reg.Payment.UTR),
			reg.RegisteredAt.Format("2006-01-02"),
		})

		for _, m := range reg.Members {
			rows = append(rows, []string{
				teamNo,
				"Member",
				sanitizeCSVField(m.Name),
				m.Email,
				sanitizeCSVField(m.Phone),
				sanitizeCSVField(m.USN),
				sanitizeCSVField(m.Year),
				"", "", "", "",
			})
		}
	}
	return rows
}

func paymentStatusLabel(s models.PaymentStatus) string {
	switch s {
	case models.PaymentPaid:
		return "Paid"
	case models.PaymentUnpaid:
		return "Unpaid"
	}
	return string(s)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// sanitizeCSVField prevents CSV formula injection.
func sanitizeCSVField(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}
