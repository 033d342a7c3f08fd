package workshop

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/corsit/clubsite/internal/domain/models"
	"github.com/corsit/clubsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildCSVRows(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	regs := []models.WorkshopRegistration{
		sampleRegistration("07", 1, now),
		sampleRegistration("03", 0, now.Add(-time.Hour)),
	}
	regs[0].Payment.Verified = true

	rows := buildCSVRows(regs)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (leader+member, leader)", len(rows))
	}

	// Positional numbering over the export ordering, not the persisted
	// team numbers 07 and 03.
	if rows[0][0] != "1" || rows[1][0] != "1" || rows[2][0] != "2" {
		t.Errorf("got Team No column %q %q %q, want 1 1 2", rows[0][0], rows[1][0], rows[2][0])
	}

	leader := rows[0]
	if leader[1] != "Leader" {
		t.Errorf("got role %q, want Leader", leader[1])
	}
	if leader[7] != "Paid" || leader[8] != "Yes" {
		t.Errorf("got payment columns %q %q, want Paid Yes", leader[7], leader[8])
	}
	if leader[10] != "2025-03-15" {
		t.Errorf("got registered-at %q, want 2025-03-15", leader[10])
	}

	member := rows[1]
	if member[1] != "Member" {
		t.Errorf("got role %q, want Member", member[1])
	}
	for col := 7; col <= 10; col++ {
		if member[col] != "" {
			t.Errorf("member row column %d must be empty, got %q", col, member[col])
		}
	}

	// Leader-only registration emits no member rows.
	if rows[2][1] != "Leader" {
		t.Errorf("got role %q for leader-only registration, want Leader", rows[2][1])
	}
}

func TestBuildCSVRows_FormulaInjection(t *testing.T) {
	reg := sampleRegistration("01", 0, time.Now())
	reg.Leader.Name = "=HYPERLINK(\"http://evil\")"
	rows := buildCSVRows([]models.WorkshopRegistration{reg})
	if !strings.HasPrefix(rows[0][2], "'=") {
		t.Errorf("got name cell %q, want leading quote guard", rows[0][2])
	}
}

func TestServeExportCSV(t *testing.T) {
	repo := testutil.NewRegistrationRepo()
	repo.Seed(sampleRegistration("01", 1, time.Now()))
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/workshop-registrations/export-all", nil)
	rec := httptest.NewRecorder()
	h.ServeExportCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("got Content-Type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("got Content-Disposition %q, want attachment", cd)
	}

	body := rec.Body.Bytes()
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("export must start with a UTF-8 BOM")
	}

	records, err := csv.NewReader(bytes.NewReader(body[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse exported CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d CSV records, want 3 (header + leader + member)", len(records))
	}
	if records[0][0] != "Team No" || records[0][1] != "Role" {
		t.Errorf("unexpected header row: %v", records[0])
	}
}

func TestServeExportCSV_Empty(t *testing.T) {
	repo := testutil.NewRegistrationRepo()
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/workshop-registrations/export-all", nil)
	rec := httptest.NewRecorder()
	h.ServeExportCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes()[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse exported CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("empty export must still carry the header row, got %d records", len(records))
	}
}

func TestServeExportPDF(t *testing.T) {
	repo := testutil.NewRegistrationRepo()
	seed := sampleRegistration("01", 2, time.Now())
	repo.Seed(seed)
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/workshop-registrations/export/"+seed.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", seed.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeExportPDF(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("got Content-Type %q, want application/pdf", ct)
	}
	wantName := "registration-" + seed.ID.Hex() + ".pdf"
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Errorf("got Content-Disposition %q, want filename %q", cd, wantName)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body must be a PDF document")
	}
}

func TestServeExportPDF_UnknownID(t *testing.T) {
	repo := testutil.NewRegistrationRepo()
	h := newTestHandler(repo, nil)

	unknown := primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodGet, "/workshop-registrations/export/"+unknown, nil)
	req = testutil.WithChiURLParam(req, "id", unknown)
	rec := httptest.NewRecorder()
	h.ServeExportPDF(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}
