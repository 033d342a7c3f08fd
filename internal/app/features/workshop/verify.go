// internal/app/features/workshop/verify.go
package workshop

import (
	"errors"
	"net/http"

	registrationstore "github.com/corsit/clubsite/internal/app/store/registrations"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type verifyRequest struct {
	PaymentVerified bool `json:"payment_verified"`
}

// ServeVerify handles PUT /workshop-registrations/{id}/verify (admin only).
// It updates exactly the payment-verified flag on exactly one record and
// returns the updated registration.
func (h *Handler) ServeVerify(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "registration not found")
		return
	}

	var req verifyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "body must be {\"payment_verified\": true|false}")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "verification toggle")
	defer cancel()

	reg, err := h.Repo.SetVerified(ctx, id, req.PaymentVerified)
	if err != nil {
		if errors.Is(err, registrationstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "registration not found")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "verification toggle", err)
		return
	}

	h.Log.Info("payment verification updated",
		zap.String("registration_id", id.Hex()),
		zap.Bool("verified", req.PaymentVerified),
	)
	httpjson.Write(w, http.StatusOK, reg)
}
