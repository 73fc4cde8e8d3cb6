package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/provchain/pkg/errhttp"
	"github.com/ghuser/provchain/pkg/httpx"
	appsvcs "github.com/ghuser/provchain/services/ledger/application/services"
)

// VerifyResponse is the structured authenticity verdict for one item.
type VerifyResponse struct {
	ItemID     string      `json:"item_id"    example:"A-1"`
	Verified   bool        `json:"verified"   example:"true"`
	StepCount  int         `json:"step_count" example:"4"`
	Actors     []string    `json:"actors"`
	Actions    []string    `json:"actions"`
	Timestamps []time.Time `json:"timestamps"`
} // @name VerifyResponse

// GetVerifyHandler handles GET /ledger/items/{id}/verify requests.
type GetVerifyHandler struct {
	svc *appsvcs.Services
}

// NewGetVerifyHandler returns a GetVerifyHandler backed by the given services.
func NewGetVerifyHandler(svc *appsvcs.Services) *GetVerifyHandler {
	return &GetVerifyHandler{svc: svc}
}

// Execute recomputes the item's accumulated cost from its trail and reports
// whether it matches the stored head.
//
//	@Summary		Verify item
//	@Description	Recomputes the provenance trail and returns the authenticity verdict
//	@Tags			ledger
//	@Produce		json
//	@Param			id	path		string	true	"Item id"
//	@Success		200	{object}	VerifyResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/ledger/items/{id}/verify [get]
func (h *GetVerifyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := h.svc.Query.Verify(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	actions := make([]string, len(report.Actions))
	for i, a := range report.Actions {
		actions[i] = string(a)
	}
	httpx.JSON(w, http.StatusOK, VerifyResponse{
		ItemID:     id,
		Verified:   report.Verified,
		StepCount:  report.StepCount,
		Actors:     report.Actors,
		Actions:    actions,
		Timestamps: report.Timestamps,
	})
}
