package handlers

import (
	"net/http"

	"github.com/ghuser/provchain/pkg/errhttp"
	"github.com/ghuser/provchain/pkg/httpx"
	appsvcs "github.com/ghuser/provchain/services/ledger/application/services"
)

// StatsResponse is the ledger-wide aggregate.
type StatsResponse struct {
	TotalItems       int64 `json:"total_items"       example:"42"`
	TotalTransitions int64 `json:"total_transitions" example:"131"`
	TotalValue       int64 `json:"total_value"       example:"1250000"`
	ActiveItems      int64 `json:"active_items"      example:"17"`
} // @name StatsResponse

// GetStatsHandler handles GET /ledger/stats requests.
type GetStatsHandler struct {
	svc *appsvcs.Services
}

// NewGetStatsHandler returns a GetStatsHandler backed by the given services.
func NewGetStatsHandler(svc *appsvcs.Services) *GetStatsHandler {
	return &GetStatsHandler{svc: svc}
}

// Execute returns aggregate statistics over all items.
//
//	@Summary		Ledger stats
//	@Description	Returns total items, transitions, total value (Σ accumulated_cost × quantity) and active item count
//	@Tags			ledger
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Router			/ledger/stats [get]
func (h *GetStatsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Query.Stats(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, StatsResponse{
		TotalItems:       stats.TotalItems,
		TotalTransitions: stats.TotalTransitions,
		TotalValue:       stats.TotalValue,
		ActiveItems:      stats.ActiveItems,
	})
}
