package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/provchain/pkg/errhttp"
	"github.com/ghuser/provchain/pkg/httpx"
	appsvcs "github.com/ghuser/provchain/services/ledger/application/services"
)

// HistoryResponse wraps the item's audit trail.
type HistoryResponse struct {
	ItemID  string                 `json:"item_id" example:"A-1"`
	Entries []HistoryEntryResponse `json:"entries"`
} // @name HistoryResponse

// GetHistoryHandler handles GET /ledger/items/{id}/history requests.
type GetHistoryHandler struct {
	svc *appsvcs.Services
}

// NewGetHistoryHandler returns a GetHistoryHandler backed by the given services.
func NewGetHistoryHandler(svc *appsvcs.Services) *GetHistoryHandler {
	return &GetHistoryHandler{svc: svc}
}

// Execute returns the item's full audit trail in commit order.
//
//	@Summary		Get item history
//	@Description	Returns the append-only audit trail for an item, ordered by commit order
//	@Tags			ledger
//	@Produce		json
//	@Param			id	path		string	true	"Item id"
//	@Success		200	{object}	HistoryResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/ledger/items/{id}/history [get]
func (h *GetHistoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entries, err := h.svc.Query.GetHistory(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, HistoryResponse{ItemID: id, Entries: toHistoryResponse(entries)})
}
