package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/provchain/pkg/auth"
	"github.com/ghuser/provchain/pkg/errhttp"
	"github.com/ghuser/provchain/pkg/httpx"
	appsvcs "github.com/ghuser/provchain/services/ledger/application/services"
)

// PostDeliverHandler handles POST /ledger/items/{id}/deliver requests.
type PostDeliverHandler struct {
	svc *appsvcs.Services
}

// NewPostDeliverHandler returns a PostDeliverHandler backed by the given services.
func NewPostDeliverHandler(svc *appsvcs.Services) *PostDeliverHandler {
	return &PostDeliverHandler{svc: svc}
}

// Execute marks an item delivered, the terminal stage.
//
//	@Summary		Deliver item
//	@Description	Marks an AvailableForSale item as Delivered; no cost change, item becomes read-only
//	@Tags			ledger
//	@Produce		json
//	@Param			id	path		string	true	"Item id"
//	@Success		200	{object}	ItemResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/ledger/items/{id}/deliver [post]
func (h *PostDeliverHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	item, err := h.svc.Ledger.Deliver(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
