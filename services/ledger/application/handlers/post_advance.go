package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/provchain/pkg/auth"
	"github.com/ghuser/provchain/pkg/errhttp"
	"github.com/ghuser/provchain/pkg/httpx"
	pkgvalidator "github.com/ghuser/provchain/pkg/validator"
	appsvcs "github.com/ghuser/provchain/services/ledger/application/services"
	"github.com/ghuser/provchain/services/ledger/domain/models"
)

// AdvanceItemRequest is the request body for POST /ledger/items/{id}/advance.
// ExpectedStage is the caller's view of the current stage; it doubles as an
// optimistic concurrency token.
type AdvanceItemRequest struct {
	ExpectedStage string `json:"expected_stage" validate:"required"      example:"Registered"`
	CostAddition  int64  `json:"cost_addition"  validate:"gte=0"         example:"300"`
	Note          string `json:"note"           validate:"max=1024"      example:"cold chain pickup"`
} // @name AdvanceItemRequest

// PostAdvanceHandler handles POST /ledger/items/{id}/advance requests.
type PostAdvanceHandler struct {
	svc *appsvcs.Services
}

// NewPostAdvanceHandler returns a PostAdvanceHandler backed by the given services.
func NewPostAdvanceHandler(svc *appsvcs.Services) *PostAdvanceHandler {
	return &PostAdvanceHandler{svc: svc}
}

// Execute advances an item exactly one stage; the caller becomes the holder
// of the new stage.
//
//	@Summary		Advance item
//	@Description	Advances an item one stage forward (Registered→InTransit or InTransit→AvailableForSale), accumulating the cost addition
//	@Tags			ledger
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Item id"
//	@Param			request	body		AdvanceItemRequest	true	"Advance request"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/ledger/items/{id}/advance [post]
func (h *PostAdvanceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[AdvanceItemRequest](w, r)
	if !ok {
		return
	}

	expected, err := models.ParseStage(req.ExpectedStage)
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	item, err := h.svc.Ledger.Advance(r.Context(), chi.URLParam(r, "id"), expected, req.CostAddition, req.Note, actor)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
