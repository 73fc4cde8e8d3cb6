package handlers

import (
	"net/http"

	"github.com/ghuser/provchain/pkg/auth"
	"github.com/ghuser/provchain/pkg/errhttp"
	"github.com/ghuser/provchain/pkg/httpx"
	pkgvalidator "github.com/ghuser/provchain/pkg/validator"
	appsvcs "github.com/ghuser/provchain/services/ledger/application/services"
	"github.com/ghuser/provchain/services/ledger/domain/models"
)

// RegisterItemRequest is the request body for POST /ledger/items.
// The id comes from the external identifier supplier; the engine only checks
// uniqueness and non-emptiness.
type RegisterItemRequest struct {
	ID         string        `json:"id"         validate:"required,min=1,max=128" example:"A-1"`
	Descriptor string        `json:"descriptor" validate:"required,min=1,max=255" example:"White truffle crate"`
	Quantity   int64         `json:"quantity"   validate:"required,gt=0"          example:"100"`
	BaseCost   int64         `json:"base_cost"  validate:"required,gt=0"          example:"2500"`
	Origin     OriginPayload `json:"origin"`
} // @name RegisterItemRequest

// PostRegisterHandler handles POST /ledger/items requests.
type PostRegisterHandler struct {
	svc *appsvcs.Services
}

// NewPostRegisterHandler returns a PostRegisterHandler backed by the given services.
func NewPostRegisterHandler(svc *appsvcs.Services) *PostRegisterHandler {
	return &PostRegisterHandler{svc: svc}
}

// Execute registers a new tracked item.
//
//	@Summary		Register item
//	@Description	Registers a new tracked item at stage Registered; the caller becomes the origin party
//	@Tags			ledger
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterItemRequest	true	"Registration request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/ledger/items [post]
func (h *PostRegisterHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RegisterItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Ledger.Register(r.Context(), appsvcs.RegisterParams{
		ID:         req.ID,
		Descriptor: req.Descriptor,
		Quantity:   req.Quantity,
		BaseCost:   req.BaseCost,
		Origin: models.Origin{
			Label:        req.Origin.Label,
			ProducedOn:   req.Origin.ProducedOn,
			QualityGrade: req.Origin.QualityGrade,
			Location:     req.Origin.Location,
		},
	}, actor)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
