package handlers

import (
	"time"

	"github.com/ghuser/provchain/services/ledger/domain/models"
)

// OriginPayload carries the free-text provenance metadata fixed at registration.
type OriginPayload struct {
	Label        string `json:"label"         validate:"max=255"        example:"Alba Farms"`
	ProducedOn   string `json:"produced_on"   validate:"max=64"         example:"2026-08-12"`
	QualityGrade string `json:"quality_grade" validate:"max=64"         example:"A"`
	Location     string `json:"location"      validate:"max=255"        example:"Piedmont, IT"`
} // @name OriginPayload

// ItemResponse is the item head returned by every successful write and by GET.
type ItemResponse struct {
	ID              string            `json:"id"               example:"A-1"`
	Descriptor      string            `json:"descriptor"       example:"White truffle crate"`
	Quantity        int64             `json:"quantity"         example:"100"`
	BaseCost        int64             `json:"base_cost"        example:"2500"`
	AccumulatedCost int64             `json:"accumulated_cost" example:"3300"`
	Stage           string            `json:"stage"            example:"InTransit"`
	Origin          OriginPayload     `json:"origin"`
	Holders         map[string]string `json:"holders"`
	RegisteredBy    string            `json:"registered_by"    example:"producer:alba-farms"`
	RegisteredAt    time.Time         `json:"registered_at"    example:"2026-08-12T10:30:00Z"`
	Transitions     int               `json:"transitions"      example:"2"`
} // @name ItemResponse

// HistoryEntryResponse is one audit-trail record.
type HistoryEntryResponse struct {
	ItemID      string    `json:"item_id"      example:"A-1"`
	Actor       string    `json:"actor"        example:"hauler:alpine-freight"`
	Action      string    `json:"action"       example:"AdvancedToTransit"`
	PriceAfter  int64     `json:"price_after"  example:"2800"`
	Note        string    `json:"note"         example:"cold chain pickup"`
	Seq         int       `json:"seq"          example:"1"`
	CommitOrder int64     `json:"commit_order" example:"17"`
	RecordedAt  time.Time `json:"recorded_at"  example:"2026-08-13T08:00:00Z"`
} // @name HistoryEntryResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	holders := make(map[string]string, len(item.Holders))
	for stage, actor := range item.Holders {
		holders[stage.String()] = actor
	}
	return ItemResponse{
		ID:              item.ID,
		Descriptor:      item.Descriptor,
		Quantity:        item.Quantity,
		BaseCost:        item.BaseCost,
		AccumulatedCost: item.AccumulatedCost,
		Stage:           item.Stage.String(),
		Origin: OriginPayload{
			Label:        item.Origin.Label,
			ProducedOn:   item.Origin.ProducedOn,
			QualityGrade: item.Origin.QualityGrade,
			Location:     item.Origin.Location,
		},
		Holders:      holders,
		RegisteredBy: item.RegisteredBy,
		RegisteredAt: item.RegisteredAt,
		Transitions:  item.Transitions,
	}
}

func toHistoryResponse(entries []*models.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntryResponse{
			ItemID:      e.ItemID,
			Actor:       e.Actor,
			Action:      string(e.Action),
			PriceAfter:  e.PriceAfter,
			Note:        e.Note,
			Seq:         e.Seq,
			CommitOrder: e.CommitOrder,
			RecordedAt:  e.RecordedAt,
		}
	}
	return out
}
