package models

import "testing"

func validOrigin() Origin {
	return Origin{
		Label:        "Alba Farms",
		ProducedOn:   "2026-08-12",
		QualityGrade: "A",
		Location:     "Piedmont, IT",
	}
}

func TestNewItem(t *testing.T) {
	item, err := NewItem("A-1", "White truffle crate", 100, 2500, validOrigin(), "producer:alba-farms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.Stage != StageRegistered {
		t.Errorf("expected StageRegistered, got %v", item.Stage)
	}
	if item.AccumulatedCost != item.BaseCost {
		t.Errorf("accumulated cost %d should equal base cost %d at registration", item.AccumulatedCost, item.BaseCost)
	}
	if item.Transitions != 1 {
		t.Errorf("expected transitions=1 (registration entry), got %d", item.Transitions)
	}
	if len(item.Holders) != 0 {
		t.Errorf("no stage should be claimed at registration, got %v", item.Holders)
	}
	if item.RegisteredAt.IsZero() {
		t.Error("RegisteredAt should be set")
	}
}

func TestNewItem_Validation(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		descriptor string
		quantity   int64
		baseCost   int64
		actor      string
	}{
		{"empty id", "", "Crate", 10, 100, "producer:x"},
		{"whitespace id", "   ", "Crate", 10, 100, "producer:x"},
		{"empty descriptor", "A-1", "", 10, 100, "producer:x"},
		{"zero quantity", "A-1", "Crate", 0, 100, "producer:x"},
		{"negative quantity", "A-1", "Crate", -5, 100, "producer:x"},
		{"zero base cost", "A-1", "Crate", 10, 0, "producer:x"},
		{"negative base cost", "A-1", "Crate", 10, -200, "producer:x"},
		{"empty actor", "A-1", "Crate", 10, 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewItem(tt.id, tt.descriptor, tt.quantity, tt.baseCost, validOrigin(), tt.actor); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestItem_Holder(t *testing.T) {
	item, _ := NewItem("A-1", "Crate", 10, 100, validOrigin(), "producer:x")

	if _, ok := item.Holder(StageInTransit); ok {
		t.Fatal("unclaimed stage should report ok=false")
	}

	item.Holders[StageInTransit] = "hauler:alpine-freight"
	actor, ok := item.Holder(StageInTransit)
	if !ok || actor != "hauler:alpine-freight" {
		t.Fatalf("expected hauler:alpine-freight, got %q (ok=%v)", actor, ok)
	}
}

func TestItem_Clone(t *testing.T) {
	item, _ := NewItem("A-1", "Crate", 10, 100, validOrigin(), "producer:x")
	item.Holders[StageInTransit] = "hauler:alpine-freight"

	cp := item.Clone()
	cp.Stage = StageDelivered
	cp.AccumulatedCost = 9999
	cp.Holders[StageDelivered] = "buyer:someone"

	if item.Stage != StageRegistered {
		t.Error("clone mutation leaked into original stage")
	}
	if item.AccumulatedCost != 100 {
		t.Error("clone mutation leaked into original cost")
	}
	if _, ok := item.Holders[StageDelivered]; ok {
		t.Error("clone holder map shares storage with original")
	}
	if item.Holders[StageInTransit] != "hauler:alpine-freight" {
		t.Error("clone did not copy existing holders")
	}
}
