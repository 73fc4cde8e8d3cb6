package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/provchain/pkg/auth"
	appsvcs "github.com/ghuser/provchain/services/ledger/application/services"
	"github.com/ghuser/provchain/services/ledger/infrastructure/persistence/memory"
)

// newTestRouter builds the ledger routes over an in-memory repository, with
// a stub auth middleware that injects the actor from the X-Test-Actor header.
func newTestRouter() *chi.Mux {
	repo := memory.NewLedgerRepository()
	svcs := &appsvcs.Services{
		Ledger: appsvcs.NewLedgerService(repo),
		Query:  appsvcs.NewQueryService(repo),
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if actor := req.Header.Get("X-Test-Actor"); actor != "" {
				req = req.WithContext(auth.WithActor(req.Context(), actor))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/ledger", func(r chi.Router) {
		r.Get("/stats", NewGetStatsHandler(svcs).Execute)
		r.Route("/items", func(r chi.Router) {
			r.Post("/", NewPostRegisterHandler(svcs).Execute)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", NewGetItemHandler(svcs).Execute)
				r.Get("/history", NewGetHistoryHandler(svcs).Execute)
				r.Get("/verify", NewGetVerifyHandler(svcs).Execute)
				r.Post("/advance", NewPostAdvanceHandler(svcs).Execute)
				r.Post("/deliver", NewPostDeliverHandler(svcs).Execute)
			})
		})
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, actor string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set("X-Test-Actor", actor)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func registerBody(id string) RegisterItemRequest {
	return RegisterItemRequest{
		ID:         id,
		Descriptor: "White truffle crate",
		Quantity:   100,
		BaseCost:   2500,
		Origin: OriginPayload{
			Label:        "Alba Farms",
			ProducedOn:   "2026-08-12",
			QualityGrade: "A",
			Location:     "Piedmont, IT",
		},
	}
}

func TestPostRegister(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	item := decode[ItemResponse](t, w)
	if item.ID != "A-1" || item.Stage != "Registered" || item.AccumulatedCost != 2500 {
		t.Fatalf("unexpected response: %+v", item)
	}
	if item.RegisteredBy != "producer:alba-farms" {
		t.Fatalf("caller should be the origin party, got %q", item.RegisteredBy)
	}
	if item.Transitions != 1 {
		t.Fatalf("registration counts as one transition, got %d", item.Transitions)
	}
}

func TestPostRegister_Unauthorized(t *testing.T) {
	router := newTestRouter()
	w := doJSON(t, router, http.MethodPost, "/ledger/items", "", registerBody("A-1"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPostRegister_Duplicate(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))

	w := doJSON(t, router, http.MethodPost, "/ledger/items", "producer:other", registerBody("A-1"))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPostRegister_ValidationFailure(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name string
		body RegisterItemRequest
	}{
		{"missing id", RegisterItemRequest{Descriptor: "Crate", Quantity: 1, BaseCost: 1}},
		{"missing descriptor", RegisterItemRequest{ID: "A-1", Quantity: 1, BaseCost: 1}},
		{"zero quantity", RegisterItemRequest{ID: "A-1", Descriptor: "Crate", BaseCost: 1}},
		{"negative base cost", RegisterItemRequest{ID: "A-1", Descriptor: "Crate", Quantity: 1, BaseCost: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/ledger/items", "producer:x", tt.body)
			if w.Code != http.StatusBadRequest && w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 400/422, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestPostAdvance(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))

	w := doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "hauler:alpine-freight", AdvanceItemRequest{
		ExpectedStage: "Registered",
		CostAddition:  300,
		Note:          "cold chain pickup",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	item := decode[ItemResponse](t, w)
	if item.Stage != "InTransit" || item.AccumulatedCost != 2800 {
		t.Fatalf("unexpected response: %+v", item)
	}
	if item.Holders["InTransit"] != "hauler:alpine-freight" {
		t.Fatalf("caller should hold the new stage: %+v", item.Holders)
	}
}

func TestPostAdvance_Failures(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))

	t.Run("unknown item", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/ledger/items/missing/advance", "hauler:x", AdvanceItemRequest{ExpectedStage: "Registered"})
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("unknown stage tag", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "hauler:x", AdvanceItemRequest{ExpectedStage: "Shipped"})
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("no auth", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "", AdvanceItemRequest{ExpectedStage: "Registered"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("stale expected stage", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "hauler:x", AdvanceItemRequest{ExpectedStage: "Registered", CostAddition: 300})
		if w.Code != http.StatusOK {
			t.Fatalf("first advance: expected 200, got %d", w.Code)
		}
		w = doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "hauler:y", AdvanceItemRequest{ExpectedStage: "Registered", CostAddition: 300})
		if w.Code != http.StatusConflict {
			t.Fatalf("replay: expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPostDeliver(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))
	doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "hauler:x", AdvanceItemRequest{ExpectedStage: "Registered", CostAddition: 300})
	doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "seller:x", AdvanceItemRequest{ExpectedStage: "InTransit", CostAddition: 500})

	w := doJSON(t, router, http.MethodPost, "/ledger/items/A-1/deliver", "buyer:casa-rossi", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	item := decode[ItemResponse](t, w)
	if item.Stage != "Delivered" || item.AccumulatedCost != 3300 {
		t.Fatalf("unexpected response: %+v", item)
	}

	// A delivered item is terminal.
	w = doJSON(t, router, http.MethodPost, "/ledger/items/A-1/deliver", "buyer:again", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("re-delivery: expected 409, got %d", w.Code)
	}
}

func TestPostDeliver_TooEarly(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))

	w := doJSON(t, router, http.MethodPost, "/ledger/items/A-1/deliver", "buyer:x", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetItem(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))

	w := doJSON(t, router, http.MethodGet, "/ledger/items/A-1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	item := decode[ItemResponse](t, w)
	if item.ID != "A-1" || item.Origin.Label != "Alba Farms" {
		t.Fatalf("unexpected response: %+v", item)
	}

	w = doJSON(t, router, http.MethodGet, "/ledger/items/missing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetHistory(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))
	doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "hauler:x", AdvanceItemRequest{ExpectedStage: "Registered", CostAddition: 300})

	w := doJSON(t, router, http.MethodGet, "/ledger/items/A-1/history", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	hist := decode[HistoryResponse](t, w)
	if hist.ItemID != "A-1" || len(hist.Entries) != 2 {
		t.Fatalf("unexpected response: %+v", hist)
	}
	if hist.Entries[0].Action != "Registered" || hist.Entries[1].Action != "AdvancedToTransit" {
		t.Fatalf("unexpected actions: %+v", hist.Entries)
	}
	if hist.Entries[1].PriceAfter != 2800 || hist.Entries[1].Seq != 1 {
		t.Fatalf("unexpected second entry: %+v", hist.Entries[1])
	}

	w = doJSON(t, router, http.MethodGet, "/ledger/items/missing/history", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetVerify(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))
	doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "hauler:x", AdvanceItemRequest{ExpectedStage: "Registered", CostAddition: 300})

	w := doJSON(t, router, http.MethodGet, "/ledger/items/A-1/verify", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	report := decode[VerifyResponse](t, w)
	if !report.Verified || report.StepCount != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Actors) != 2 || report.Actors[1] != "hauler:x" {
		t.Fatalf("unexpected actors: %+v", report.Actors)
	}

	w = doJSON(t, router, http.MethodGet, "/ledger/items/missing/verify", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("A-1"))
	doJSON(t, router, http.MethodPost, "/ledger/items", "producer:alba-farms", registerBody("B-1"))
	doJSON(t, router, http.MethodPost, "/ledger/items/A-1/advance", "hauler:x", AdvanceItemRequest{ExpectedStage: "Registered", CostAddition: 300})

	w := doJSON(t, router, http.MethodGet, "/ledger/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	stats := decode[StatsResponse](t, w)
	if stats.TotalItems != 2 || stats.TotalTransitions != 3 || stats.ActiveItems != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if want := int64(2800*100 + 2500*100); stats.TotalValue != want {
		t.Fatalf("TotalValue = %d, want %d", stats.TotalValue, want)
	}
}
