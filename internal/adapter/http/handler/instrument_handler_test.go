package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

type instrumentServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateInstrumentInput) (*usecase.InstrumentDetail, error)
	getFn    func(ctx context.Context, ownerID, id string) (*usecase.InstrumentDetail, error)
	listFn   func(ctx context.Context, input usecase.ListInstrumentsInput) ([]*usecase.InstrumentDetail, error)
	updateFn func(ctx context.Context, input usecase.UpdateInstrumentInput) (*usecase.InstrumentDetail, error)
	toggleFn func(ctx context.Context, ownerID, id string) (*domain.Instrument, error)
	deleteFn func(ctx context.Context, ownerID, id string) error
}

func (s *instrumentServiceStub) CreateInstrument(ctx context.Context, input usecase.CreateInstrumentInput) (*usecase.InstrumentDetail, error) {
	return s.createFn(ctx, input)
}

func (s *instrumentServiceStub) GetInstrument(ctx context.Context, ownerID, id string) (*usecase.InstrumentDetail, error) {
	return s.getFn(ctx, ownerID, id)
}

func (s *instrumentServiceStub) ListInstruments(ctx context.Context, input usecase.ListInstrumentsInput) ([]*usecase.InstrumentDetail, error) {
	return s.listFn(ctx, input)
}

func (s *instrumentServiceStub) UpdateInstrument(ctx context.Context, input usecase.UpdateInstrumentInput) (*usecase.InstrumentDetail, error) {
	return s.updateFn(ctx, input)
}

func (s *instrumentServiceStub) ToggleInstrumentStatus(ctx context.Context, ownerID, id string) (*domain.Instrument, error) {
	return s.toggleFn(ctx, ownerID, id)
}

func (s *instrumentServiceStub) DeleteInstrument(ctx context.Context, ownerID, id string) error {
	return s.deleteFn(ctx, ownerID, id)
}

func withOwner(req *http.Request, ownerID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.OwnerContextKey, ownerID)
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleDetail() *usecase.InstrumentDetail {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	return &usecase.InstrumentDetail{
		Instrument: &domain.Instrument{
			ID:               "inst-1",
			OwnerID:          "user-1",
			Name:             "Bike Loan",
			Kind:             domain.KindLoan,
			Status:           domain.InstrumentOpen,
			Amount:           decimal.RequireFromString("10000"),
			NoOfInstallments: 3,
			StartedOn:        start,
		},
		Installments: []*domain.Installment{
			{ID: "i-1", InstrumentID: "inst-1", Sequence: 1, Amount: decimal.RequireFromString("3333.33"), DueDate: start},
			{ID: "i-2", InstrumentID: "inst-1", Sequence: 2, Amount: decimal.RequireFromString("3333.33"), DueDate: start.AddDate(0, 1, 0)},
			{ID: "i-3", InstrumentID: "inst-1", Sequence: 3, Amount: decimal.RequireFromString("3333.34"), DueDate: start.AddDate(0, 2, 0)},
		},
		Aggregate: domain.Aggregate{
			RemainingAmount: decimal.RequireFromString("10000"),
			RemainingCount:  3,
		},
	}
}

func TestInstrumentHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateInstrumentInput
	handler := NewInstrumentHandler(&instrumentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateInstrumentInput) (*usecase.InstrumentDetail, error) {
			captured = input
			return sampleDetail(), nil
		},
	})

	body, _ := json.Marshal(dto.CreateInstrumentRequest{
		Name:             "Bike Loan",
		Kind:             "Loan",
		Amount:           decimal.RequireFromString("10000"),
		NoOfInstallments: 3,
		StartedOn:        time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	})

	req := withOwner(httptest.NewRequest(http.MethodPost, "/instruments", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OwnerID != "user-1" || captured.Name != "Bike Loan" || captured.NoOfInstallments != 3 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.InstrumentDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Instrument.ID != "inst-1" {
		t.Fatalf("expected instrument ID inst-1, got %s", resp.Instrument.ID)
	}
	if len(resp.Installments) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(resp.Installments))
	}
	if resp.Installments[2].Amount.String() != "3333.34" {
		t.Fatalf("expected last installment to carry the residual, got %s", resp.Installments[2].Amount)
	}
}

func TestInstrumentHandler_Create_MissingOwner(t *testing.T) {
	handler := NewInstrumentHandler(&instrumentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateInstrumentInput) (*usecase.InstrumentDetail, error) {
			t.Fatal("CreateInstrument should not be called without an owner")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/instruments", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestInstrumentHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewInstrumentHandler(&instrumentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateInstrumentInput) (*usecase.InstrumentDetail, error) {
			t.Fatal("CreateInstrument should not be called for invalid payload")
			return nil, nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodPost, "/instruments", bytes.NewBufferString("{invalid json")), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInstrumentHandler_Create_DuplicateConflict(t *testing.T) {
	handler := NewInstrumentHandler(&instrumentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateInstrumentInput) (*usecase.InstrumentDetail, error) {
			return nil, domain.ErrDuplicateInstrument
		},
	})

	body, _ := json.Marshal(dto.CreateInstrumentRequest{Name: "Bike Loan", Kind: "Loan"})
	req := withOwner(httptest.NewRequest(http.MethodPost, "/instruments", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestInstrumentHandler_Get_NotFound(t *testing.T) {
	handler := NewInstrumentHandler(&instrumentServiceStub{
		getFn: func(ctx context.Context, ownerID, id string) (*usecase.InstrumentDetail, error) {
			return nil, domain.ErrInstrumentNotFound
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodGet, "/instruments/missing", nil), "user-1")
	req = withURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestInstrumentHandler_List_PassesFilters(t *testing.T) {
	var captured usecase.ListInstrumentsInput
	handler := NewInstrumentHandler(&instrumentServiceStub{
		listFn: func(ctx context.Context, input usecase.ListInstrumentsInput) ([]*usecase.InstrumentDetail, error) {
			captured = input
			return []*usecase.InstrumentDetail{sampleDetail()}, nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodGet, "/instruments?search=bike&status=Open&limit=5&offset=10", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if captured.Search != "bike" || captured.Status != domain.InstrumentOpen || captured.Limit != 5 || captured.Offset != 10 {
		t.Fatalf("expected filters to pass through, got %+v", captured)
	}

	var resp dto.ListInstrumentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected total 1, got %d", resp.Total)
	}
}

func TestInstrumentHandler_Update_AmountBelowPaid(t *testing.T) {
	handler := NewInstrumentHandler(&instrumentServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateInstrumentInput) (*usecase.InstrumentDetail, error) {
			return nil, domain.ErrAmountBelowPaid
		},
	})

	body, _ := json.Marshal(dto.UpdateInstrumentRequest{Name: "Bike Loan", Kind: "Loan", Amount: decimal.RequireFromString("1")})
	req := withOwner(httptest.NewRequest(http.MethodPut, "/instruments/inst-1", bytes.NewReader(body)), "user-1")
	req = withURLParam(req, "id", "inst-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInstrumentHandler_ToggleStatus_PendingConflict(t *testing.T) {
	handler := NewInstrumentHandler(&instrumentServiceStub{
		toggleFn: func(ctx context.Context, ownerID, id string) (*domain.Instrument, error) {
			return nil, domain.ErrPendingInstallments
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodPost, "/instruments/inst-1/status", nil), "user-1")
	req = withURLParam(req, "id", "inst-1")
	rec := httptest.NewRecorder()

	handler.ToggleStatus(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestInstrumentHandler_Delete_Success(t *testing.T) {
	var deletedID string
	handler := NewInstrumentHandler(&instrumentServiceStub{
		deleteFn: func(ctx context.Context, ownerID, id string) error {
			deletedID = id
			return nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodDelete, "/instruments/inst-1", nil), "user-1")
	req = withURLParam(req, "id", "inst-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deletedID != "inst-1" {
		t.Fatalf("expected inst-1 to be deleted, got %q", deletedID)
	}
}
