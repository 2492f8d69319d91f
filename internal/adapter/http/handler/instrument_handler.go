package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// InstrumentService defines the behavior needed by InstrumentHandler.
type InstrumentService interface {
	CreateInstrument(ctx context.Context, input usecase.CreateInstrumentInput) (*usecase.InstrumentDetail, error)
	GetInstrument(ctx context.Context, ownerID, id string) (*usecase.InstrumentDetail, error)
	ListInstruments(ctx context.Context, input usecase.ListInstrumentsInput) ([]*usecase.InstrumentDetail, error)
	UpdateInstrument(ctx context.Context, input usecase.UpdateInstrumentInput) (*usecase.InstrumentDetail, error)
	ToggleInstrumentStatus(ctx context.Context, ownerID, id string) (*domain.Instrument, error)
	DeleteInstrument(ctx context.Context, ownerID, id string) error
}

// InstrumentHandler handles instrument-related HTTP requests.
type InstrumentHandler struct {
	instrumentUC InstrumentService
}

// NewInstrumentHandler creates a new InstrumentHandler.
func NewInstrumentHandler(instrumentUC InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{instrumentUC: instrumentUC}
}

// Create creates an instrument and its installment schedule.
func (h *InstrumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	var req dto.CreateInstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	detail, err := h.instrumentUC.CreateInstrument(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create instrument", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.InstrumentDetailFromUseCase(detail))
}

// Get retrieves an instrument with its aggregate and installments.
func (h *InstrumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	detail, err := h.instrumentUC.GetInstrument(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get instrument", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InstrumentDetailFromUseCase(detail))
}

// List lists instruments with derived aggregates.
func (h *InstrumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	details, err := h.instrumentUC.ListInstruments(r.Context(), usecase.ListInstrumentsInput{
		OwnerID: ownerID,
		Search:  r.URL.Query().Get("search"),
		Status:  domain.InstrumentStatus(r.URL.Query().Get("status")),
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list instruments", err.Error())
		return
	}

	instruments := make([]*dto.InstrumentDetailResponse, len(details))
	for i, d := range details {
		instruments[i] = dto.InstrumentDetailFromUseCase(d)
	}

	writeJSON(w, http.StatusOK, dto.ListInstrumentsResponse{
		Instruments: instruments,
		Total:       int64(len(instruments)),
	})
}

// Update edits an instrument, redistributing pending installments.
func (h *InstrumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	var req dto.UpdateInstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	detail, err := h.instrumentUC.UpdateInstrument(r.Context(), req.ToUseCaseInput(ownerID, id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update instrument", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InstrumentDetailFromUseCase(detail))
}

// ToggleStatus flips an instrument between Open and Closed.
func (h *InstrumentHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	instrument, err := h.instrumentUC.ToggleInstrumentStatus(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to toggle instrument status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InstrumentFromDomain(instrument))
}

// Delete hard-deletes an instrument and its installments.
func (h *InstrumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	if err := h.instrumentUC.DeleteInstrument(r.Context(), ownerID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete instrument", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
