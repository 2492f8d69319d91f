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

// InstallmentService defines the behavior needed by InstallmentHandler.
type InstallmentService interface {
	ToggleStatus(ctx context.Context, input usecase.ToggleStatusInput) (*domain.Installment, error)
	BulkToggleStatus(ctx context.Context, input usecase.BulkToggleStatusInput) (*usecase.BulkOutcome, error)
	UpdateInstallment(ctx context.Context, input usecase.UpdateInstallmentInput) (*domain.Installment, error)
	DeleteInstallment(ctx context.Context, ownerID, id string) error
}

// InstallmentHandler handles installment-related HTTP requests.
type InstallmentHandler struct {
	installmentUC InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler.
func NewInstallmentHandler(installmentUC InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentUC: installmentUC}
}

// ToggleStatus flips one installment between Pending and Completed. The
// body may carry completed_at to backdate the completion.
func (h *InstallmentHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing installment ID", "")
		return
	}

	var req dto.ToggleStatusRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	installment, err := h.installmentUC.ToggleStatus(r.Context(), usecase.ToggleStatusInput{
		OwnerID:     ownerID,
		ID:          id,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to toggle installment status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentFromDomain(installment))
}

// BulkToggleStatus toggles several installments, reporting per-item
// outcomes.
func (h *InstallmentHandler) BulkToggleStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	var req dto.BulkToggleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "no installment IDs given", "")
		return
	}

	outcome, err := h.installmentUC.BulkToggleStatus(r.Context(), usecase.BulkToggleStatusInput{
		OwnerID:     ownerID,
		IDs:         req.IDs,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to toggle installments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BulkOutcomeFromUseCase(outcome))
}

// Update edits one installment's amount, due date and description.
func (h *InstallmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing installment ID", "")
		return
	}

	var req dto.UpdateInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	installment, err := h.installmentUC.UpdateInstallment(r.Context(), req.ToUseCaseInput(ownerID, id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update installment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentFromDomain(installment))
}

// Delete removes one installment.
func (h *InstallmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing installment ID", "")
		return
	}

	if err := h.installmentUC.DeleteInstallment(r.Context(), ownerID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete installment", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
