package handler

import (
	"net/http"

	"github.com/iho/finledger/internal/domain"
)

// OptionsHandler serves the shared enumerated option lists.
type OptionsHandler struct{}

// NewOptionsHandler creates a new OptionsHandler.
func NewOptionsHandler() *OptionsHandler {
	return &OptionsHandler{}
}

// Get returns the canonical option lists consumed by dropdowns and
// client-side validation.
func (h *OptionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.SharedOptions())
}
