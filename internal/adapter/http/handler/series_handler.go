package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hmendez/stockledger/internal/adapter/http/dto"
	"github.com/hmendez/stockledger/internal/domain"
)

// SeriesService defines the behavior needed by SeriesHandler.
type SeriesService interface {
	GetBalanceHistory(ctx context.Context, accountID string) ([]domain.SeriesPoint, error)
}

// SeriesHandler handles balance-series HTTP requests.
type SeriesHandler struct {
	seriesUC SeriesService
}

// NewSeriesHandler creates a new SeriesHandler.
func NewSeriesHandler(seriesUC SeriesService) *SeriesHandler {
	return &SeriesHandler{seriesUC: seriesUC}
}

// Get returns an account's running-balance series, oldest first.
func (h *SeriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	points, err := h.seriesUC.GetBalanceHistory(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance series", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSeriesResponse{
		AccountID: accountID,
		Points:    dto.SeriesFromDomain(points),
	})
}
