package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hmendez/stockledger/internal/adapter/http/dto"
	"github.com/hmendez/stockledger/internal/domain"
	"github.com/hmendez/stockledger/internal/usecase"
)

// EntryService defines the ledger behavior needed by EntryHandler.
type EntryService interface {
	RecordEntry(ctx context.Context, input usecase.RecordEntryInput) (*domain.Account, *domain.Entry, error)
}

// EntryListService defines the listing behavior needed by EntryHandler.
type EntryListService interface {
	ListEntriesForAccount(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error)
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	ledgerUC    EntryService
	directoryUC EntryListService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(ledgerUC EntryService, directoryUC EntryListService) *EntryHandler {
	return &EntryHandler{ledgerUC: ledgerUC, directoryUC: directoryUC}
}

// Record records a movement against an account.
func (h *EntryHandler) Record(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.RecordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, entry, err := h.ledgerUC.RecordEntry(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordEntryResponse{
		Entry:   dto.EntryFromDomain(entry),
		Account: dto.AccountFromDomain(account),
	})
}

// ListByAccount lists an account's entries, newest first.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	h.list(w, r, accountID)
}

// List lists entries across all accounts, newest first.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

func (h *EntryHandler) list(w http.ResponseWriter, r *http.Request, accountID string) {
	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.directoryUC.ListEntriesForAccount(r.Context(), usecase.ListEntriesInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}
