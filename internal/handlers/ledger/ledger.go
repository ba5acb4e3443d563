package ledger

import (
	"context"
	"net/http"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/dto"
	"github.com/dkotenko/challenger/pkg/auth"
	"github.com/dkotenko/challenger/pkg/utils"
)

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=ledger

type Service interface {
	GetBalance(ctx context.Context, userID int) (int64, error)
	GetHistory(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
}

type LedgerHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current balance
//	@Description	Current point balance of the authenticated user, derived from the ledger
//	@Tags			Баланс
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/balance [get]
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.ledgerService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Current: balance,
	})
}

// GetHistory godoc
//
//	@Summary		Get ledger history
//	@Description	All credit movements of the authenticated user, newest first
//	@Tags			Баланс
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LedgerEntryResponseDTO
//	@Success		204	{object}	utils.Response	"No entries"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/ledger [get]
func (h *LedgerHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	entries, err := h.ledgerService.GetHistory(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ledger entries")
		return
	}
	if len(entries) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Ledger entries not found")
		return
	}

	response := make([]dto.LedgerEntryResponseDTO, len(entries))
	for i, entry := range entries {
		response[i] = dto.LedgerEntryResponseDTO{
			Amount:      entry.Amount,
			Type:        entry.Type,
			Description: entry.Description,
			RelatedID:   entry.RelatedID,
			CreatedAt:   entry.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
