package dto

import "time"

type BalanceResponseDTO struct {
	Current int64 `json:"current" example:"475"`
}

type LedgerEntryResponseDTO struct {
	Amount      int64     `json:"amount" example:"-25"`
	Type        string    `json:"type" example:"bet"`
	Description string    `json:"description" example:"challenge bet"`
	RelatedID   *int      `json:"related_id,omitempty" example:"42"`
	CreatedAt   time.Time `json:"created_at"`
}
