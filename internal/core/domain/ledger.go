package domain

import "time"

type TransactionType string

const (
	TxEarn  TransactionType = "EARN"
	TxBonus TransactionType = "BONUS"
	TxSpend TransactionType = "SPEND"
)

// LedgerEntry is one applied balance change, with the balance after it.
type LedgerEntry struct {
	Type    TransactionType `json:"type"`
	Amount  int             `json:"amount"`
	Reason  string          `json:"reason,omitempty"`
	Balance int             `json:"balance"`
	At      time.Time       `json:"at"`
}
