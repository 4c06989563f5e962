package services

import (
	"sync"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

// PointsLedger is a user's spendable balance. Every change is applied under
// one lock, so concurrent debits can never overdraw it.
type PointsLedger struct {
	mu sync.Mutex

	clock   domain.Clock
	balance int
	entries []domain.LedgerEntry
}

func NewPointsLedger(clock domain.Clock, opening int) (*PointsLedger, error) {
	l := &PointsLedger{clock: clock}
	if opening < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if opening > 0 {
		l.apply(domain.TxEarn, opening, "opening balance")
	}
	return l, nil
}

func (l *PointsLedger) apply(txType domain.TransactionType, amount int, reason string) {
	if txType == domain.TxSpend {
		l.balance -= amount
	} else {
		l.balance += amount
	}
	l.entries = append(l.entries, domain.LedgerEntry{
		Type:    txType,
		Amount:  amount,
		Reason:  reason,
		Balance: l.balance,
		At:      l.clock.Now(),
	})
}

func (l *PointsLedger) Credit(amount int, reason string) error {
	return l.credit(domain.TxEarn, amount, reason)
}

func (l *PointsLedger) credit(txType domain.TransactionType, amount int, reason string) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.apply(txType, amount, reason)
	return nil
}

// Debit removes amount from the balance, or leaves the ledger untouched and
// returns an *domain.InsufficientFundsError when the balance cannot cover it.
func (l *PointsLedger) Debit(amount int, reason string) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount > l.balance {
		return &domain.InsufficientFundsError{Required: amount, Available: l.balance}
	}

	l.apply(domain.TxSpend, amount, reason)
	return nil
}

func (l *PointsLedger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// CanAfford reports the shortfall for a price, zero when affordable.
func (l *PointsLedger) CanAfford(price int) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if price <= l.balance {
		return true, 0
	}
	return false, price - l.balance
}

func (l *PointsLedger) Entries() []domain.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
