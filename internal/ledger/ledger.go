// Package ledger tracks settlement-token (USDC) balances for every external
// identity plus the engine's own custody account, and moves value between
// them. All amounts are integer token units.
//
// The ledger is not internally synchronized: the engine wraps every mutating
// operation in its critical section, so calls never interleave.
package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/pkg/types"
	"go.uber.org/zap"
)

// Ledger holds settlement balances. Custody is the engine's own pot: whole-
// asset escrow, listing-fee retention, fractional payments, and dividend
// deposits all live there until paid out.
type Ledger struct {
	balances map[common.Address]uint64
	custody  uint64
	// Per-asset slice of custody accumulated from fractional share sales,
	// drawn down on cancellation refunds.
	fractionalPayments map[uint64]uint64
	logger             *zap.Logger
}

// Config holds ledger configuration.
type Config struct {
	Logger *zap.Logger
}

// New creates an empty ledger.
func New(cfg *Config) *Ledger {
	return &Ledger{
		balances:           make(map[common.Address]uint64),
		fractionalPayments: make(map[uint64]uint64),
		logger:             cfg.Logger,
	}
}

// Balance returns the settlement balance of addr.
func (l *Ledger) Balance(addr common.Address) uint64 {
	return l.balances[addr]
}

// Custody returns the engine-held settlement balance.
func (l *Ledger) Custody() uint64 {
	return l.custody
}

// FractionalPayments returns the custody slice accumulated for assetID.
func (l *Ledger) FractionalPayments(assetID uint64) uint64 {
	return l.fractionalPayments[assetID]
}

// Deposit credits addr with freshly arrived settlement tokens. This is the
// inbound edge of the ledger; everything else conserves total value.
func (l *Ledger) Deposit(addr common.Address, amount uint64) {
	l.balances[addr] += amount
	DepositsTotal.Add(float64(amount))
	l.logger.Debug("settlement-deposit",
		zap.String("address", addr.Hex()),
		zap.Uint64("amount", amount))
}

// Transfer moves amount from one external identity to another.
func (l *Ledger) Transfer(from, to common.Address, amount uint64) error {
	if l.balances[from] < amount {
		return types.ErrInsufficientUSDCBalance
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	TransfersTotal.Inc()
	ValueMovedTotal.Add(float64(amount))
	return nil
}

// EscrowIn moves amount from an external identity into engine custody.
func (l *Ledger) EscrowIn(from common.Address, amount uint64) error {
	if l.balances[from] < amount {
		return types.ErrInsufficientUSDCBalance
	}
	l.balances[from] -= amount
	l.custody += amount
	CustodyBalance.Set(float64(l.custody))
	ValueMovedTotal.Add(float64(amount))
	return nil
}

// PayOut moves amount from engine custody to an external identity.
func (l *Ledger) PayOut(to common.Address, amount uint64) error {
	if l.custody < amount {
		return types.ErrInsufficientUSDCBalance
	}
	l.custody -= amount
	l.balances[to] += amount
	CustodyBalance.Set(float64(l.custody))
	ValueMovedTotal.Add(float64(amount))
	return nil
}

// CanPayOut reports whether custody covers amount, without moving anything.
// Used during the validation phase of multi-step operations.
func (l *Ledger) CanPayOut(amount uint64) bool {
	return l.custody >= amount
}

// CanDebit reports whether addr's balance covers amount.
func (l *Ledger) CanDebit(addr common.Address, amount uint64) bool {
	return l.balances[addr] >= amount
}

// AddFractionalPayment records amount of custody as fractional-sale proceeds
// for assetID.
func (l *Ledger) AddFractionalPayment(assetID, amount uint64) {
	l.fractionalPayments[assetID] += amount
}

// SubFractionalPayment draws refunded proceeds back out of the per-asset
// bucket. The bucket never goes negative; refunds are validated against the
// holder's shares before this is reached.
func (l *Ledger) SubFractionalPayment(assetID, amount uint64) {
	if l.fractionalPayments[assetID] < amount {
		l.fractionalPayments[assetID] = 0
		return
	}
	l.fractionalPayments[assetID] -= amount
}

// TotalSupply returns the sum of every external balance plus custody.
// Constant across all operations except Deposit and owner withdrawal payouts
// to off-ledger destinations (which there are none of: withdrawals credit an
// on-ledger identity).
func (l *Ledger) TotalSupply() uint64 {
	total := l.custody
	for _, b := range l.balances {
		total += b
	}
	return total
}
