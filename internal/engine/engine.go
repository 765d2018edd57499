// Package engine is the marketplace ledger core. It owns every record and
// balance, serializes all mutating operations behind a single write lock,
// and emits a domain event synchronously with each committed state change.
//
// Every operation validates all of its preconditions before touching any
// state, so a failed call leaves nothing partially applied. Queries run
// under the read lock and return copies.
package engine

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/internal/access"
	"github.com/propshare-labs/propshare/internal/events"
	"github.com/propshare-labs/propshare/internal/ledger"
	"github.com/propshare-labs/propshare/internal/registry"
	"github.com/propshare-labs/propshare/internal/shares"
	"github.com/propshare-labs/propshare/pkg/types"
	"go.uber.org/zap"
)

// Config holds engine configuration. Fee percentages are integer percents
// applied with floor division, matching the settlement contract they mirror.
type Config struct {
	Owner                  common.Address
	ListingFeePct          uint64
	CancellationPenaltyPct uint64
	ShareTradingFeePct     uint64
	Logger                 *zap.Logger
	Bus                    *events.Bus
}

// fractionalState carries the engine-side attributes of a fractionalized
// asset that do not live in its share book.
type fractionalState struct {
	pricePerShare    uint64
	buyerCanWithdraw bool
}

// Engine is the single-writer marketplace ledger.
type Engine struct {
	mu sync.RWMutex

	cfg        *Config
	access     *access.Control
	settlement *ledger.Ledger
	shares     *shares.Ledger
	records    *registry.Registry
	fractional map[uint64]*fractionalState

	bus    *events.Bus
	logger *zap.Logger
}

// New creates an engine owned by cfg.Owner.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Owner == types.ZeroAddress {
		return nil, errors.New("owner cannot be the zero identity")
	}
	if cfg.ListingFeePct >= 100 || cfg.CancellationPenaltyPct >= 100 || cfg.ShareTradingFeePct >= 100 {
		return nil, errors.New("fee percentages must be below 100")
	}

	return &Engine{
		cfg:        cfg,
		access:     access.New(cfg.Owner),
		settlement: ledger.New(&ledger.Config{Logger: cfg.Logger.Named("settlement")}),
		shares:     shares.NewLedger(),
		records:    registry.New(),
		fractional: make(map[uint64]*fractionalState),
		bus:        cfg.Bus,
		logger:     cfg.Logger,
	}, nil
}

// emit publishes ev synchronously with the state change. Called with the
// write lock held so event order matches commit order.
func (e *Engine) emit(p events.Payload) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.Wrap(p))
}

// observe records the operation outcome metric and returns err unchanged.
func observe(op string, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	OperationsTotal.WithLabelValues(op, outcome).Inc()
	return err
}

// Stats is a point-in-time snapshot of engine size, used by health and
// debugging surfaces.
type Stats struct {
	Assets               int    `json:"assets"`
	FractionalizedAssets int    `json:"fractionalized_assets"`
	PendingPurchases     int    `json:"pending_purchases"`
	ActiveListings       int    `json:"active_listings"`
	CustodyBalance       uint64 `json:"custody_balance"`
	RegisteredSellers    int    `json:"registered_sellers"`
	Admins               int    `json:"admins"`
}

// Snapshot returns current engine stats.
func (e *Engine) Snapshot() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Stats{
		Assets:               len(e.records.Assets()),
		FractionalizedAssets: len(e.fractional),
		PendingPurchases:     e.records.PendingCount(),
		ActiveListings:       len(e.records.ActiveListings()),
		CustodyBalance:       e.settlement.Custody(),
		RegisteredSellers:    e.access.SellerCount(),
		Admins:               e.access.AdminCount(),
	}
}

// Balance returns addr's settlement balance.
func (e *Engine) Balance(addr common.Address) uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settlement.Balance(addr)
}

// CustodyBalance returns the engine-held settlement balance.
func (e *Engine) CustodyBalance() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settlement.Custody()
}

// Owner returns the current contract owner; ok is false after renouncement.
func (e *Engine) Owner() (common.Address, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.access.Owner()
}
