// Package shares keeps the fractional-ownership unit accounting for every
// fractionalized asset: the fixed total supply, the engine-held unsold
// remainder, per-holder balances, and the escrow pot backing active
// secondary-market listings.
//
// Only the engine mints, burns, or moves shares; the package is not
// internally synchronized and relies on the engine's serialization.
package shares

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/pkg/types"
)

// Book is the share ledger for one asset. At all times
//
//	remaining + escrowed + sum(holdings) == total
//
// holds; every mutation below preserves it.
type Book struct {
	assetID   uint64
	total     uint64
	remaining uint64
	escrowed  uint64
	holdings  map[common.Address]uint64

	// Ordered holder registry for dividend enumeration: append-only,
	// deduplicated on first nonzero balance. Entries whose balance has
	// dropped to zero stay in the list and are skipped on iteration.
	holderOrder []common.Address
	holderSeen  map[common.Address]struct{}
}

func newBook(assetID, total uint64) *Book {
	return &Book{
		assetID:    assetID,
		total:      total,
		remaining:  total,
		holdings:   make(map[common.Address]uint64),
		holderSeen: make(map[common.Address]struct{}),
	}
}

// AssetID returns the asset this book belongs to.
func (b *Book) AssetID() uint64 { return b.assetID }

// Total returns the fixed share supply.
func (b *Book) Total() uint64 { return b.total }

// Remaining returns the engine-held unsold supply.
func (b *Book) Remaining() uint64 { return b.remaining }

// Escrowed returns the shares locked under active listings.
func (b *Book) Escrowed() uint64 { return b.escrowed }

// HolderShares returns holder's current balance.
func (b *Book) HolderShares(holder common.Address) uint64 {
	return b.holdings[holder]
}

// OutstandingHoldings returns the sum of all holder balances.
func (b *Book) OutstandingHoldings() uint64 {
	var sum uint64
	for _, n := range b.holdings {
		sum += n
	}
	return sum
}

// HasHolders reports whether any holder balance is nonzero.
func (b *Book) HasHolders() bool {
	for _, n := range b.holdings {
		if n > 0 {
			return true
		}
	}
	return false
}

// Holders returns all holders with a nonzero balance in registration order.
func (b *Book) Holders() []types.HolderBalance {
	out := make([]types.HolderBalance, 0, len(b.holderOrder))
	for _, addr := range b.holderOrder {
		if n := b.holdings[addr]; n > 0 {
			out = append(out, types.HolderBalance{Holder: addr, Shares: n})
		}
	}
	return out
}

// HolderCount returns the number of holders with a nonzero balance.
func (b *Book) HolderCount() int {
	count := 0
	for _, n := range b.holdings {
		if n > 0 {
			count++
		}
	}
	return count
}

func (b *Book) registerHolder(addr common.Address) {
	if _, seen := b.holderSeen[addr]; seen {
		return
	}
	b.holderSeen[addr] = struct{}{}
	b.holderOrder = append(b.holderOrder, addr)
}

// SellFromSupply moves numShares from the unsold remainder to buyer.
func (b *Book) SellFromSupply(buyer common.Address, numShares uint64) error {
	if numShares > b.remaining {
		return types.ErrInsufficientTokens
	}
	b.remaining -= numShares
	b.holdings[buyer] += numShares
	b.registerHolder(buyer)
	SharesMovedTotal.WithLabelValues("sell").Add(float64(numShares))
	return nil
}

// ReturnToSupply burns numShares of holder's balance back into the unsold
// remainder.
func (b *Book) ReturnToSupply(holder common.Address, numShares uint64) error {
	owned := b.holdings[holder]
	if owned == 0 {
		return types.ErrNoTokensOwned
	}
	if numShares > owned {
		return types.ErrNotEnoughTokensOwned
	}
	b.holdings[holder] = owned - numShares
	if b.holdings[holder] == 0 {
		delete(b.holdings, holder)
	}
	b.remaining += numShares
	SharesMovedTotal.WithLabelValues("burn").Add(float64(numShares))
	return nil
}

// EscrowFromHolder locks numShares of holder's balance under engine custody
// for a listing.
func (b *Book) EscrowFromHolder(holder common.Address, numShares uint64) error {
	owned := b.holdings[holder]
	if numShares > owned {
		return types.ErrNotEnoughTokensOwned
	}
	b.holdings[holder] = owned - numShares
	if b.holdings[holder] == 0 {
		delete(b.holdings, holder)
	}
	b.escrowed += numShares
	SharesMovedTotal.WithLabelValues("escrow").Add(float64(numShares))
	return nil
}

// ReleaseEscrowTo hands numShares of listing escrow to recipient. The caller
// guarantees numShares never exceeds the aggregate escrow, which holds as
// long as listings are resolved at most once.
func (b *Book) ReleaseEscrowTo(recipient common.Address, numShares uint64) {
	b.escrowed -= numShares
	b.holdings[recipient] += numShares
	b.registerHolder(recipient)
	SharesMovedTotal.WithLabelValues("release").Add(float64(numShares))
}

// TransferHolding moves numShares directly between two holders.
func (b *Book) TransferHolding(from, to common.Address, numShares uint64) error {
	owned := b.holdings[from]
	if numShares > owned {
		return types.ErrNotEnoughTokensOwned
	}
	b.holdings[from] = owned - numShares
	if b.holdings[from] == 0 {
		delete(b.holdings, from)
	}
	b.holdings[to] += numShares
	b.registerHolder(to)
	SharesMovedTotal.WithLabelValues("transfer").Add(float64(numShares))
	return nil
}

// Ledger is the collection of share books, one per fractionalized asset.
type Ledger struct {
	books map[uint64]*Book
}

// NewLedger creates an empty share ledger.
func NewLedger() *Ledger {
	return &Ledger{books: make(map[uint64]*Book)}
}

// CreateBook mints a fixed supply of totalShares for assetID into engine
// custody and returns the new book.
func (l *Ledger) CreateBook(assetID, totalShares uint64) *Book {
	b := newBook(assetID, totalShares)
	l.books[assetID] = b
	BooksTracked.Set(float64(len(l.books)))
	return b
}

// Book returns the share book for assetID.
func (l *Ledger) Book(assetID uint64) (*Book, bool) {
	b, ok := l.books[assetID]
	return b, ok
}

// Books returns every share book in asset-id order.
func (l *Ledger) Books() []*Book {
	out := make([]*Book, 0, len(l.books))
	for _, b := range l.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].assetID < out[j].assetID })
	return out
}
