package engine

import (
	"math/bits"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/internal/events"
	"github.com/propshare-labs/propshare/pkg/types"
	"go.uber.org/zap"
)

// ListSharesForSale escrows numShares of the caller's holding and opens a
// secondary-market listing at pricePerShare.
func (e *Engine) ListSharesForSale(caller common.Address, assetID, numShares, pricePerShare uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if numShares == 0 {
		return 0, observe("list_shares", types.ErrInvalidAmount)
	}
	if pricePerShare == 0 {
		return 0, observe("list_shares", types.ErrInvalidPrice)
	}
	// The settlement total must fit in uint64 or the listing can never pay
	// out correctly.
	if hi, _ := bits.Mul64(numShares, pricePerShare); hi != 0 {
		return 0, observe("list_shares", types.ErrInvalidPrice)
	}
	_, book, err := e.fractionalAsset(assetID)
	if err != nil {
		return 0, observe("list_shares", err)
	}

	if err := book.EscrowFromHolder(caller, numShares); err != nil {
		return 0, observe("list_shares", err)
	}
	l := e.records.CreateListing(assetID, caller, numShares, pricePerShare)
	ActiveListingsGauge.Inc()

	e.logger.Info("shares-listed",
		zap.Uint64("listing-id", l.ID),
		zap.Uint64("asset-id", assetID),
		zap.String("seller", caller.Hex()),
		zap.Uint64("num-shares", numShares),
		zap.Uint64("price-per-share", pricePerShare))
	e.emit(events.SharesListed{
		ListingID:     l.ID,
		AssetID:       assetID,
		Seller:        caller,
		NumShares:     numShares,
		PricePerShare: pricePerShare,
	})
	return l.ID, observe("list_shares", nil)
}

// BuyListedShares settles a listing: the buyer pays numShares*pricePerShare,
// the listing seller receives it minus the trading fee, the fee goes to the
// contract owner (to engine custody when ownership is renounced), and the
// escrowed shares move to the buyer.
func (e *Engine) BuyListedShares(caller common.Address, listingID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.records.Listing(listingID)
	if !ok {
		return observe("buy_listed_shares", types.ErrShareListingNotFound)
	}
	// Self-trade is rejected regardless of listing state.
	if caller == l.Seller {
		return observe("buy_listed_shares", types.ErrCannotBuyOwnShares)
	}
	if !l.Active {
		return observe("buy_listed_shares", types.ErrShareListingNotActive)
	}
	book, ok := e.shares.Book(l.AssetID)
	if !ok {
		return observe("buy_listed_shares", types.ErrAssetNotFractionalized)
	}

	hi, total := bits.Mul64(l.NumShares, l.PricePerShare)
	if hi != 0 {
		return observe("buy_listed_shares", types.ErrInvalidPrice)
	}
	fee := total * e.cfg.ShareTradingFeePct / 100
	if !e.settlement.CanDebit(caller, total) {
		return observe("buy_listed_shares", types.ErrInsufficientUSDCBalance)
	}

	if err := e.settlement.Transfer(caller, l.Seller, total-fee); err != nil {
		return observe("buy_listed_shares", err)
	}
	if fee > 0 {
		if owner, owned := e.access.Owner(); owned {
			if err := e.settlement.Transfer(caller, owner, fee); err != nil {
				return observe("buy_listed_shares", err)
			}
		} else if err := e.settlement.EscrowIn(caller, fee); err != nil {
			return observe("buy_listed_shares", err)
		}
	}
	book.ReleaseEscrowTo(caller, l.NumShares)
	l.Active = false
	ActiveListingsGauge.Dec()
	FeesRetainedTotal.WithLabelValues("trading_fee").Add(float64(fee))

	e.logger.Info("shares-purchased",
		zap.Uint64("listing-id", listingID),
		zap.Uint64("asset-id", l.AssetID),
		zap.String("buyer", caller.Hex()),
		zap.String("seller", l.Seller.Hex()),
		zap.Uint64("total", total),
		zap.Uint64("fee", fee))
	e.emit(events.SharesPurchased{
		ListingID: listingID,
		AssetID:   l.AssetID,
		Buyer:     caller,
		Seller:    l.Seller,
		NumShares: l.NumShares,
		Total:     total,
		Fee:       fee,
	})
	return observe("buy_listed_shares", nil)
}

// CancelShareListing returns a listing's escrowed shares to its seller and
// deactivates it. Listing-seller only.
func (e *Engine) CancelShareListing(caller common.Address, listingID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.records.Listing(listingID)
	if !ok {
		return observe("cancel_listing", types.ErrShareListingNotFound)
	}
	if caller != l.Seller {
		return observe("cancel_listing", types.ErrNotShareSeller)
	}
	if !l.Active {
		return observe("cancel_listing", types.ErrShareListingNotActive)
	}
	book, ok := e.shares.Book(l.AssetID)
	if !ok {
		return observe("cancel_listing", types.ErrAssetNotFractionalized)
	}

	book.ReleaseEscrowTo(l.Seller, l.NumShares)
	l.Active = false
	ActiveListingsGauge.Dec()

	e.logger.Info("share-listing-canceled",
		zap.Uint64("listing-id", listingID),
		zap.Uint64("asset-id", l.AssetID),
		zap.String("seller", l.Seller.Hex()))
	e.emit(events.ShareListingCanceled{
		ListingID: listingID,
		AssetID:   l.AssetID,
		Seller:    l.Seller,
	})
	return observe("cancel_listing", nil)
}

// TransferShares moves numShares of the caller's holding directly to another
// identity, without a fee.
func (e *Engine) TransferShares(caller common.Address, assetID uint64, to common.Address, numShares uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if to == types.ZeroAddress || to == caller {
		return observe("transfer_shares", types.ErrInvalidRecipient)
	}
	if numShares == 0 {
		return observe("transfer_shares", types.ErrInvalidAmount)
	}
	_, book, err := e.fractionalAsset(assetID)
	if err != nil {
		return observe("transfer_shares", err)
	}

	if err := book.TransferHolding(caller, to, numShares); err != nil {
		return observe("transfer_shares", err)
	}

	e.logger.Info("shares-transferred",
		zap.Uint64("asset-id", assetID),
		zap.String("from", caller.Hex()),
		zap.String("to", to.Hex()),
		zap.Uint64("num-shares", numShares))
	e.emit(events.SharesTransferred{
		AssetID:   assetID,
		From:      caller,
		To:        to,
		NumShares: numShares,
	})
	return observe("transfer_shares", nil)
}
