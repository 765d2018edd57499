package engine

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/internal/events"
	"github.com/propshare-labs/propshare/pkg/types"
	"go.uber.org/zap"
)

// BuyAsset escrows the full asset price from the caller and records the
// pending purchase. The sale settles on ConfirmAssetPayment.
func (e *Engine) BuyAsset(caller common.Address, assetID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.records.Asset(assetID)
	if !ok || a.Delisted {
		return observe("buy_asset", types.ErrAssetDoesNotExist)
	}
	if !a.Verified {
		return observe("buy_asset", types.ErrAssetNotVerified)
	}
	if a.Sold {
		return observe("buy_asset", types.ErrAssetAlreadySold)
	}
	if _, pending := e.records.Pending(assetID); pending {
		return observe("buy_asset", types.ErrAssetAlreadySold)
	}
	if _, fractionalized := e.shares.Book(assetID); fractionalized {
		return observe("buy_asset", types.ErrAssetAlreadyFractionalized)
	}

	if err := e.settlement.EscrowIn(caller, a.Price); err != nil {
		return observe("buy_asset", err)
	}

	a.Canceled = false
	e.records.SetPending(&types.PendingPurchase{
		AssetID:        assetID,
		Buyer:          caller,
		EscrowedAmount: a.Price,
		CreatedAt:      time.Now(),
	})

	e.logger.Info("asset-purchased",
		zap.Uint64("asset-id", assetID),
		zap.String("buyer", caller.Hex()),
		zap.Uint64("amount", a.Price))
	e.emit(events.AssetPurchased{AssetID: assetID, Buyer: caller, Amount: a.Price})
	return observe("buy_asset", nil)
}

// ConfirmAssetPayment settles a pending whole-asset purchase: the seller
// receives the price minus the listing fee, the fee stays in custody, and
// the asset record passes to the buyer. Only the recorded buyer may confirm.
func (e *Engine) ConfirmAssetPayment(caller common.Address, assetID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.records.Asset(assetID)
	if !ok || a.Delisted {
		return observe("confirm_payment", types.ErrAssetDoesNotExist)
	}
	p, ok := e.records.Pending(assetID)
	if !ok {
		return observe("confirm_payment", types.ErrNoPendingPurchase)
	}
	if caller != p.Buyer {
		return observe("confirm_payment", types.ErrNotBuyer)
	}

	// Integer percent with floor division; the remainder stays with the fee.
	listingFee := a.Price * e.cfg.ListingFeePct / 100
	proceeds := a.Price - listingFee

	seller := a.Seller
	if err := e.settlement.PayOut(seller, proceeds); err != nil {
		return observe("confirm_payment", err)
	}

	a.Sold = true
	a.Owner = p.Buyer
	p.Paid = true
	e.records.ClearPending(assetID)
	e.records.IncConfirmedSale(seller)
	FeesRetainedTotal.WithLabelValues("listing_fee").Add(float64(listingFee))

	e.logger.Info("asset-payment-confirmed",
		zap.Uint64("asset-id", assetID),
		zap.String("buyer", p.Buyer.Hex()),
		zap.String("seller", seller.Hex()),
		zap.Uint64("proceeds", proceeds),
		zap.Uint64("listing-fee", listingFee))
	e.emit(events.AssetPaymentConfirmed{
		AssetID:        assetID,
		Buyer:          p.Buyer,
		Seller:         seller,
		SellerProceeds: proceeds,
		ListingFee:     listingFee,
	})
	return observe("confirm_payment", nil)
}

// CancelAssetPurchase unwinds a pending whole-asset purchase: the buyer is
// refunded the price minus the cancellation penalty, which goes to the
// contract owner. With ownership renounced the penalty stays in custody.
func (e *Engine) CancelAssetPurchase(caller common.Address, assetID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.records.Asset(assetID)
	if !ok || a.Delisted {
		return observe("cancel_purchase", types.ErrAssetDoesNotExist)
	}
	p, ok := e.records.Pending(assetID)
	if !ok {
		return observe("cancel_purchase", types.ErrNoPendingPurchase)
	}
	if caller != p.Buyer {
		return observe("cancel_purchase", types.ErrNotBuyer)
	}

	penalty := a.Price * e.cfg.CancellationPenaltyPct / 100
	refund := a.Price - penalty

	if err := e.settlement.PayOut(p.Buyer, refund); err != nil {
		return observe("cancel_purchase", err)
	}
	if owner, owned := e.access.Owner(); owned && penalty > 0 {
		// Custody held the full escrow, so this payout cannot fail after the
		// refund succeeded.
		if err := e.settlement.PayOut(owner, penalty); err != nil {
			return observe("cancel_purchase", err)
		}
	}

	a.Canceled = true
	e.records.ClearPending(assetID)
	e.records.IncCanceledSale(a.Seller)
	FeesRetainedTotal.WithLabelValues("cancellation_penalty").Add(float64(penalty))

	e.logger.Info("asset-purchase-canceled",
		zap.Uint64("asset-id", assetID),
		zap.String("buyer", p.Buyer.Hex()),
		zap.Uint64("refund", refund),
		zap.Uint64("penalty", penalty))
	e.emit(events.AssetCanceled{
		AssetID: assetID,
		Buyer:   p.Buyer,
		Refund:  refund,
		Penalty: penalty,
	})
	return observe("cancel_purchase", nil)
}
