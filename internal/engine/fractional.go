package engine

import (
	"math/bits"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/internal/events"
	"github.com/propshare-labs/propshare/internal/shares"
	"github.com/propshare-labs/propshare/pkg/types"
	"go.uber.org/zap"
)

// CreateFractionalAsset converts a verified asset into a fixed supply of
// share units held by the engine. The per-share price is the asset price
// divided by totalShares with floor division; any remainder is accepted as
// rounding dust and never recovered.
func (e *Engine) CreateFractionalAsset(caller common.Address, assetID, totalShares uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.RequireAdmin(caller); err != nil {
		return observe("fractionalize", err)
	}
	a, ok := e.records.Asset(assetID)
	if !ok || a.Delisted {
		return observe("fractionalize", types.ErrAssetDoesNotExist)
	}
	if !a.Verified {
		return observe("fractionalize", types.ErrAssetNotVerified)
	}
	if totalShares == 0 {
		return observe("fractionalize", types.ErrInvalidAmount)
	}
	if _, exists := e.fractional[assetID]; exists {
		return observe("fractionalize", types.ErrAssetAlreadyFractionalized)
	}
	if a.Sold {
		return observe("fractionalize", types.ErrAssetAlreadySold)
	}
	if _, pending := e.records.Pending(assetID); pending {
		return observe("fractionalize", types.ErrAssetAlreadySold)
	}

	pricePerShare := a.Price / totalShares
	e.shares.CreateBook(assetID, totalShares)
	e.fractional[assetID] = &fractionalState{pricePerShare: pricePerShare}

	e.logger.Info("fractional-asset-created",
		zap.Uint64("asset-id", assetID),
		zap.Uint64("total-shares", totalShares),
		zap.Uint64("price-per-share", pricePerShare))
	e.emit(events.FractionalAssetCreated{
		AssetID:       assetID,
		TotalShares:   totalShares,
		PricePerShare: pricePerShare,
	})
	return observe("fractionalize", nil)
}

// BuyFractionalAsset sells numShares of the unsold supply to the caller.
// The payment is held in engine custody, earmarked for the asset.
func (e *Engine) BuyFractionalAsset(caller common.Address, assetID, numShares uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	fs, book, err := e.fractionalAsset(assetID)
	if err != nil {
		return observe("buy_fractional", err)
	}
	if numShares == 0 {
		return observe("buy_fractional", types.ErrInvalidAmount)
	}
	if numShares > book.Remaining() {
		return observe("buy_fractional", types.ErrInsufficientTokens)
	}

	amount := numShares * fs.pricePerShare
	if !e.settlement.CanDebit(caller, amount) {
		return observe("buy_fractional", types.ErrInsufficientUSDCBalance)
	}

	if err := e.settlement.EscrowIn(caller, amount); err != nil {
		return observe("buy_fractional", err)
	}
	e.settlement.AddFractionalPayment(assetID, amount)
	if err := book.SellFromSupply(caller, numShares); err != nil {
		return observe("buy_fractional", err)
	}

	e.logger.Info("fractional-asset-purchased",
		zap.Uint64("asset-id", assetID),
		zap.String("buyer", caller.Hex()),
		zap.Uint64("num-shares", numShares),
		zap.Uint64("amount", amount))
	e.emit(events.FractionalAssetPurchased{
		AssetID:   assetID,
		Buyer:     caller,
		NumShares: numShares,
		Amount:    amount,
	})
	return observe("buy_fractional", nil)
}

// CancelFractionalAssetPurchase burns numShares of the caller's holding back
// into the unsold supply and refunds their price from custody. Allowed only
// after an admin has enabled withdrawals for the asset.
func (e *Engine) CancelFractionalAssetPurchase(caller common.Address, assetID, numShares uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	fs, book, err := e.fractionalAsset(assetID)
	if err != nil {
		return observe("cancel_fractional", err)
	}
	if !fs.buyerCanWithdraw {
		return observe("cancel_fractional", types.ErrCannotWithdrawYet)
	}
	owned := book.HolderShares(caller)
	if owned == 0 {
		return observe("cancel_fractional", types.ErrNoTokensOwned)
	}
	if numShares == 0 {
		return observe("cancel_fractional", types.ErrInvalidAmount)
	}
	if numShares > owned {
		return observe("cancel_fractional", types.ErrNotEnoughTokensOwned)
	}

	refund := numShares * fs.pricePerShare
	if !e.settlement.CanPayOut(refund) {
		return observe("cancel_fractional", types.ErrInsufficientUSDCBalance)
	}

	if err := book.ReturnToSupply(caller, numShares); err != nil {
		return observe("cancel_fractional", err)
	}
	if err := e.settlement.PayOut(caller, refund); err != nil {
		return observe("cancel_fractional", err)
	}
	e.settlement.SubFractionalPayment(assetID, refund)

	e.logger.Info("fractional-purchase-canceled",
		zap.Uint64("asset-id", assetID),
		zap.String("buyer", caller.Hex()),
		zap.Uint64("num-shares", numShares),
		zap.Uint64("refund", refund))
	e.emit(events.AssetCanceled{
		AssetID:   assetID,
		Buyer:     caller,
		NumShares: numShares,
		Refund:    refund,
	})
	return observe("cancel_fractional", nil)
}

// SetBuyerCanWithdraw toggles the per-asset withdrawal flag. Admin-gated.
func (e *Engine) SetBuyerCanWithdraw(caller common.Address, assetID uint64, allowed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.RequireAdmin(caller); err != nil {
		return observe("set_withdraw_flag", err)
	}
	fs, _, err := e.fractionalAsset(assetID)
	if err != nil {
		return observe("set_withdraw_flag", err)
	}

	fs.buyerCanWithdraw = allowed
	e.logger.Info("withdraw-flag-set",
		zap.Uint64("asset-id", assetID),
		zap.Bool("allowed", allowed))
	return observe("set_withdraw_flag", nil)
}

// DistributeFractionalDividends splits amount of engine custody across the
// asset's current holders, proportional to holdings with floor division.
// The holders are paid in registration order; any floor remainder stays in
// custody.
func (e *Engine) DistributeFractionalDividends(caller common.Address, assetID, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.RequireAdmin(caller); err != nil {
		return observe("distribute_dividends", err)
	}
	_, book, err := e.fractionalAsset(assetID)
	if err != nil {
		return observe("distribute_dividends", err)
	}
	if amount == 0 {
		return observe("distribute_dividends", types.ErrInvalidAmount)
	}
	if !e.settlement.CanPayOut(amount) {
		return observe("distribute_dividends", types.ErrInsufficientUSDCBalance)
	}

	holders := book.Holders()
	paidHolders := make([]common.Address, 0, len(holders))
	paidAmounts := make([]uint64, 0, len(holders))
	var paidTotal uint64

	for _, h := range holders {
		// 128-bit intermediate: amount * shares wraps uint64 for large
		// supplies. The quotient fits because shares never exceeds the total.
		hi, lo := bits.Mul64(amount, h.Shares)
		share, _ := bits.Div64(hi, lo, book.Total())
		if share == 0 {
			continue
		}
		// Custody was checked against the full amount and floor shares can
		// only sum below it, so these payouts cannot fail.
		if err := e.settlement.PayOut(h.Holder, share); err != nil {
			return observe("distribute_dividends", err)
		}
		paidHolders = append(paidHolders, h.Holder)
		paidAmounts = append(paidAmounts, share)
		paidTotal += share
	}

	DividendsPaidTotal.Add(float64(paidTotal))

	e.logger.Info("dividends-distributed",
		zap.Uint64("asset-id", assetID),
		zap.Uint64("amount", amount),
		zap.Uint64("paid", paidTotal),
		zap.Int("holders", len(paidHolders)))
	e.emit(events.FractionalDividendsDistributed{
		AssetID: assetID,
		Amount:  amount,
		Holders: paidHolders,
		Amounts: paidAmounts,
	})
	return observe("distribute_dividends", nil)
}

// fractionalAsset resolves the fractional state and share book for assetID.
func (e *Engine) fractionalAsset(assetID uint64) (*fractionalState, *shares.Book, error) {
	fs, ok := e.fractional[assetID]
	if !ok {
		if _, exists := e.records.Asset(assetID); !exists {
			return nil, nil, types.ErrAssetDoesNotExist
		}
		return nil, nil, types.ErrAssetNotFractionalized
	}
	book, ok := e.shares.Book(assetID)
	if !ok {
		return nil, nil, types.ErrAssetNotFractionalized
	}
	return fs, book, nil
}
