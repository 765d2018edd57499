package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/internal/events"
	"github.com/propshare-labs/propshare/pkg/types"
	"go.uber.org/zap"
)

// RegisterSeller marks addr as a registered seller. Admin-gated, idempotent.
func (e *Engine) RegisterSeller(caller, addr common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.access.RegisterSeller(caller, addr)
	if err != nil {
		return observe("register_seller", err)
	}

	e.logger.Info("seller-registered", zap.String("seller", addr.Hex()))
	e.emit(events.SellerRegistered{Seller: addr})
	return observe("register_seller", nil)
}

// CreateAsset stores a new asset listing for the calling seller and returns
// its id.
func (e *Engine) CreateAsset(caller common.Address, price uint64, metadataURI string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.access.IsRegisteredSeller(caller) {
		return 0, observe("create_asset", types.ErrSellerNotRegistered)
	}
	if price == 0 {
		return 0, observe("create_asset", types.ErrInvalidPrice)
	}

	a := e.records.CreateAsset(caller, price, metadataURI)

	e.logger.Info("asset-created",
		zap.Uint64("asset-id", a.ID),
		zap.String("seller", caller.Hex()),
		zap.Uint64("price", price))
	e.emit(events.AssetCreated{AssetID: a.ID, Seller: caller, Price: price, MetadataURI: metadataURI})
	return a.ID, observe("create_asset", nil)
}

// VerifyAsset marks an asset as verified. Admin-gated, one-way; repeated
// verification is rejected.
func (e *Engine) VerifyAsset(caller common.Address, assetID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.RequireAdmin(caller); err != nil {
		return observe("verify_asset", err)
	}
	a, ok := e.records.Asset(assetID)
	if !ok || a.Delisted {
		return observe("verify_asset", types.ErrAssetDoesNotExist)
	}
	if a.Verified {
		return observe("verify_asset", types.ErrAssetAlreadyVerified)
	}

	a.Verified = true

	e.logger.Info("asset-verified",
		zap.Uint64("asset-id", assetID),
		zap.String("admin", caller.Hex()))
	e.emit(events.AssetVerified{AssetID: assetID, Admin: caller})
	return observe("verify_asset", nil)
}

// DelistAsset tombstones an asset record. Fails while any fractional holder
// still has a nonzero balance.
func (e *Engine) DelistAsset(caller common.Address, assetID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.RequireAdmin(caller); err != nil {
		return observe("delist_asset", err)
	}
	a, ok := e.records.Asset(assetID)
	if !ok || a.Delisted {
		return observe("delist_asset", types.ErrAssetDoesNotExist)
	}
	if book, fractionalized := e.shares.Book(assetID); fractionalized {
		if book.HasHolders() || book.Escrowed() > 0 {
			return observe("delist_asset", types.ErrFractionalizedAssetWithBuyers)
		}
	}

	e.records.Tombstone(assetID)

	e.logger.Info("asset-delisted",
		zap.Uint64("asset-id", assetID),
		zap.String("admin", caller.Hex()))
	e.emit(events.AssetDelisted{AssetID: assetID, Admin: caller})
	return observe("delist_asset", nil)
}

// Deposit credits the caller with inbound settlement tokens. This is the
// stand-in for an on-chain USDC transfer into the marketplace and emits no
// domain event.
func (e *Engine) Deposit(caller common.Address, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount == 0 {
		return observe("deposit", types.ErrInvalidAmount)
	}
	e.settlement.Deposit(caller, amount)
	return observe("deposit", nil)
}

// FundCustody moves amount of the caller's balance into engine custody.
// Used to seed dividend distributions.
func (e *Engine) FundCustody(caller common.Address, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount == 0 {
		return observe("fund_custody", types.ErrInvalidAmount)
	}
	if err := e.settlement.EscrowIn(caller, amount); err != nil {
		return observe("fund_custody", err)
	}
	return observe("fund_custody", nil)
}

// WithdrawUSDC pays amount of engine custody out to `to`. Owner-gated.
func (e *Engine) WithdrawUSDC(caller, to common.Address, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.RequireOwner(caller); err != nil {
		return observe("withdraw_usdc", err)
	}
	if amount == 0 {
		return observe("withdraw_usdc", types.ErrInvalidAmount)
	}
	if err := e.settlement.PayOut(to, amount); err != nil {
		return observe("withdraw_usdc", err)
	}

	e.logger.Info("usdc-withdrawn",
		zap.String("to", to.Hex()),
		zap.Uint64("amount", amount))
	e.emit(events.USDCWithdrawn{To: to, Amount: amount})
	return observe("withdraw_usdc", nil)
}

// TransferOwnership hands the contract owner role to newOwner.
func (e *Engine) TransferOwnership(caller, newOwner common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return observe("transfer_ownership", e.access.TransferOwnership(caller, newOwner))
}

// RenounceOwnership irreversibly abandons the owner role.
func (e *Engine) RenounceOwnership(caller common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.access.RenounceOwnership(caller)
	if err == nil {
		e.logger.Warn("ownership-renounced", zap.String("caller", caller.Hex()))
	}
	return observe("renounce_ownership", err)
}

// AddAdmin adds addr to the admin set. Owner-gated.
func (e *Engine) AddAdmin(caller, addr common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return observe("add_admin", e.access.AddAdmin(caller, addr))
}

// RemoveAdmin removes addr from the admin set. Owner-gated.
func (e *Engine) RemoveAdmin(caller, addr common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return observe("remove_admin", e.access.RemoveAdmin(caller, addr))
}
