package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/pkg/types"
)

// Queries are side-effect-free projections. Each runs under the read lock,
// so a single call always sees one consistent snapshot, and returns copies.

// FetchAsset returns the record for assetID.
func (e *Engine) FetchAsset(assetID uint64) (types.Asset, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	a, ok := e.records.Asset(assetID)
	if !ok {
		return types.Asset{}, types.ErrAssetDoesNotExist
	}
	return *a, nil
}

// FetchAllListedAssets returns every non-delisted asset in id order.
func (e *Engine) FetchAllListedAssets() []types.Asset {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.Asset, 0)
	for _, a := range e.records.Assets() {
		if a.Delisted {
			continue
		}
		out = append(out, *a)
	}
	return out
}

// FetchAvailableAssets returns assets open to a buyer: verified, unsold,
// not pending, and either whole or with fractional supply remaining.
func (e *Engine) FetchAvailableAssets() []types.Asset {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.Asset, 0)
	for _, a := range e.records.Assets() {
		if a.Delisted || !a.Verified || a.Sold {
			continue
		}
		if _, pending := e.records.Pending(a.ID); pending {
			continue
		}
		if book, ok := e.shares.Book(a.ID); ok && book.Remaining() == 0 {
			continue
		}
		out = append(out, *a)
	}
	return out
}

// FetchFractionalizedAssets returns the fractional record of every
// fractionalized asset in id order.
func (e *Engine) FetchFractionalizedAssets() []types.FractionalAsset {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.FractionalAsset, 0, len(e.fractional))
	for _, book := range e.shares.Books() {
		fs, ok := e.fractional[book.AssetID()]
		if !ok {
			continue
		}
		out = append(out, types.FractionalAsset{
			AssetID:          book.AssetID(),
			TotalShares:      book.Total(),
			PricePerShare:    fs.pricePerShare,
			RemainingShares:  book.Remaining(),
			BuyerCanWithdraw: fs.buyerCanWithdraw,
		})
	}
	return out
}

// FetchFractionalAsset returns the fractional record for assetID.
func (e *Engine) FetchFractionalAsset(assetID uint64) (types.FractionalAsset, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	fs, ok := e.fractional[assetID]
	if !ok {
		if _, exists := e.records.Asset(assetID); !exists {
			return types.FractionalAsset{}, types.ErrAssetDoesNotExist
		}
		return types.FractionalAsset{}, types.ErrAssetNotFractionalized
	}
	book, _ := e.shares.Book(assetID)
	return types.FractionalAsset{
		AssetID:          assetID,
		TotalShares:      book.Total(),
		PricePerShare:    fs.pricePerShare,
		RemainingShares:  book.Remaining(),
		BuyerCanWithdraw: fs.buyerCanWithdraw,
	}, nil
}

// GetAssetDisplayInfo returns the flattened dashboard projection for one
// asset.
func (e *Engine) GetAssetDisplayInfo(assetID uint64) (types.AssetDisplayInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	a, ok := e.records.Asset(assetID)
	if !ok {
		return types.AssetDisplayInfo{}, types.ErrAssetDoesNotExist
	}
	return e.displayInfo(a), nil
}

// FetchAllAssetsWithDisplayInfo returns the dashboard projection for every
// asset, including delisted tombstones, in id order.
func (e *Engine) FetchAllAssetsWithDisplayInfo() []types.AssetDisplayInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	assets := e.records.Assets()
	out := make([]types.AssetDisplayInfo, 0, len(assets))
	for _, a := range assets {
		out = append(out, e.displayInfo(a))
	}
	return out
}

// displayInfo builds the projection with the read lock held.
func (e *Engine) displayInfo(a *types.Asset) types.AssetDisplayInfo {
	info := types.AssetDisplayInfo{
		Asset:          *a,
		ActiveListings: e.records.ActiveListingCount(a.ID),
	}
	if fs, ok := e.fractional[a.ID]; ok {
		book, _ := e.shares.Book(a.ID)
		info.Fractionalized = true
		info.TotalShares = book.Total()
		info.RemainingShares = book.Remaining()
		info.PricePerShare = fs.pricePerShare
		info.HolderCount = book.HolderCount()
	}
	return info
}

// GetBuyerPortfolio returns buyer's share positions across all
// fractionalized assets, in asset-id order.
func (e *Engine) GetBuyerPortfolio(buyer common.Address) []types.PortfolioEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.PortfolioEntry, 0)
	for _, book := range e.shares.Books() {
		owned := book.HolderShares(buyer)
		if owned == 0 {
			continue
		}
		entry := types.PortfolioEntry{
			AssetID:     book.AssetID(),
			SharesOwned: owned,
		}
		if fs, ok := e.fractional[book.AssetID()]; ok {
			entry.PricePerShare = fs.pricePerShare
			entry.Value = owned * fs.pricePerShare
		}
		if a, ok := e.records.Asset(book.AssetID()); ok {
			entry.MetadataURI = a.MetadataURI
		}
		out = append(out, entry)
	}
	return out
}

// GetSellerAssets returns every asset currently attributed to seller.
func (e *Engine) GetSellerAssets(seller common.Address) []types.Asset {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.Asset, 0)
	for _, a := range e.records.Assets() {
		if a.Seller == seller {
			out = append(out, *a)
		}
	}
	return out
}

// GetSellerMetrics returns seller's confirmed/canceled sale counters.
func (e *Engine) GetSellerMetrics(seller common.Address) types.SellerMetrics {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.records.SellerMetrics(seller)
}

// GetFractionalAssetBuyersList returns the asset's current holders with
// their balances, in holder-registration order.
func (e *Engine) GetFractionalAssetBuyersList(assetID uint64) ([]types.HolderBalance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	book, ok := e.shares.Book(assetID)
	if !ok {
		if _, exists := e.records.Asset(assetID); !exists {
			return nil, types.ErrAssetDoesNotExist
		}
		return nil, types.ErrAssetNotFractionalized
	}
	return book.Holders(), nil
}

// GetAssetShareListings returns every listing for assetID, any state.
// FetchShareListing returns the record for listingID, active or not.
func (e *Engine) FetchShareListing(listingID uint64) (types.ShareListing, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	l, ok := e.records.Listing(listingID)
	if !ok {
		return types.ShareListing{}, types.ErrShareListingNotFound
	}
	return *l, nil
}

func (e *Engine) GetAssetShareListings(assetID uint64) []types.ShareListing {
	e.mu.RLock()
	defer e.mu.RUnlock()

	listings := e.records.ListingsForAsset(assetID)
	out := make([]types.ShareListing, 0, len(listings))
	for _, l := range listings {
		out = append(out, *l)
	}
	return out
}

// GetAllActiveShareListings returns every active listing.
func (e *Engine) GetAllActiveShareListings() []types.ShareListing {
	e.mu.RLock()
	defer e.mu.RUnlock()

	listings := e.records.ActiveListings()
	out := make([]types.ShareListing, 0, len(listings))
	for _, l := range listings {
		out = append(out, *l)
	}
	return out
}
