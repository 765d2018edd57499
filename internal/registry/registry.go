// Package registry owns the canonical marketplace records: asset entries,
// pending whole-asset purchases, secondary-market share listings, and
// per-seller sale metrics. Ids are monotonic and never reused.
//
// The registry stores records only; lifecycle rules and value movement are
// enforced by the engine, which also provides all synchronization.
package registry

import (
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/pkg/types"
)

// Registry is the record store for the marketplace ledger.
type Registry struct {
	assets      map[uint64]*types.Asset
	nextAssetID uint64

	pending map[uint64]*types.PendingPurchase

	listings      map[uint64]*types.ShareListing
	nextListingID uint64

	sellerMetrics map[common.Address]*types.SellerMetrics
}

// New creates an empty registry. Ids start at 1.
func New() *Registry {
	return &Registry{
		assets:        make(map[uint64]*types.Asset),
		nextAssetID:   1,
		pending:       make(map[uint64]*types.PendingPurchase),
		listings:      make(map[uint64]*types.ShareListing),
		nextListingID: 1,
		sellerMetrics: make(map[common.Address]*types.SellerMetrics),
	}
}

// CreateAsset stores a new unverified, unsold asset record and returns it.
func (r *Registry) CreateAsset(seller common.Address, price uint64, metadataURI string) *types.Asset {
	a := &types.Asset{
		ID:          r.nextAssetID,
		Seller:      seller,
		Price:       price,
		MetadataURI: metadataURI,
		CreatedAt:   time.Now(),
	}
	r.assets[a.ID] = a
	r.nextAssetID++
	AssetsTracked.Set(float64(len(r.assets)))
	return a
}

// Asset returns the record for id.
func (r *Registry) Asset(id uint64) (*types.Asset, bool) {
	a, ok := r.assets[id]
	return a, ok
}

// Assets returns every asset record in id order.
func (r *Registry) Assets() []*types.Asset {
	out := make([]*types.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Tombstone clears the seller of a delisted asset. The record itself stays
// so the id is never reused.
func (r *Registry) Tombstone(id uint64) {
	a, ok := r.assets[id]
	if !ok {
		return
	}
	a.Seller = types.ZeroAddress
	a.Delisted = true
}

// SetPending records the escrowed purchase for an asset.
func (r *Registry) SetPending(p *types.PendingPurchase) {
	r.pending[p.AssetID] = p
	PendingPurchases.Set(float64(len(r.pending)))
}

// Pending returns the pending purchase for assetID.
func (r *Registry) Pending(assetID uint64) (*types.PendingPurchase, bool) {
	p, ok := r.pending[assetID]
	return p, ok
}

// ClearPending removes a resolved purchase.
func (r *Registry) ClearPending(assetID uint64) {
	delete(r.pending, assetID)
	PendingPurchases.Set(float64(len(r.pending)))
}

// PendingCount returns the number of unresolved purchases.
func (r *Registry) PendingCount() int {
	return len(r.pending)
}

// CreateListing stores a new active share listing and returns it.
func (r *Registry) CreateListing(assetID uint64, seller common.Address, numShares, pricePerShare uint64) *types.ShareListing {
	l := &types.ShareListing{
		ID:            r.nextListingID,
		AssetID:       assetID,
		Seller:        seller,
		NumShares:     numShares,
		PricePerShare: pricePerShare,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	r.listings[l.ID] = l
	r.nextListingID++
	return l
}

// Listing returns the listing for id.
func (r *Registry) Listing(id uint64) (*types.ShareListing, bool) {
	l, ok := r.listings[id]
	return l, ok
}

// ListingsForAsset returns all listings (any state) for assetID in id order.
func (r *Registry) ListingsForAsset(assetID uint64) []*types.ShareListing {
	out := make([]*types.ShareListing, 0)
	for _, l := range r.listings {
		if l.AssetID == assetID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveListings returns every active listing in id order.
func (r *Registry) ActiveListings() []*types.ShareListing {
	out := make([]*types.ShareListing, 0)
	for _, l := range r.listings {
		if l.Active {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveListingCount returns the number of active listings for assetID.
func (r *Registry) ActiveListingCount(assetID uint64) int {
	count := 0
	for _, l := range r.listings {
		if l.AssetID == assetID && l.Active {
			count++
		}
	}
	return count
}

func (r *Registry) metricsFor(seller common.Address) *types.SellerMetrics {
	m, ok := r.sellerMetrics[seller]
	if !ok {
		m = &types.SellerMetrics{Seller: seller}
		r.sellerMetrics[seller] = m
	}
	return m
}

// IncConfirmedSale increments seller's confirmed-sale counter.
func (r *Registry) IncConfirmedSale(seller common.Address) {
	r.metricsFor(seller).ConfirmedSales++
}

// IncCanceledSale increments seller's canceled-sale counter.
func (r *Registry) IncCanceledSale(seller common.Address) {
	r.metricsFor(seller).CanceledSales++
}

// SellerMetrics returns a copy of seller's metrics. Zero-valued for sellers
// with no resolved sales.
func (r *Registry) SellerMetrics(seller common.Address) types.SellerMetrics {
	m, ok := r.sellerMetrics[seller]
	if !ok {
		return types.SellerMetrics{Seller: seller}
	}
	return *m
}
