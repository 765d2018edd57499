package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Asset is the canonical record for a tokenized property.
type Asset struct {
	ID          uint64         `json:"id"`
	Seller      common.Address `json:"seller"`
	Owner       common.Address `json:"owner"` // Buyer after a confirmed whole-asset sale
	Price       uint64         `json:"price"` // Settlement token units
	MetadataURI string         `json:"metadata_uri"`
	Verified    bool           `json:"verified"`
	Sold        bool           `json:"sold"`
	Canceled    bool           `json:"canceled"`
	Delisted    bool           `json:"delisted"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FractionalAsset is the share-supply record attached 1:1 to a
// fractionalized asset.
type FractionalAsset struct {
	AssetID          uint64 `json:"asset_id"`
	TotalShares      uint64 `json:"total_shares"`
	PricePerShare    uint64 `json:"price_per_share"` // price / totalShares, floor division
	RemainingShares  uint64 `json:"remaining_shares"`
	BuyerCanWithdraw bool   `json:"buyer_can_withdraw"`
}

// PendingPurchase tracks an escrowed whole-asset purchase awaiting
// confirmation or cancellation.
type PendingPurchase struct {
	AssetID        uint64         `json:"asset_id"`
	Buyer          common.Address `json:"buyer"`
	EscrowedAmount uint64         `json:"escrowed_amount"`
	Paid           bool           `json:"paid"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ShareListing is a secondary-market listing. The listed shares are held in
// engine escrow while the listing is active.
type ShareListing struct {
	ID            uint64         `json:"id"`
	AssetID       uint64         `json:"asset_id"`
	Seller        common.Address `json:"seller"`
	NumShares     uint64         `json:"num_shares"`
	PricePerShare uint64         `json:"price_per_share"`
	Active        bool           `json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
}

// SellerMetrics counts resolved whole-asset sales per seller. Counters only
// ever increase.
type SellerMetrics struct {
	Seller         common.Address `json:"seller"`
	ConfirmedSales uint64         `json:"confirmed_sales"`
	CanceledSales  uint64         `json:"canceled_sales"`
}

// SuccessRate returns the confirmed fraction of resolved sales in percent,
// or 0 when no sale has resolved yet.
func (m *SellerMetrics) SuccessRate() float64 {
	total := m.ConfirmedSales + m.CanceledSales
	if total == 0 {
		return 0
	}
	return float64(m.ConfirmedSales) / float64(total) * 100
}

// HolderBalance pairs a share holder with their current balance.
type HolderBalance struct {
	Holder common.Address `json:"holder"`
	Shares uint64         `json:"shares"`
}

// PortfolioEntry is one asset position in a buyer's portfolio projection.
type PortfolioEntry struct {
	AssetID       uint64 `json:"asset_id"`
	MetadataURI   string `json:"metadata_uri"`
	SharesOwned   uint64 `json:"shares_owned"`
	PricePerShare uint64 `json:"price_per_share"`
	Value         uint64 `json:"value"` // sharesOwned * pricePerShare
}

// AssetDisplayInfo is the flattened projection served to dashboards.
type AssetDisplayInfo struct {
	Asset           Asset  `json:"asset"`
	Fractionalized  bool   `json:"fractionalized"`
	TotalShares     uint64 `json:"total_shares,omitempty"`
	RemainingShares uint64 `json:"remaining_shares,omitempty"`
	PricePerShare   uint64 `json:"price_per_share,omitempty"`
	HolderCount     int    `json:"holder_count"`
	ActiveListings  int    `json:"active_listings"`
}

// ZeroAddress is the zero identity. Transfers to it are rejected.
var ZeroAddress = common.Address{}
