// Package events defines the domain events emitted by the ledger engine and
// the in-process bus that fans them out to external-delivery collaborators
// (event journal, websocket stream).
package events

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Payload is a concrete domain event body.
type Payload interface {
	EventType() string
}

// Event wraps a payload with its delivery envelope. Events are emitted
// synchronously with the state change they describe.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"payload"`
}

// Wrap builds the envelope for p.
func Wrap(p Payload) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      p.EventType(),
		Timestamp: time.Now(),
		Payload:   p,
	}
}

// AssetCreated is emitted when a seller lists a new asset.
type AssetCreated struct {
	AssetID     uint64         `json:"asset_id"`
	Seller      common.Address `json:"seller"`
	Price       uint64         `json:"price"`
	MetadataURI string         `json:"metadata_uri"`
}

func (AssetCreated) EventType() string { return "AssetCreated" }

// AssetVerified is emitted when an admin verifies an asset.
type AssetVerified struct {
	AssetID uint64         `json:"asset_id"`
	Admin   common.Address `json:"admin"`
}

func (AssetVerified) EventType() string { return "AssetVerified" }

// AssetDelisted is emitted when an admin tombstones an asset.
type AssetDelisted struct {
	AssetID uint64         `json:"asset_id"`
	Admin   common.Address `json:"admin"`
}

func (AssetDelisted) EventType() string { return "AssetDelisted" }

// FractionalAssetCreated is emitted when an asset is fractionalized.
type FractionalAssetCreated struct {
	AssetID       uint64 `json:"asset_id"`
	TotalShares   uint64 `json:"total_shares"`
	PricePerShare uint64 `json:"price_per_share"`
}

func (FractionalAssetCreated) EventType() string { return "FractionalAssetCreated" }

// FractionalAssetPurchased is emitted on a primary fractional purchase.
type FractionalAssetPurchased struct {
	AssetID   uint64         `json:"asset_id"`
	Buyer     common.Address `json:"buyer"`
	NumShares uint64         `json:"num_shares"`
	Amount    uint64         `json:"amount"`
}

func (FractionalAssetPurchased) EventType() string { return "FractionalAssetPurchased" }

// AssetPurchased is emitted when a whole-asset purchase is escrowed.
type AssetPurchased struct {
	AssetID uint64         `json:"asset_id"`
	Buyer   common.Address `json:"buyer"`
	Amount  uint64         `json:"amount"`
}

func (AssetPurchased) EventType() string { return "AssetPurchased" }

// AssetPaymentConfirmed is emitted when a whole-asset sale settles.
type AssetPaymentConfirmed struct {
	AssetID        uint64         `json:"asset_id"`
	Buyer          common.Address `json:"buyer"`
	Seller         common.Address `json:"seller"`
	SellerProceeds uint64         `json:"seller_proceeds"`
	ListingFee     uint64         `json:"listing_fee"`
}

func (AssetPaymentConfirmed) EventType() string { return "AssetPaymentConfirmed" }

// AssetCanceled is emitted on a purchase cancellation, whole or fractional.
// NumShares is zero for whole-asset cancellations.
type AssetCanceled struct {
	AssetID   uint64         `json:"asset_id"`
	Buyer     common.Address `json:"buyer"`
	NumShares uint64         `json:"num_shares"`
	Refund    uint64         `json:"refund"`
	Penalty   uint64         `json:"penalty"`
}

func (AssetCanceled) EventType() string { return "AssetCanceled" }

// SharesListed is emitted when shares enter listing escrow.
type SharesListed struct {
	ListingID     uint64         `json:"listing_id"`
	AssetID       uint64         `json:"asset_id"`
	Seller        common.Address `json:"seller"`
	NumShares     uint64         `json:"num_shares"`
	PricePerShare uint64         `json:"price_per_share"`
}

func (SharesListed) EventType() string { return "SharesListed" }

// SharesPurchased is emitted when a listing is bought.
type SharesPurchased struct {
	ListingID uint64         `json:"listing_id"`
	AssetID   uint64         `json:"asset_id"`
	Buyer     common.Address `json:"buyer"`
	Seller    common.Address `json:"seller"`
	NumShares uint64         `json:"num_shares"`
	Total     uint64         `json:"total"`
	Fee       uint64         `json:"fee"`
}

func (SharesPurchased) EventType() string { return "SharesPurchased" }

// ShareListingCanceled is emitted when a listing's escrow returns to its
// seller.
type ShareListingCanceled struct {
	ListingID uint64         `json:"listing_id"`
	AssetID   uint64         `json:"asset_id"`
	Seller    common.Address `json:"seller"`
}

func (ShareListingCanceled) EventType() string { return "ShareListingCanceled" }

// SharesTransferred is emitted on a direct fee-less holding transfer.
type SharesTransferred struct {
	AssetID   uint64         `json:"asset_id"`
	From      common.Address `json:"from"`
	To        common.Address `json:"to"`
	NumShares uint64         `json:"num_shares"`
}

func (SharesTransferred) EventType() string { return "SharesTransferred" }

// FractionalDividendsDistributed is emitted after a dividend run. Holders
// and Amounts are parallel arrays in holder-registration order.
type FractionalDividendsDistributed struct {
	AssetID uint64           `json:"asset_id"`
	Amount  uint64           `json:"amount"`
	Holders []common.Address `json:"holders"`
	Amounts []uint64         `json:"amounts"`
}

func (FractionalDividendsDistributed) EventType() string { return "FractionalDividendsDistributed" }

// USDCWithdrawn is emitted when the owner withdraws custody funds.
type USDCWithdrawn struct {
	To     common.Address `json:"to"`
	Amount uint64         `json:"amount"`
}

func (USDCWithdrawn) EventType() string { return "USDCWithdrawn" }

// SellerRegistered is emitted when an admin registers a seller.
type SellerRegistered struct {
	Seller common.Address `json:"seller"`
}

func (SellerRegistered) EventType() string { return "SellerRegistered" }
