package types

import "fmt"

// DomainError is a named failure condition raised by the ledger engine.
// Every precondition violation aborts the whole operation with exactly one
// of the sentinel values below; callers surface the Code verbatim.
type DomainError struct {
	Code    string // Stable machine-readable condition name
	Message string // Human-readable description
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Sentinel conditions. Compare with errors.Is.
var (
	ErrSellerNotRegistered           = &DomainError{Code: "SellerNotRegistered", Message: "caller is not a registered seller"}
	ErrInvalidPrice                  = &DomainError{Code: "InvalidPrice", Message: "price must be greater than zero"}
	ErrAssetDoesNotExist             = &DomainError{Code: "AssetDoesNotExist", Message: "no asset with this id"}
	ErrAssetAlreadyVerified          = &DomainError{Code: "AssetAlreadyVerified", Message: "asset is already verified"}
	ErrAssetNotVerified              = &DomainError{Code: "AssetNotVerified", Message: "asset has not been verified"}
	ErrAssetAlreadySold              = &DomainError{Code: "AssetAlreadySold", Message: "asset is already sold or has a pending buyer"}
	ErrAssetAlreadyFractionalized    = &DomainError{Code: "AssetAlreadyFractionalized", Message: "asset is already fractionalized"}
	ErrNotAdmin                      = &DomainError{Code: "NotAdmin", Message: "caller is not an admin"}
	ErrNotOwner                      = &DomainError{Code: "NotOwner", Message: "caller is not the contract owner"}
	ErrNotBuyer                      = &DomainError{Code: "NotBuyer", Message: "caller is not the recorded buyer"}
	ErrInvalidAmount                 = &DomainError{Code: "InvalidAmount", Message: "amount must be greater than zero"}
	ErrInvalidRecipient              = &DomainError{Code: "InvalidRecipient", Message: "recipient is the zero identity or the caller"}
	ErrInsufficientTokens            = &DomainError{Code: "InsufficientTokens", Message: "not enough shares remaining"}
	ErrCannotWithdrawYet             = &DomainError{Code: "CannotWithdrawYet", Message: "withdrawals are not enabled for this asset"}
	ErrNoTokensOwned                 = &DomainError{Code: "NoTokensOwned", Message: "caller holds no shares of this asset"}
	ErrNotEnoughTokensOwned          = &DomainError{Code: "NotEnoughTokensOwned", Message: "caller holds fewer shares than requested"}
	ErrFractionalizedAssetWithBuyers = &DomainError{Code: "FractionalizedAssetWithBuyers", Message: "asset still has outstanding share holders"}
	ErrInsufficientUSDCBalance       = &DomainError{Code: "InsufficientUSDCBalance", Message: "settlement balance is too low"}
	ErrShareListingNotFound          = &DomainError{Code: "ShareListingNotFound", Message: "no share listing with this id"}
	ErrShareListingNotActive         = &DomainError{Code: "ShareListingNotActive", Message: "share listing is no longer active"}
	ErrCannotBuyOwnShares            = &DomainError{Code: "CannotBuyOwnShares", Message: "caller cannot buy their own listing"}
	ErrNotShareSeller                = &DomainError{Code: "NotShareSeller", Message: "caller did not create this listing"}
	ErrNoPendingPurchase             = &DomainError{Code: "NoPendingPurchase", Message: "asset has no pending purchase"}
	ErrAssetNotFractionalized        = &DomainError{Code: "AssetNotFractionalized", Message: "asset has not been fractionalized"}
)
