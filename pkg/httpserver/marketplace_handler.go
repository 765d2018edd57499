package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/propshare-labs/propshare/internal/engine"
	"github.com/propshare-labs/propshare/pkg/cache"
	"github.com/propshare-labs/propshare/pkg/types"
	"go.uber.org/zap"
)

// CallerHeader carries the address a mutation is performed as. The engine
// does its own authorization against this identity.
const CallerHeader = "X-Caller-Address"

// MarketplaceHandler handles HTTP requests against the marketplace engine.
type MarketplaceHandler struct {
	engine   *engine.Engine
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewMarketplaceHandler creates a new marketplace handler.
func NewMarketplaceHandler(eng *engine.Engine, c cache.Cache, ttl time.Duration, logger *zap.Logger) *MarketplaceHandler {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &MarketplaceHandler{
		engine:   eng,
		cache:    c,
		cacheTTL: ttl,
		logger:   logger,
	}
}

// Routes mounts all marketplace endpoints on r.
func (h *MarketplaceHandler) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		// Read projections
		r.Get("/assets", h.handleListAssets)
		r.Get("/assets/available", h.handleAvailableAssets)
		r.Get("/assets/display", h.handleAllDisplayInfo)
		r.Get("/assets/{assetID}", h.handleGetAsset)
		r.Get("/assets/{assetID}/display", h.handleAssetDisplayInfo)
		r.Get("/assets/{assetID}/holders", h.handleAssetHolders)
		r.Get("/assets/{assetID}/listings", h.handleAssetListings)
		r.Get("/fractional", h.handleFractionalizedAssets)
		r.Get("/fractional/{assetID}", h.handleGetFractionalAsset)
		r.Get("/listings", h.handleActiveListings)
		r.Get("/portfolio/{address}", h.handlePortfolio)
		r.Get("/sellers/{address}/assets", h.handleSellerAssets)
		r.Get("/sellers/{address}/metrics", h.handleSellerMetrics)
		r.Get("/balances/{address}", h.handleBalance)
		r.Get("/stats", h.handleStats)

		// Mutations, caller identity from the X-Caller-Address header
		r.Post("/sellers", h.handleRegisterSeller)
		r.Post("/assets", h.handleCreateAsset)
		r.Post("/assets/{assetID}/verify", h.handleVerifyAsset)
		r.Post("/assets/{assetID}/delist", h.handleDelistAsset)
		r.Post("/assets/{assetID}/buy", h.handleBuyAsset)
		r.Post("/assets/{assetID}/confirm", h.handleConfirmPayment)
		r.Post("/assets/{assetID}/cancel", h.handleCancelPurchase)
		r.Post("/assets/{assetID}/fractionalize", h.handleFractionalize)
		r.Post("/assets/{assetID}/shares/buy", h.handleBuyShares)
		r.Post("/assets/{assetID}/shares/cancel", h.handleCancelShares)
		r.Post("/assets/{assetID}/shares/transfer", h.handleTransferShares)
		r.Post("/assets/{assetID}/shares/list", h.handleListShares)
		r.Post("/assets/{assetID}/withdraw-flag", h.handleSetWithdrawFlag)
		r.Post("/assets/{assetID}/dividends", h.handleDividends)
		r.Post("/listings/{listingID}/buy", h.handleBuyListing)
		r.Post("/listings/{listingID}/cancel", h.handleCancelListing)
		r.Post("/deposit", h.handleDeposit)
		r.Post("/custody/fund", h.handleFundCustody)
		r.Post("/custody/withdraw", h.handleWithdraw)
		r.Post("/admin/admins", h.handleAddAdmin)
		r.Post("/admin/admins/remove", h.handleRemoveAdmin)
		r.Post("/admin/transfer-ownership", h.handleTransferOwnership)
		r.Post("/admin/renounce-ownership", h.handleRenounceOwnership)
	})
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *MarketplaceHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

func (h *MarketplaceHandler) writeError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps engine errors onto HTTP statuses.
func (h *MarketplaceHandler) writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusConflict
	switch {
	case errors.Is(err, types.ErrAssetDoesNotExist),
		errors.Is(err, types.ErrShareListingNotFound),
		errors.Is(err, types.ErrAssetNotFractionalized):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrNotAdmin),
		errors.Is(err, types.ErrNotOwner),
		errors.Is(err, types.ErrNotBuyer),
		errors.Is(err, types.ErrNotShareSeller),
		errors.Is(err, types.ErrSellerNotRegistered):
		status = http.StatusForbidden
	case errors.Is(err, types.ErrInvalidPrice),
		errors.Is(err, types.ErrInvalidAmount),
		errors.Is(err, types.ErrInvalidRecipient):
		status = http.StatusBadRequest
	}

	resp := ErrorResponse{Error: err.Error()}
	var de *types.DomainError
	if errors.As(err, &de) {
		resp.Code = de.Code
	}
	h.writeJSON(w, status, resp)
}

// caller extracts and validates the caller identity header.
func (h *MarketplaceHandler) caller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := r.Header.Get(CallerHeader)
	if raw == "" {
		h.writeError(w, fmt.Sprintf("missing required header: %s", CallerHeader), http.StatusUnauthorized)
		return common.Address{}, false
	}
	if !common.IsHexAddress(raw) {
		h.writeError(w, fmt.Sprintf("invalid address in %s header", CallerHeader), http.StatusBadRequest)
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func (h *MarketplaceHandler) pathUint(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		h.writeError(w, fmt.Sprintf("invalid %s: %q", name, raw), http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func (h *MarketplaceHandler) pathAddress(w http.ResponseWriter, r *http.Request, name string) (common.Address, bool) {
	raw := chi.URLParam(r, name)
	if !common.IsHexAddress(raw) {
		h.writeError(w, fmt.Sprintf("invalid %s: %q", name, raw), http.StatusBadRequest)
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func (h *MarketplaceHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// ---- read projections ----

func (h *MarketplaceHandler) handleListAssets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.engine.FetchAllListedAssets())
}

func (h *MarketplaceHandler) handleAvailableAssets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.engine.FetchAvailableAssets())
}

func (h *MarketplaceHandler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	asset, err := h.engine.FetchAsset(assetID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, asset)
}

func (h *MarketplaceHandler) handleAssetDisplayInfo(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("display-asset-%d", assetID)
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	info, err := h.engine.GetAssetDisplayInfo(assetID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(cacheKey, info, h.cacheTTL)
	}
	h.writeJSON(w, http.StatusOK, info)
}

func (h *MarketplaceHandler) handleAllDisplayInfo(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "display-all-assets"
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	infos := h.engine.FetchAllAssetsWithDisplayInfo()
	if h.cache != nil {
		h.cache.Set(cacheKey, infos, h.cacheTTL)
	}
	h.writeJSON(w, http.StatusOK, infos)
}

func (h *MarketplaceHandler) handleAssetHolders(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	holders, err := h.engine.GetFractionalAssetBuyersList(assetID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, holders)
}

func (h *MarketplaceHandler) handleAssetListings(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.engine.GetAssetShareListings(assetID))
}

func (h *MarketplaceHandler) handleFractionalizedAssets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.engine.FetchFractionalizedAssets())
}

func (h *MarketplaceHandler) handleGetFractionalAsset(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	fa, err := h.engine.FetchFractionalAsset(assetID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, fa)
}

func (h *MarketplaceHandler) handleActiveListings(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.engine.GetAllActiveShareListings())
}

func (h *MarketplaceHandler) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.pathAddress(w, r, "address")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.engine.GetBuyerPortfolio(addr))
}

func (h *MarketplaceHandler) handleSellerAssets(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.pathAddress(w, r, "address")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.engine.GetSellerAssets(addr))
}

func (h *MarketplaceHandler) handleSellerMetrics(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.pathAddress(w, r, "address")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.engine.GetSellerMetrics(addr))
}

func (h *MarketplaceHandler) handleBalance(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.pathAddress(w, r, "address")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]uint64{"balance": h.engine.Balance(addr)})
}

func (h *MarketplaceHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

// ---- mutations ----

type registerSellerRequest struct {
	Address string `json:"address"`
}

func (h *MarketplaceHandler) handleRegisterSeller(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req registerSellerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !common.IsHexAddress(req.Address) {
		h.writeError(w, "invalid seller address", http.StatusBadRequest)
		return
	}

	err := h.engine.RegisterSeller(caller, common.HexToAddress(req.Address))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "registered"})
}

type createAssetRequest struct {
	Price       uint64 `json:"price"`
	MetadataURI string `json:"metadata_uri"`
}

func (h *MarketplaceHandler) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req createAssetRequest
	if !h.decode(w, r, &req) {
		return
	}

	assetID, err := h.engine.CreateAsset(caller, req.Price, req.MetadataURI)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.invalidateDisplay(assetID)
	h.writeJSON(w, http.StatusCreated, map[string]uint64{"asset_id": assetID})
}

// assetAction factors the common shape of caller+assetID mutations.
func (h *MarketplaceHandler) assetAction(w http.ResponseWriter, r *http.Request, fn func(common.Address, uint64) error) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}

	err := fn(caller, assetID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.invalidateDisplay(assetID)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *MarketplaceHandler) handleVerifyAsset(w http.ResponseWriter, r *http.Request) {
	h.assetAction(w, r, h.engine.VerifyAsset)
}

func (h *MarketplaceHandler) handleDelistAsset(w http.ResponseWriter, r *http.Request) {
	h.assetAction(w, r, h.engine.DelistAsset)
}

func (h *MarketplaceHandler) handleBuyAsset(w http.ResponseWriter, r *http.Request) {
	h.assetAction(w, r, h.engine.BuyAsset)
}

func (h *MarketplaceHandler) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	h.assetAction(w, r, h.engine.ConfirmAssetPayment)
}

func (h *MarketplaceHandler) handleCancelPurchase(w http.ResponseWriter, r *http.Request) {
	h.assetAction(w, r, h.engine.CancelAssetPurchase)
}

type fractionalizeRequest struct {
	TotalShares uint64 `json:"total_shares"`
}

func (h *MarketplaceHandler) handleFractionalize(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	var req fractionalizeRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.engine.CreateFractionalAsset(caller, assetID, req.TotalShares)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.invalidateDisplay(assetID)
	h.writeJSON(w, http.StatusCreated, map[string]string{"status": "fractionalized"})
}

type sharesRequest struct {
	NumShares uint64 `json:"num_shares"`
}

func (h *MarketplaceHandler) handleBuyShares(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	var req sharesRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.engine.BuyFractionalAsset(caller, assetID, req.NumShares)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.invalidateDisplay(assetID)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *MarketplaceHandler) handleCancelShares(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	var req sharesRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.engine.CancelFractionalAssetPurchase(caller, assetID, req.NumShares)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.invalidateDisplay(assetID)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type transferSharesRequest struct {
	To        string `json:"to"`
	NumShares uint64 `json:"num_shares"`
}

func (h *MarketplaceHandler) handleTransferShares(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	var req transferSharesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !common.IsHexAddress(req.To) {
		h.writeError(w, "invalid recipient address", http.StatusBadRequest)
		return
	}

	err := h.engine.TransferShares(caller, assetID, common.HexToAddress(req.To), req.NumShares)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.invalidateDisplay(assetID)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type listSharesRequest struct {
	NumShares     uint64 `json:"num_shares"`
	PricePerShare uint64 `json:"price_per_share"`
}

func (h *MarketplaceHandler) handleListShares(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	var req listSharesRequest
	if !h.decode(w, r, &req) {
		return
	}

	listingID, err := h.engine.ListSharesForSale(caller, assetID, req.NumShares, req.PricePerShare)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.invalidateDisplay(assetID)
	h.writeJSON(w, http.StatusCreated, map[string]uint64{"listing_id": listingID})
}

type withdrawFlagRequest struct {
	Allowed bool `json:"allowed"`
}

func (h *MarketplaceHandler) handleSetWithdrawFlag(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	var req withdrawFlagRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.engine.SetBuyerCanWithdraw(caller, assetID, req.Allowed)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type amountRequest struct {
	Amount uint64 `json:"amount"`
}

func (h *MarketplaceHandler) handleDividends(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	assetID, ok := h.pathUint(w, r, "assetID")
	if !ok {
		return
	}
	var req amountRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.engine.DistributeFractionalDividends(caller, assetID, req.Amount)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "distributed"})
}

// listingAction factors caller+listingID mutations.
func (h *MarketplaceHandler) listingAction(w http.ResponseWriter, r *http.Request, fn func(common.Address, uint64) error) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	listingID, ok := h.pathUint(w, r, "listingID")
	if !ok {
		return
	}

	err := fn(caller, listingID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if l, lookupErr := h.engine.FetchShareListing(listingID); lookupErr == nil {
		h.invalidateDisplay(l.AssetID)
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *MarketplaceHandler) handleBuyListing(w http.ResponseWriter, r *http.Request) {
	h.listingAction(w, r, h.engine.BuyListedShares)
}

func (h *MarketplaceHandler) handleCancelListing(w http.ResponseWriter, r *http.Request) {
	h.listingAction(w, r, h.engine.CancelShareListing)
}

func (h *MarketplaceHandler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.engine.Deposit(caller, req.Amount)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]uint64{"balance": h.engine.Balance(caller)})
}

func (h *MarketplaceHandler) handleFundCustody(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.engine.FundCustody(caller, req.Amount)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]uint64{"custody_balance": h.engine.CustodyBalance()})
}

type withdrawRequest struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

func (h *MarketplaceHandler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req withdrawRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !common.IsHexAddress(req.To) {
		h.writeError(w, "invalid recipient address", http.StatusBadRequest)
		return
	}

	err := h.engine.WithdrawUSDC(caller, common.HexToAddress(req.To), req.Amount)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "withdrawn"})
}

type addressRequest struct {
	Address string `json:"address"`
}

// adminAction factors caller+address admin mutations.
func (h *MarketplaceHandler) adminAction(w http.ResponseWriter, r *http.Request, fn func(common.Address, common.Address) error) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req addressRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !common.IsHexAddress(req.Address) {
		h.writeError(w, "invalid address", http.StatusBadRequest)
		return
	}

	err := fn(caller, common.HexToAddress(req.Address))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *MarketplaceHandler) handleAddAdmin(w http.ResponseWriter, r *http.Request) {
	h.adminAction(w, r, h.engine.AddAdmin)
}

func (h *MarketplaceHandler) handleRemoveAdmin(w http.ResponseWriter, r *http.Request) {
	h.adminAction(w, r, h.engine.RemoveAdmin)
}

func (h *MarketplaceHandler) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	h.adminAction(w, r, h.engine.TransferOwnership)
}

func (h *MarketplaceHandler) handleRenounceOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	err := h.engine.RenounceOwnership(caller)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "renounced"})
}

// invalidateDisplay drops cached projections touched by a mutation.
func (h *MarketplaceHandler) invalidateDisplay(assetID uint64) {
	if h.cache == nil {
		return
	}
	h.cache.Delete(fmt.Sprintf("display-asset-%d", assetID))
	h.cache.Delete("display-all-assets")
}
