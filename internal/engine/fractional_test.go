package engine

import (
	"errors"
	"testing"

	"github.com/propshare-labs/propshare/pkg/types"
)

func TestCreateFractionalAssetPreconditions(t *testing.T) {
	e := newTestEngine(t)
	id, _ := e.CreateAsset(tSeller, 1000, "ipfs://x")

	err := e.CreateFractionalAsset(tSeller, id, 100)
	if !errors.Is(err, types.ErrNotAdmin) {
		t.Errorf("non-admin: expected NotAdmin, got %v", err)
	}

	err = e.CreateFractionalAsset(tAdmin, id, 100)
	if !errors.Is(err, types.ErrAssetNotVerified) {
		t.Errorf("unverified: expected AssetNotVerified, got %v", err)
	}

	if err := e.VerifyAsset(tAdmin, id); err != nil {
		t.Fatal(err)
	}

	err = e.CreateFractionalAsset(tAdmin, id, 0)
	if !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("zero shares: expected InvalidAmount, got %v", err)
	}

	if err := e.CreateFractionalAsset(tAdmin, id, 100); err != nil {
		t.Fatalf("fractionalize: %v", err)
	}

	err = e.CreateFractionalAsset(tAdmin, id, 100)
	if !errors.Is(err, types.ErrAssetAlreadyFractionalized) {
		t.Errorf("repeat: expected AssetAlreadyFractionalized, got %v", err)
	}
}

func TestPricePerShareFloorDivision(t *testing.T) {
	tests := []struct {
		name        string
		price       uint64
		totalShares uint64
		wantPPS     uint64
	}{
		{name: "exact-division", price: 1000, totalShares: 100, wantPPS: 10},
		{name: "remainder-dropped", price: 1001, totalShares: 100, wantPPS: 10},
		{name: "price-below-shares", price: 99, totalShares: 100, wantPPS: 0},
		{name: "large-remainder", price: 999, totalShares: 500, wantPPS: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			id := createVerifiedAsset(t, e, tt.price)
			fractionalize(t, e, id, tt.totalShares)

			fa, err := e.FetchFractionalAsset(id)
			if err != nil {
				t.Fatal(err)
			}
			if fa.PricePerShare != tt.wantPPS {
				t.Errorf("price per share: expected %d, got %d", tt.wantPPS, fa.PricePerShare)
			}
			if fa.RemainingShares != tt.totalShares {
				t.Errorf("remaining: expected %d, got %d", tt.totalShares, fa.RemainingShares)
			}
		})
	}
}

func TestBuyFractionalAsset(t *testing.T) {
	e := newTestEngine(t)
	id := createVerifiedAsset(t, e, 1000)
	fractionalize(t, e, id, 100) // 10 per share

	fund(t, e, tBuyer, 500)

	err := e.BuyFractionalAsset(tBuyer, id, 101)
	if !errors.Is(err, types.ErrInsufficientTokens) {
		t.Errorf("oversubscribe: expected InsufficientTokens, got %v", err)
	}

	err = e.BuyFractionalAsset(tBuyer, id, 51)
	if !errors.Is(err, types.ErrInsufficientUSDCBalance) {
		t.Errorf("underfunded: expected InsufficientUSDCBalance, got %v", err)
	}

	if err := e.BuyFractionalAsset(tBuyer, id, 30); err != nil {
		t.Fatalf("buy: %v", err)
	}
	checkShareConservation(t, e, id)

	if got := e.Balance(tBuyer); got != 200 {
		t.Errorf("buyer balance: expected 200, got %d", got)
	}
	if got := e.CustodyBalance(); got != 300 {
		t.Errorf("custody: expected 300, got %d", got)
	}

	fa, _ := e.FetchFractionalAsset(id)
	if fa.RemainingShares != 70 {
		t.Errorf("remaining: expected 70, got %d", fa.RemainingShares)
	}
}

func TestCancelFractionalPurchaseFlow(t *testing.T) {
	e := newTestEngine(t)
	id := createVerifiedAsset(t, e, 1000)
	fractionalize(t, e, id, 100)

	fund(t, e, tBuyer, 300)
	if err := e.BuyFractionalAsset(tBuyer, id, 30); err != nil {
		t.Fatal(err)
	}

	// Withdrawals are disabled by default.
	err := e.CancelFractionalAssetPurchase(tBuyer, id, 10)
	if !errors.Is(err, types.ErrCannotWithdrawYet) {
		t.Fatalf("expected CannotWithdrawYet, got %v", err)
	}

	err = e.SetBuyerCanWithdraw(tNobody, id, true)
	if !errors.Is(err, types.ErrNotAdmin) {
		t.Fatalf("expected NotAdmin, got %v", err)
	}
	if err := e.SetBuyerCanWithdraw(tAdmin, id, true); err != nil {
		t.Fatal(err)
	}

	err = e.CancelFractionalAssetPurchase(tBuyer2, id, 10)
	if !errors.Is(err, types.ErrNoTokensOwned) {
		t.Errorf("non-holder: expected NoTokensOwned, got %v", err)
	}

	err = e.CancelFractionalAssetPurchase(tBuyer, id, 31)
	if !errors.Is(err, types.ErrNotEnoughTokensOwned) {
		t.Errorf("over-holding: expected NotEnoughTokensOwned, got %v", err)
	}

	if err := e.CancelFractionalAssetPurchase(tBuyer, id, 30); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	checkShareConservation(t, e, id)

	if got := e.Balance(tBuyer); got != 300 {
		t.Errorf("full refund: expected 300, got %d", got)
	}
	fa, _ := e.FetchFractionalAsset(id)
	if fa.RemainingShares != 100 {
		t.Errorf("remaining restored: expected 100, got %d", fa.RemainingShares)
	}
}

func TestDistributeDividendsFloorDivision(t *testing.T) {
	// totalShares=100, holder owns 10, dividend=100 -> holder receives
	// exactly 10; the floor remainder stays in custody.
	e := newTestEngine(t)
	id := createVerifiedAsset(t, e, 1000)
	fractionalize(t, e, id, 100)

	fund(t, e, tBuyer, 100)
	if err := e.BuyFractionalAsset(tBuyer, id, 10); err != nil {
		t.Fatal(err)
	}
	// Buyer2 holds 33 shares: 100*33/100 = 33.
	fund(t, e, tBuyer2, 330)
	if err := e.BuyFractionalAsset(tBuyer2, id, 33); err != nil {
		t.Fatal(err)
	}

	// Seed the dividend pool in custody on top of the sale proceeds.
	fund(t, e, tOwner, 100)
	if err := e.FundCustody(tOwner, 100); err != nil {
		t.Fatal(err)
	}
	custodyBefore := e.CustodyBalance()

	err := e.DistributeFractionalDividends(tNobody, id, 100)
	if !errors.Is(err, types.ErrNotAdmin) {
		t.Fatalf("expected NotAdmin, got %v", err)
	}

	if err := e.DistributeFractionalDividends(tAdmin, id, 100); err != nil {
		t.Fatalf("distribute: %v", err)
	}

	if got := e.Balance(tBuyer); got != 10 {
		t.Errorf("holder dividend: expected 10, got %d", got)
	}
	if got := e.Balance(tBuyer2); got != 33 {
		t.Errorf("holder2 dividend: expected 33, got %d", got)
	}
	// 100 - 10 - 33 = 57 of the deposit stays in custody.
	if got := e.CustodyBalance(); got != custodyBefore-43 {
		t.Errorf("custody: expected %d, got %d", custodyBefore-43, got)
	}
}

func TestDistributeDividendsLargeSupply(t *testing.T) {
	// 2^32 shares held by one buyer and a 2^32 dividend: the intermediate
	// amount*shares product exceeds uint64, but the sole holder must still
	// receive the full dividend.
	const supply = uint64(1) << 32

	e := newTestEngine(t)
	id := createVerifiedAsset(t, e, supply) // 1 per share
	fractionalize(t, e, id, supply)

	fund(t, e, tBuyer, supply)
	if err := e.BuyFractionalAsset(tBuyer, id, supply); err != nil {
		t.Fatal(err)
	}

	fund(t, e, tOwner, supply)
	if err := e.FundCustody(tOwner, supply); err != nil {
		t.Fatal(err)
	}

	if err := e.DistributeFractionalDividends(tAdmin, id, supply); err != nil {
		t.Fatalf("distribute: %v", err)
	}

	if got := e.Balance(tBuyer); got != supply {
		t.Errorf("sole holder dividend: expected %d, got %d", supply, got)
	}
}

func TestDistributeDividendsRequiresCustodyBalance(t *testing.T) {
	e := newTestEngine(t)
	id := createVerifiedAsset(t, e, 1000)
	fractionalize(t, e, id, 100)

	err := e.DistributeFractionalDividends(tAdmin, id, 1_000_000)
	if !errors.Is(err, types.ErrInsufficientUSDCBalance) {
		t.Errorf("expected InsufficientUSDCBalance, got %v", err)
	}
}

func TestDividendEventCarriesParallelArrays(t *testing.T) {
	e := newTestEngine(t)
	id := createVerifiedAsset(t, e, 1000)
	fractionalize(t, e, id, 100)

	fund(t, e, tBuyer, 200)
	if err := e.BuyFractionalAsset(tBuyer, id, 20); err != nil {
		t.Fatal(err)
	}
	fund(t, e, tBuyer2, 500)
	if err := e.BuyFractionalAsset(tBuyer2, id, 50); err != nil {
		t.Fatal(err)
	}

	holders, err := e.GetFractionalAssetBuyersList(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(holders) != 2 {
		t.Fatalf("expected 2 holders, got %d", len(holders))
	}
	// Registration order: tBuyer first.
	if holders[0].Holder != tBuyer || holders[1].Holder != tBuyer2 {
		t.Errorf("holder order wrong: %v", holders)
	}
}
