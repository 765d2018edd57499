package engine

import (
	"sync"
	"testing"
)

// TestSettlementConservationAcrossScriptedRun drives a full marketplace
// scenario and checks that no operation creates or destroys settlement
// value: only Deposit changes the total supply.
func TestSettlementConservationAcrossScriptedRun(t *testing.T) {
	e := newTestEngine(t)

	fund(t, e, tBuyer, 5000)
	fund(t, e, tBuyer2, 5000)
	want := uint64(10000)

	check := func(step string) {
		t.Helper()
		if got := totalSettlement(e); got != want {
			t.Fatalf("%s: settlement supply changed: want %d, got %d", step, want, got)
		}
	}

	whole := createVerifiedAsset(t, e, 1000)
	frac := createVerifiedAsset(t, e, 2000)
	fractionalize(t, e, frac, 100) // 20 per share
	check("setup")

	if err := e.BuyAsset(tBuyer, whole); err != nil {
		t.Fatal(err)
	}
	check("buy-asset")

	if err := e.ConfirmAssetPayment(tBuyer, whole); err != nil {
		t.Fatal(err)
	}
	check("confirm-payment")

	if err := e.BuyFractionalAsset(tBuyer2, frac, 40); err != nil {
		t.Fatal(err)
	}
	check("buy-fractional")

	listingID, err := e.ListSharesForSale(tBuyer2, frac, 10, 25)
	if err != nil {
		t.Fatal(err)
	}
	check("list-shares")

	if err := e.BuyListedShares(tBuyer, listingID); err != nil {
		t.Fatal(err)
	}
	check("buy-listed")

	if err := e.DistributeFractionalDividends(tAdmin, frac, 100); err != nil {
		t.Fatal(err)
	}
	check("dividends")

	if err := e.SetBuyerCanWithdraw(tAdmin, frac, true); err != nil {
		t.Fatal(err)
	}
	if err := e.CancelFractionalAssetPurchase(tBuyer2, frac, 30); err != nil {
		t.Fatal(err)
	}
	check("cancel-fractional")

	checkShareConservation(t, e, frac)
}

// TestConcurrentFractionalPurchases hammers one asset from many goroutines.
// The engine's serialization must keep the share conservation invariant and
// never oversell the supply.
func TestConcurrentFractionalPurchases(t *testing.T) {
	e := newTestEngine(t)
	id := createVerifiedAsset(t, e, 10000)
	fractionalize(t, e, id, 100) // 100 per share

	fund(t, e, tBuyer, 1_000_000)
	fund(t, e, tBuyer2, 1_000_000)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		buyer := tBuyer
		if i%2 == 1 {
			buyer = tBuyer2
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Most calls fail InsufficientTokens once supply runs out;
			// that is the point.
			_ = e.BuyFractionalAsset(buyer, id, 10)
		}()
	}
	wg.Wait()

	checkShareConservation(t, e, id)

	fa, err := e.FetchFractionalAsset(id)
	if err != nil {
		t.Fatal(err)
	}
	sold := fa.TotalShares - fa.RemainingShares
	if sold > 100 {
		t.Fatalf("oversold: %d shares", sold)
	}
	// Custody must match sold shares exactly.
	if got := e.CustodyBalance(); got != sold*100 {
		t.Errorf("custody %d does not match %d sold shares", got, sold)
	}
}

// TestConcurrentReadsDuringWrites exercises the read lock path under
// concurrent mutation; the race detector is the real assertion here.
func TestConcurrentReadsDuringWrites(t *testing.T) {
	e := newTestEngine(t)
	id := createVerifiedAsset(t, e, 1000)
	fractionalize(t, e, id, 1000) // 1 per share
	fund(t, e, tBuyer, 10_000)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = e.BuyFractionalAsset(tBuyer, id, 1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = e.FetchAvailableAssets()
			_, _ = e.GetAssetDisplayInfo(id)
			_ = e.GetBuyerPortfolio(tBuyer)
		}
	}()

	wg.Wait()
	checkShareConservation(t, e, id)
}
