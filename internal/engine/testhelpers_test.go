package engine

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/internal/events"
	"go.uber.org/zap"
)

// Fixed identities used across engine tests.
var (
	tOwner  = common.HexToAddress("0x00000000000000000000000000000000000000f0")
	tAdmin  = common.HexToAddress("0x00000000000000000000000000000000000000f1")
	tSeller = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	tBuyer  = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	tBuyer2 = common.HexToAddress("0x00000000000000000000000000000000000000d2")
	tNobody = common.HexToAddress("0x00000000000000000000000000000000000000c9")
)

// newTestEngine builds an engine with the standard fee schedule, an admin,
// and a registered seller.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return newTestEngineWithBus(t, nil)
}

func newTestEngineWithBus(t *testing.T, bus *events.Bus) *Engine {
	t.Helper()

	logger, _ := zap.NewDevelopment()
	e, err := New(&Config{
		Owner:                  tOwner,
		ListingFeePct:          3,
		CancellationPenaltyPct: 1,
		ShareTradingFeePct:     2,
		Logger:                 logger,
		Bus:                    bus,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if err := e.AddAdmin(tOwner, tAdmin); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if err := e.RegisterSeller(tAdmin, tSeller); err != nil {
		t.Fatalf("register seller: %v", err)
	}
	return e
}

// createVerifiedAsset lists and verifies an asset priced at price.
func createVerifiedAsset(t *testing.T, e *Engine, price uint64) uint64 {
	t.Helper()

	id, err := e.CreateAsset(tSeller, price, "ipfs://test-asset")
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := e.VerifyAsset(tAdmin, id); err != nil {
		t.Fatalf("verify asset: %v", err)
	}
	return id
}

// fractionalize converts the asset into totalShares units.
func fractionalize(t *testing.T, e *Engine, assetID, totalShares uint64) {
	t.Helper()
	if err := e.CreateFractionalAsset(tAdmin, assetID, totalShares); err != nil {
		t.Fatalf("fractionalize: %v", err)
	}
}

// fund deposits settlement tokens for addr.
func fund(t *testing.T, e *Engine, addr common.Address, amount uint64) {
	t.Helper()
	if err := e.Deposit(addr, amount); err != nil {
		t.Fatalf("deposit: %v", err)
	}
}

// checkShareConservation asserts the share invariant for assetID.
func checkShareConservation(t *testing.T, e *Engine, assetID uint64) {
	t.Helper()

	book, ok := e.shares.Book(assetID)
	if !ok {
		t.Fatalf("no share book for asset %d", assetID)
	}
	got := book.Remaining() + book.Escrowed() + book.OutstandingHoldings()
	if got != book.Total() {
		t.Fatalf("share conservation violated for asset %d: %d != %d", assetID, got, book.Total())
	}
}

// totalSettlement returns the total settlement supply for conservation
// checks.
func totalSettlement(e *Engine) uint64 {
	return e.settlement.TotalSupply()
}
