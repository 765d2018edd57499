package shares

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/pkg/types"
)

var (
	alice = common.HexToAddress("0x01")
	bob   = common.HexToAddress("0x02")
	carol = common.HexToAddress("0x03")
)

// conserved checks the book invariant after every mutation.
func conserved(t *testing.T, b *Book) {
	t.Helper()
	got := b.Remaining() + b.Escrowed() + b.OutstandingHoldings()
	if got != b.Total() {
		t.Fatalf("conservation violated: remaining=%d escrowed=%d holdings=%d total=%d",
			b.Remaining(), b.Escrowed(), b.OutstandingHoldings(), b.Total())
	}
}

func TestSellFromSupply(t *testing.T) {
	l := NewLedger()
	b := l.CreateBook(1, 100)

	if err := b.SellFromSupply(alice, 40); err != nil {
		t.Fatalf("sell: %v", err)
	}
	conserved(t, b)

	if b.Remaining() != 60 || b.HolderShares(alice) != 40 {
		t.Errorf("remaining=%d alice=%d", b.Remaining(), b.HolderShares(alice))
	}

	err := b.SellFromSupply(bob, 61)
	if !errors.Is(err, types.ErrInsufficientTokens) {
		t.Errorf("expected InsufficientTokens, got %v", err)
	}
	conserved(t, b)
}

func TestReturnToSupply(t *testing.T) {
	l := NewLedger()
	b := l.CreateBook(1, 100)

	err := b.ReturnToSupply(alice, 1)
	if !errors.Is(err, types.ErrNoTokensOwned) {
		t.Errorf("expected NoTokensOwned, got %v", err)
	}

	if err := b.SellFromSupply(alice, 10); err != nil {
		t.Fatal(err)
	}

	err = b.ReturnToSupply(alice, 11)
	if !errors.Is(err, types.ErrNotEnoughTokensOwned) {
		t.Errorf("expected NotEnoughTokensOwned, got %v", err)
	}

	if err := b.ReturnToSupply(alice, 10); err != nil {
		t.Fatalf("return: %v", err)
	}
	conserved(t, b)

	if b.Remaining() != 100 || b.HolderShares(alice) != 0 {
		t.Errorf("remaining=%d alice=%d", b.Remaining(), b.HolderShares(alice))
	}
	if b.HasHolders() {
		t.Error("expected no holders after full return")
	}
}

func TestEscrowLifecycle(t *testing.T) {
	l := NewLedger()
	b := l.CreateBook(1, 100)

	if err := b.SellFromSupply(alice, 30); err != nil {
		t.Fatal(err)
	}

	if err := b.EscrowFromHolder(alice, 10); err != nil {
		t.Fatalf("escrow: %v", err)
	}
	conserved(t, b)

	if b.HolderShares(alice) != 20 || b.Escrowed() != 10 {
		t.Errorf("alice=%d escrowed=%d", b.HolderShares(alice), b.Escrowed())
	}

	// Buyer takes the escrowed shares.
	b.ReleaseEscrowTo(bob, 10)
	conserved(t, b)

	if b.HolderShares(bob) != 10 || b.Escrowed() != 0 {
		t.Errorf("bob=%d escrowed=%d", b.HolderShares(bob), b.Escrowed())
	}
}

func TestTransferHolding(t *testing.T) {
	l := NewLedger()
	b := l.CreateBook(1, 100)

	if err := b.SellFromSupply(alice, 25); err != nil {
		t.Fatal(err)
	}

	err := b.TransferHolding(alice, bob, 26)
	if !errors.Is(err, types.ErrNotEnoughTokensOwned) {
		t.Errorf("expected NotEnoughTokensOwned, got %v", err)
	}

	if err := b.TransferHolding(alice, bob, 25); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	conserved(t, b)

	if b.HolderShares(alice) != 0 || b.HolderShares(bob) != 25 {
		t.Errorf("alice=%d bob=%d", b.HolderShares(alice), b.HolderShares(bob))
	}
}

func TestHolderOrderIsRegistrationOrder(t *testing.T) {
	l := NewLedger()
	b := l.CreateBook(1, 100)

	for _, h := range []common.Address{carol, alice, bob} {
		if err := b.SellFromSupply(h, 10); err != nil {
			t.Fatal(err)
		}
	}
	// Re-buying must not duplicate the registry entry.
	if err := b.SellFromSupply(carol, 5); err != nil {
		t.Fatal(err)
	}

	holders := b.Holders()
	want := []common.Address{carol, alice, bob}
	if len(holders) != len(want) {
		t.Fatalf("expected %d holders, got %d", len(want), len(holders))
	}
	for i, h := range holders {
		if h.Holder != want[i] {
			t.Errorf("holder %d: expected %s, got %s", i, want[i].Hex(), h.Holder.Hex())
		}
	}
	if holders[0].Shares != 15 {
		t.Errorf("carol shares: expected 15, got %d", holders[0].Shares)
	}
}

func TestZeroBalanceHolderSkipped(t *testing.T) {
	l := NewLedger()
	b := l.CreateBook(1, 100)

	if err := b.SellFromSupply(alice, 10); err != nil {
		t.Fatal(err)
	}
	if err := b.SellFromSupply(bob, 10); err != nil {
		t.Fatal(err)
	}
	if err := b.ReturnToSupply(alice, 10); err != nil {
		t.Fatal(err)
	}

	holders := b.Holders()
	if len(holders) != 1 || holders[0].Holder != bob {
		t.Fatalf("expected only bob, got %v", holders)
	}
	if b.HolderCount() != 1 {
		t.Errorf("expected holder count 1, got %d", b.HolderCount())
	}
}
