package registry

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/pkg/types"
)

var (
	seller = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	buyer  = common.HexToAddress("0x0000000000000000000000000000000000000b02")
)

func TestAssetIDsAreMonotonic(t *testing.T) {
	r := New()

	a1 := r.CreateAsset(seller, 1000, "ipfs://one")
	a2 := r.CreateAsset(seller, 2000, "ipfs://two")

	if a1.ID != 1 || a2.ID != 2 {
		t.Errorf("expected ids 1,2 got %d,%d", a1.ID, a2.ID)
	}

	got, ok := r.Asset(1)
	if !ok || got.Price != 1000 {
		t.Errorf("asset 1 lookup failed: ok=%v", ok)
	}
	if _, ok := r.Asset(99); ok {
		t.Error("expected missing asset")
	}
}

func TestTombstoneClearsSellerKeepsRecord(t *testing.T) {
	r := New()
	a := r.CreateAsset(seller, 1000, "ipfs://one")

	r.Tombstone(a.ID)

	got, ok := r.Asset(a.ID)
	if !ok {
		t.Fatal("tombstoned asset must remain resolvable")
	}
	if got.Seller != types.ZeroAddress || !got.Delisted {
		t.Errorf("expected cleared seller and delisted flag, got %+v", got)
	}

	// Id is never reused.
	next := r.CreateAsset(seller, 500, "ipfs://three")
	if next.ID != 2 {
		t.Errorf("expected id 2 after tombstone, got %d", next.ID)
	}
}

func TestPendingPurchaseLifecycle(t *testing.T) {
	r := New()
	a := r.CreateAsset(seller, 1000, "ipfs://one")

	r.SetPending(&types.PendingPurchase{AssetID: a.ID, Buyer: buyer, EscrowedAmount: 1000})

	p, ok := r.Pending(a.ID)
	if !ok || p.Buyer != buyer {
		t.Fatalf("pending lookup failed: ok=%v", ok)
	}

	r.ClearPending(a.ID)
	if _, ok := r.Pending(a.ID); ok {
		t.Error("expected pending cleared")
	}
}

func TestListings(t *testing.T) {
	r := New()

	l1 := r.CreateListing(1, seller, 10, 5)
	l2 := r.CreateListing(1, seller, 20, 6)
	l3 := r.CreateListing(2, seller, 30, 7)

	if l1.ID != 1 || l2.ID != 2 || l3.ID != 3 {
		t.Fatalf("listing ids: %d %d %d", l1.ID, l2.ID, l3.ID)
	}

	forAsset := r.ListingsForAsset(1)
	if len(forAsset) != 2 {
		t.Fatalf("expected 2 listings for asset 1, got %d", len(forAsset))
	}

	l2.Active = false
	active := r.ActiveListings()
	if len(active) != 2 {
		t.Fatalf("expected 2 active listings, got %d", len(active))
	}
	if r.ActiveListingCount(1) != 1 {
		t.Errorf("expected 1 active for asset 1, got %d", r.ActiveListingCount(1))
	}
}

func TestSellerMetricsMonotonic(t *testing.T) {
	r := New()

	m := r.SellerMetrics(seller)
	if m.ConfirmedSales != 0 || m.CanceledSales != 0 {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
	if rate := m.SuccessRate(); rate != 0 {
		t.Errorf("expected 0 success rate, got %f", rate)
	}

	r.IncConfirmedSale(seller)
	r.IncConfirmedSale(seller)
	r.IncConfirmedSale(seller)
	r.IncCanceledSale(seller)

	m = r.SellerMetrics(seller)
	if m.ConfirmedSales != 3 || m.CanceledSales != 1 {
		t.Errorf("expected 3/1, got %d/%d", m.ConfirmedSales, m.CanceledSales)
	}
	if rate := m.SuccessRate(); rate != 75 {
		t.Errorf("expected 75%% success rate, got %f", rate)
	}
}
