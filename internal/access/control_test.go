package access

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/pkg/types"
)

var (
	owner  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	admin  = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	seller = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	nobody = common.HexToAddress("0x00000000000000000000000000000000000000c1")
)

func TestOwnerIsAdmin(t *testing.T) {
	c := New(owner)

	if !c.IsOwner(owner) {
		t.Error("expected owner to be owner")
	}
	if !c.IsAdmin(owner) {
		t.Error("expected owner to be in the admin set")
	}
	if c.IsAdmin(nobody) {
		t.Error("expected stranger not to be admin")
	}
}

func TestAddRemoveAdmin(t *testing.T) {
	c := New(owner)

	err := c.AddAdmin(nobody, admin)
	if !errors.Is(err, types.ErrNotOwner) {
		t.Errorf("expected NotOwner, got %v", err)
	}

	if err := c.AddAdmin(owner, admin); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if !c.IsAdmin(admin) {
		t.Error("expected admin after add")
	}

	if err := c.RemoveAdmin(owner, admin); err != nil {
		t.Fatalf("remove admin: %v", err)
	}
	if c.IsAdmin(admin) {
		t.Error("expected admin removed")
	}
}

func TestRegisterSeller(t *testing.T) {
	c := New(owner)

	err := c.RegisterSeller(nobody, seller)
	if !errors.Is(err, types.ErrNotAdmin) {
		t.Errorf("expected NotAdmin, got %v", err)
	}

	if err := c.RegisterSeller(owner, seller); err != nil {
		t.Fatalf("register seller: %v", err)
	}
	if !c.IsRegisteredSeller(seller) {
		t.Error("expected registered seller")
	}
	if c.IsRegisteredSeller(nobody) {
		t.Error("expected stranger not registered")
	}
}

func TestTransferOwnership(t *testing.T) {
	c := New(owner)

	err := c.TransferOwnership(owner, types.ZeroAddress)
	if !errors.Is(err, types.ErrInvalidRecipient) {
		t.Errorf("expected InvalidRecipient, got %v", err)
	}

	if err := c.TransferOwnership(owner, admin); err != nil {
		t.Fatalf("transfer ownership: %v", err)
	}
	if !c.IsOwner(admin) {
		t.Error("expected new owner")
	}
	if c.IsOwner(owner) {
		t.Error("expected old owner demoted")
	}
	// Old owner stays admin until removed.
	if !c.IsAdmin(owner) {
		t.Error("expected old owner to keep admin membership")
	}
}

func TestRenounceOwnershipIsTerminal(t *testing.T) {
	c := New(owner)

	if err := c.RenounceOwnership(owner); err != nil {
		t.Fatalf("renounce: %v", err)
	}

	if _, ok := c.Owner(); ok {
		t.Error("expected no owner after renounce")
	}

	// Every owner-gated operation must now fail NotOwner, including from the
	// former owner. The zero address must not inherit the role.
	for _, caller := range []common.Address{owner, types.ZeroAddress, nobody} {
		err := c.AddAdmin(caller, admin)
		if !errors.Is(err, types.ErrNotOwner) {
			t.Errorf("caller %s: expected NotOwner, got %v", caller.Hex(), err)
		}
	}
}
