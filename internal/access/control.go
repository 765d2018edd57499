// Package access gates privileged ledger operations behind the contract
// owner and the admin set, and tracks the registered-seller predicate.
//
// Control carries no lock of its own: the engine serializes every mutating
// operation, and Control is only ever touched inside that critical section.
package access

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/propshare-labs/propshare/pkg/types"
)

// ownerState distinguishes a held ownership from a renounced one. Renouncing
// is a one-way transition: once Unowned, every owner-gated operation fails
// NotOwner forever.
type ownerState int

const (
	stateOwned ownerState = iota
	stateUnowned
)

// Control is the owner/admin/seller registry injected into every privileged
// engine operation.
type Control struct {
	state   ownerState
	owner   common.Address
	admins  map[common.Address]struct{}
	sellers map[common.Address]struct{}
}

// New creates a Control owned by owner. The owner starts as the only admin.
func New(owner common.Address) *Control {
	c := &Control{
		state:   stateOwned,
		owner:   owner,
		admins:  make(map[common.Address]struct{}),
		sellers: make(map[common.Address]struct{}),
	}
	c.admins[owner] = struct{}{}
	return c
}

// Owner returns the current owner. ok is false once ownership has been
// renounced.
func (c *Control) Owner() (common.Address, bool) {
	if c.state == stateUnowned {
		return types.ZeroAddress, false
	}
	return c.owner, true
}

// IsOwner reports whether caller is the current owner. Always false after
// renouncement.
func (c *Control) IsOwner(caller common.Address) bool {
	return c.state == stateOwned && caller == c.owner
}

// IsAdmin reports whether caller may perform admin-gated operations.
func (c *Control) IsAdmin(caller common.Address) bool {
	_, ok := c.admins[caller]
	return ok
}

// IsRegisteredSeller reports whether caller may list assets.
func (c *Control) IsRegisteredSeller(caller common.Address) bool {
	_, ok := c.sellers[caller]
	return ok
}

// RequireOwner fails NotOwner unless caller is the current owner.
func (c *Control) RequireOwner(caller common.Address) error {
	if !c.IsOwner(caller) {
		return types.ErrNotOwner
	}
	return nil
}

// RequireAdmin fails NotAdmin unless caller is in the admin set.
func (c *Control) RequireAdmin(caller common.Address) error {
	if !c.IsAdmin(caller) {
		return types.ErrNotAdmin
	}
	return nil
}

// TransferOwnership hands ownership to newOwner and adds them to the admin
// set. The previous owner keeps admin membership until explicitly removed.
func (c *Control) TransferOwnership(caller, newOwner common.Address) error {
	if err := c.RequireOwner(caller); err != nil {
		return err
	}
	if newOwner == types.ZeroAddress {
		return types.ErrInvalidRecipient
	}
	c.owner = newOwner
	c.admins[newOwner] = struct{}{}
	return nil
}

// RenounceOwnership irreversibly moves the control to the Unowned state.
func (c *Control) RenounceOwnership(caller common.Address) error {
	if err := c.RequireOwner(caller); err != nil {
		return err
	}
	c.state = stateUnowned
	c.owner = types.ZeroAddress
	return nil
}

// AddAdmin adds addr to the admin set.
func (c *Control) AddAdmin(caller, addr common.Address) error {
	if err := c.RequireOwner(caller); err != nil {
		return err
	}
	c.admins[addr] = struct{}{}
	return nil
}

// RemoveAdmin removes addr from the admin set.
func (c *Control) RemoveAdmin(caller, addr common.Address) error {
	if err := c.RequireOwner(caller); err != nil {
		return err
	}
	delete(c.admins, addr)
	return nil
}

// RegisterSeller marks addr as a registered seller. Idempotent.
func (c *Control) RegisterSeller(caller, addr common.Address) error {
	if err := c.RequireAdmin(caller); err != nil {
		return err
	}
	c.sellers[addr] = struct{}{}
	return nil
}

// AdminCount returns the size of the admin set.
func (c *Control) AdminCount() int {
	return len(c.admins)
}

// SellerCount returns the number of registered sellers.
func (c *Control) SellerCount() int {
	return len(c.sellers)
}
