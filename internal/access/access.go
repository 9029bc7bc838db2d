package access

import (
	"errors" // Sentinel error definitions

	"marketplace/internal/domain" // Importing domain models
)

// Permission errors returned by the rule checks. Handlers map these onto
// HTTP statuses at the request boundary.
var (
	ErrNotAuthenticated = errors.New("authentication required")       // Actor is not logged in
	ErrSelfBlock        = errors.New("cannot block yourself")         // Blocking your own account
	ErrInvalidAmount    = errors.New("amount must be positive")       // Non-positive transfer amount
	ErrAdminOnly        = errors.New("admin access required")         // Admin panel without the admin flag
)

// CanPostItem reports whether the actor may list an item for sale.
// Any authenticated user may post; there is no other constraint.
func CanPostItem(actorID uint) error {
	if actorID == 0 {
		return ErrNotAuthenticated // Unauthenticated actors cannot post
	}
	return nil
}

// CanBlock reports whether the actor may block the target user.
// The only rule beyond authentication is that self-blocks are rejected.
func CanBlock(actorID, targetID uint) error {
	if actorID == 0 {
		return ErrNotAuthenticated // Unauthenticated actors cannot block
	}
	if actorID == targetID {
		return ErrSelfBlock // Self-block is an invalid operation
	}
	return nil
}

// CanTransfer reports whether the actor may send a mock payment of the given
// amount. Payments are not real money, so there is deliberately no balance
// check: a sender may go arbitrarily negative. A block relation between the
// two users has no effect on transfers either.
func CanTransfer(actorID uint, amount float64) error {
	if actorID == 0 {
		return ErrNotAuthenticated // Unauthenticated actors cannot transfer
	}
	if amount <= 0 {
		return ErrInvalidAmount // Zero or negative amounts are rejected
	}
	return nil
}

// CanViewAdmin reports whether the user may open the admin panel.
// True iff the user exists and carries the admin flag.
func CanViewAdmin(user *domain.User) error {
	if user == nil {
		return ErrNotAuthenticated // Unauthenticated callers are never admins
	}
	if !user.IsAdmin {
		return ErrAdminOnly // Regular users are turned away with a notice
	}
	return nil
}
