package access

import (
	"errors"
	"testing"

	"marketplace/internal/domain"
)

func TestCanPostItem(t *testing.T) {
	if err := CanPostItem(0); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("unauthenticated post: got %v, want ErrNotAuthenticated", err)
	}
	if err := CanPostItem(7); err != nil {
		t.Errorf("authenticated post: got %v, want nil", err)
	}
}

func TestCanBlock(t *testing.T) {
	tests := []struct {
		name    string
		actor   uint
		target  uint
		wantErr error
	}{
		{"unauthenticated", 0, 2, ErrNotAuthenticated},
		{"self block", 3, 3, ErrSelfBlock},
		{"other user", 3, 4, nil},
		{"unknown target id still passes the rule", 3, 9999, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanBlock(tt.actor, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanBlock(%d, %d) = %v, want %v", tt.actor, tt.target, err, tt.wantErr)
			}
		})
	}
}

func TestCanTransfer(t *testing.T) {
	tests := []struct {
		name    string
		actor   uint
		amount  float64
		wantErr error
	}{
		{"unauthenticated", 0, 10, ErrNotAuthenticated},
		{"zero amount", 1, 0, ErrInvalidAmount},
		{"negative amount", 1, -5.50, ErrInvalidAmount},
		{"positive amount", 1, 0.01, nil},
		{"large amount with no balance check", 1, 1e9, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransfer(tt.actor, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanTransfer(%d, %v) = %v, want %v", tt.actor, tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestCanViewAdmin(t *testing.T) {
	if err := CanViewAdmin(nil); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("nil user: got %v, want ErrNotAuthenticated", err)
	}
	if err := CanViewAdmin(&domain.User{ID: 1, IsAdmin: false}); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("regular user: got %v, want ErrAdminOnly", err)
	}
	if err := CanViewAdmin(&domain.User{ID: 2, IsAdmin: true}); err != nil {
		t.Errorf("admin user: got %v, want nil", err)
	}
}

// Blocking has no effect on transfers: the rule check only looks at the
// actor and the amount, never at block relations.
func TestBlockedUserCanStillTransfer(t *testing.T) {
	blockedActor := uint(2)
	if err := CanTransfer(blockedActor, 25); err != nil {
		t.Errorf("transfer from blocked user: got %v, want nil", err)
	}
}
