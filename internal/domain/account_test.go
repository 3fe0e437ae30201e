package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateMovement(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		direction   Direction
		amount      decimal.Decimal
		expectError bool
	}{
		{
			name:        "outbound more than balance",
			balance:     decimal.NewFromInt(10),
			direction:   DirectionOutbound,
			amount:      decimal.NewFromInt(15),
			expectError: true,
		},
		{
			name:        "outbound exact balance",
			balance:     decimal.NewFromInt(100),
			direction:   DirectionOutbound,
			amount:      decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "outbound less than balance",
			balance:     decimal.NewFromInt(100),
			direction:   DirectionOutbound,
			amount:      decimal.NewFromInt(50),
			expectError: false,
		},
		{
			name:        "inbound never fails",
			balance:     decimal.Zero,
			direction:   DirectionInbound,
			amount:      decimal.NewFromInt(1000000),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateMovement(tt.direction, tt.amount)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyMovement(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}

	in := acc.ApplyMovement(DirectionInbound, decimal.NewFromInt(25))
	if !in.Equal(decimal.NewFromInt(125)) {
		t.Errorf("expected 125 after inbound, got %s", in)
	}

	out := acc.ApplyMovement(DirectionOutbound, decimal.NewFromInt(25))
	if !out.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected 75 after outbound, got %s", out)
	}

	if !acc.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("ApplyMovement must not mutate the account, balance is %s", acc.Balance)
	}
}

func TestEntry_SignedAmount(t *testing.T) {
	inbound := &Entry{Direction: DirectionInbound, Amount: decimal.NewFromInt(50)}
	if !inbound.SignedAmount().Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected +50, got %s", inbound.SignedAmount())
	}

	outbound := &Entry{Direction: DirectionOutbound, Amount: decimal.NewFromInt(50)}
	if !outbound.SignedAmount().Equal(decimal.NewFromInt(-50)) {
		t.Errorf("expected -50, got %s", outbound.SignedAmount())
	}
}
