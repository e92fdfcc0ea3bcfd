package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequired(t *testing.T) {
	if err := Required("name", "Budi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, v := range []string{"", "   ", "\t\n"} {
		err := Required("name", v)
		var vErr *Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Required(%q) = %v, want *Error", v, err)
		}
		if vErr.Field != "name" {
			t.Fatalf("field = %q, want name", vErr.Field)
		}
	}
}

func TestAmount(t *testing.T) {
	d, err := Amount("balance", "250.75")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(decimal.RequireFromString("250.75")) {
		t.Fatalf("Amount = %s, want 250.75", d)
	}

	if _, err := Amount("balance", "0"); err != nil {
		t.Fatalf("zero balance must be accepted: %v", err)
	}

	for _, v := range []string{"abc", "-5", ""} {
		if _, err := Amount("balance", v); err == nil {
			t.Fatalf("Amount(%q) must fail", v)
		}
	}
}

func TestPrice(t *testing.T) {
	if _, err := Price("price", "100.50"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, v := range []string{"0", "0.00", "abc", "-5"} {
		if _, err := Price("price", v); err == nil {
			t.Fatalf("Price(%q) must fail", v)
		}
	}
}

func TestQuantityAndNonNegative(t *testing.T) {
	if err := Quantity("quantity", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Quantity("quantity", 0); err == nil {
		t.Fatalf("zero quantity must fail")
	}

	if err := NonNegative("discount", decimal.Zero); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NonNegative("discount", decimal.NewFromInt(-1)); err == nil {
		t.Fatalf("negative discount must fail")
	}
}

func TestEmail(t *testing.T) {
	if err := Email("email", "budi@toko.id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range []string{"", "budi", "@toko.id", "budi@", "a@b@c"} {
		if err := Email("email", v); err == nil {
			t.Fatalf("Email(%q) must fail", v)
		}
	}
}
