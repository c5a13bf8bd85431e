package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{&ReferenceError{Kind: "gas", Name: "neon"}, ErrInvalidReference},
		{&TemperatureError{InsideC: 10, GroundC: 15}, ErrInvalidTemperature},
		{&NoLiftError{HeightM: 45000}, ErrNoLift},
		{Invalid("target", "must be positive, got %v", -1.0), ErrValidation},
	}
	for _, tt := range tests {
		wrapped := fmt.Errorf("solving: %w", tt.err)
		if !errors.Is(wrapped, tt.kind) {
			t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, tt.kind)
		}
	}
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &ReferenceError{Kind: "material", Name: "Kevlar"})
	var ref *ReferenceError
	if !errors.As(err, &ref) {
		t.Fatal("errors.As failed")
	}
	if ref.Name != "Kevlar" {
		t.Errorf("Name = %q, want %q", ref.Name, "Kevlar")
	}
	if got, want := ref.Error(), `unknown material "Kevlar"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
