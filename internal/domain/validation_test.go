package domain

import (
	"strings"
	"testing"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Checking", false},
		{"whitespace only", "   ", true},
		{"max length", strings.Repeat("a", MaxAccountNameLength), false},
		{"too long", strings.Repeat("a", MaxAccountNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAccountName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Groceries"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateName(""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := ValidateName(strings.Repeat("x", MaxNameLength+1)); err == nil {
		t.Fatal("expected error for long name")
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(""); err != nil {
		t.Fatalf("empty description should be valid: %v", err)
	}
	if err := ValidateDescription(strings.Repeat("d", MaxDescriptionLength+1)); err == nil {
		t.Fatal("expected error for long description")
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 20, 0},
		{-5, -1, 20, 0},
		{50, 10, 50, 10},
		{500, 0, 100, 0},
	}

	for _, tt := range tests {
		l, o := ValidatePagination(tt.limit, tt.offset)
		if l != tt.wantLimit || o != tt.wantOffset {
			t.Fatalf("ValidatePagination(%d, %d) = %d, %d; want %d, %d", tt.limit, tt.offset, l, o, tt.wantLimit, tt.wantOffset)
		}
	}
}
