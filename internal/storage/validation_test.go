package storage

import (
	"context"
	"errors"
	"testing"
)

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: "transactions"},
		{name: "empty", input: "", wantErr: ErrEmptyString},
		{name: "whitespace only", input: " \t\n", wantErr: ErrEmptyString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.input, "key")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateString(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateContext(t *testing.T) {
	if err := validateContext(context.Background()); err != nil {
		t.Errorf("validateContext(Background) = %v", err)
	}
	//nolint:staticcheck // nil context is the point of this check
	if err := validateContext(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("validateContext(nil) = %v, want ErrNilContext", err)
	}
}

func TestValidateBlob(t *testing.T) {
	if err := validateBlob([]byte{}); err != nil {
		t.Errorf("validateBlob(empty) = %v, want nil", err)
	}
	if err := validateBlob(nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("validateBlob(nil) = %v, want ErrNilParameter", err)
	}
}
