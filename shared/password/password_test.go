package password_test

import (
	"strings"
	"testing"

	"dwell/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{
			name:      "valid password",
			input:     "correct-horse-battery",
			expectErr: false,
		},
		{
			name:      "empty password",
			input:     "",
			expectErr: true,
		},
		{
			name:      "unicode password",
			input:     "pässwörd-日本語",
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.input)

			if tt.expectErr {
				if err == nil {
					t.Error("expected an error")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if hash == tt.input {
				t.Error("hash must not equal the plain password")
			}

			if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
				t.Errorf("expected a bcrypt hash, got %s", hash)
			}
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := password.Hash("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("expected distinct hashes for the same password")
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("student-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		password  string
		hash      string
		expectErr error
	}{
		{
			name:      "matching password",
			password:  "student-secret",
			hash:      hash,
			expectErr: nil,
		},
		{
			name:      "wrong password",
			password:  "wrong-secret",
			hash:      hash,
			expectErr: password.ErrInvalidPassword,
		},
		{
			name:      "empty password",
			password:  "",
			hash:      hash,
			expectErr: password.ErrInvalidPassword,
		},
		{
			name:      "empty hash",
			password:  "student-secret",
			hash:      "",
			expectErr: password.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}

				return
			}

			if err != tt.expectErr {
				t.Errorf("expected %v, got %v", tt.expectErr, err)
			}
		})
	}
}
