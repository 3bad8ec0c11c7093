package password

import (
	"testing"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.Cost != 10 {
		t.Fatalf("expected default cost 10, got %d", cfg.Cost)
	}
	if cfg.Policy.MinLength != 8 || cfg.Policy.MaxLength != 72 {
		t.Fatalf("unexpected default policy: %+v", cfg.Policy)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("AUTHD_BCRYPT_COST", "12")
	t.Setenv("AUTHD_PASSWORD_MIN_LEN", "10")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.Cost != 12 {
		t.Fatalf("expected cost 12, got %d", cfg.Cost)
	}
	if cfg.Policy.MinLength != 10 {
		t.Fatalf("expected min len 10, got %d", cfg.Policy.MinLength)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"cost not a number", "AUTHD_BCRYPT_COST", "ten"},
		{"cost above max", "AUTHD_BCRYPT_COST", "99"},
		{"min len zero", "AUTHD_PASSWORD_MIN_LEN", "0"},
		{"max len too large", "AUTHD_PASSWORD_MAX_LEN", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestFromEnv_MinAboveMax(t *testing.T) {
	t.Setenv("AUTHD_PASSWORD_MIN_LEN", "40")
	t.Setenv("AUTHD_PASSWORD_MAX_LEN", "20")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error when min > max")
	}
}
