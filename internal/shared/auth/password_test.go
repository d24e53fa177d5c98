package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	cfg, err := NewPasswordConfig()
	if err != nil {
		t.Fatalf("NewPasswordConfig: %v", err)
	}

	hash, err := cfg.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !cfg.VerifyPassword("correct horse battery staple", hash) {
		t.Fatalf("expected password to verify")
	}
	if cfg.VerifyPassword("wrong password", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestPasswordPepperChangesVerification(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "pepper-a")
	withPepper, err := NewPasswordConfig()
	if err != nil {
		t.Fatalf("NewPasswordConfig: %v", err)
	}
	hash, err := withPepper.HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	other := &PasswordConfig{BcryptCost: 10, Pepper: "pepper-b"}
	if other.VerifyPassword("secret", hash) {
		t.Fatalf("expected different pepper to fail verification")
	}
}

func TestPasswordConfigRejectsBadCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "25")
	if _, err := NewPasswordConfig(); err == nil {
		t.Fatalf("expected out-of-range cost to be rejected")
	}
}
