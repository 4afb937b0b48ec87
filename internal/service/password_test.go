package service

import "testing"

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("longenough1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "longenough1" {
		t.Fatalf("expected opaque hash, got %q", hash)
	}

	if !hasher.Verify("longenough1", hash) {
		t.Fatalf("expected correct password to verify")
	}
	if hasher.Verify("wrongpassword", hash) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher()

	if hasher.Verify("longenough1", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
	if hasher.Verify("longenough1", "") {
		t.Fatalf("expected empty hash to fail verification")
	}
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err := hasher.Hash("longenough1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := hasher.Hash("longenough1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected salted hashes to differ")
	}
}
