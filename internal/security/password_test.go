package security

import (
	"bytes"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	password := "Abcd1234!"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if bytes.Contains(hash, []byte(password)) {
		t.Error("hash must not contain the plaintext password")
	}

	ok, err := VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Error("correct password should verify")
	}
}

func TestVerifyPassword_Wrong(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Abcd1234!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	ok, err := VerifyPassword("Wrong5678!", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for mismatch: %v", err)
	}
	if ok {
		t.Error("wrong password must not verify")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if _, err := VerifyPassword("Abcd1234!", []byte("not-a-bcrypt-hash")); err == nil {
		t.Error("malformed hash should be an error, not a silent mismatch")
	}
}

func TestHashPassword_SaltedUniquely(t *testing.T) {
	t.Parallel()

	hash1, err := HashPassword("Abcd1234!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	hash2, err := HashPassword("Abcd1234!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if bytes.Equal(hash1, hash2) {
		t.Error("same password should hash differently due to random salt")
	}
}
