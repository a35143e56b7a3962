package fuelcrypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
)

func TestVerifyEd25519RoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	msg := []byte("fuel ed19 fixture")
	sig := ed25519.Sign(priv, msg)

	ok, err := VerifyEd25519(pub, msg, sig)
	if err != nil {
		t.Fatalf("VerifyEd25519: %v", err)
	}
	if !ok {
		t.Fatal("VerifyEd25519 should accept a valid signature")
	}
}

func TestVerifyEd25519RejectsTamperedMessage(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)
	sig := ed25519.Sign(priv, []byte("original"))

	ok, err := VerifyEd25519(pub, []byte("tampered"), sig)
	if err != nil {
		t.Fatalf("VerifyEd25519: %v", err)
	}
	if ok {
		t.Fatal("VerifyEd25519 should reject a tampered message")
	}
}

func TestVerifyEd25519BadKeyLength(t *testing.T) {
	if _, err := VerifyEd25519(make([]byte, 31), nil, make([]byte, 64)); err != ErrEd25519InvalidKeyLength {
		t.Fatalf("expected ErrEd25519InvalidKeyLength, got %v", err)
	}
}

func TestVerifyEd25519BadSigLength(t *testing.T) {
	if _, err := VerifyEd25519(make([]byte, 32), nil, make([]byte, 63)); err != ErrEd25519InvalidSigLength {
		t.Fatalf("expected ErrEd25519InvalidSigLength, got %v", err)
	}
}
