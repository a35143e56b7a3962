package fuelcrypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
)

func TestVerifyP256RoundTrip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	hash := Keccak256([]byte("fuel ecr1 fixture"))

	r, s, err := ecdsa.Sign(rand.Reader, priv, hash)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !VerifyP256(hash, r.Bytes(), s.Bytes(), priv.X.Bytes(), priv.Y.Bytes()) {
		t.Fatal("VerifyP256 should accept a valid signature")
	}
}

func TestVerifyP256RejectsTamperedHash(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	hash := Keccak256([]byte("fuel ecr1 fixture"))
	r, s, err := ecdsa.Sign(rand.Reader, priv, hash)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := Keccak256([]byte("tampered"))
	if VerifyP256(tampered, r.Bytes(), s.Bytes(), priv.X.Bytes(), priv.Y.Bytes()) {
		t.Fatal("VerifyP256 should reject a signature over a different hash")
	}
}

func TestVerifyP256RejectsOffCurvePoint(t *testing.T) {
	hash := make([]byte, 32)
	r := []byte{1}
	s := []byte{1}
	x := []byte{1}
	y := []byte{1}
	if VerifyP256(hash, r, s, x, y) {
		t.Fatal("VerifyP256 should reject a point not on the curve")
	}
}
