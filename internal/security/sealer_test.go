package security

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewSealer_EmptyPassphrase(t *testing.T) {
	if _, err := NewSealer(""); err == nil {
		t.Fatal("expected error for empty passphrase")
	}
}

func TestSealAndOpen(t *testing.T) {
	sealer, err := NewSealer("test-passphrase")
	if err != nil {
		t.Fatalf("Failed to create sealer: %v", err)
	}

	plaintext := []byte(`{"access_token":"abc"}`)
	sealed, err := sealer.Seal(plaintext)
	if err != nil {
		t.Fatalf("Failed to seal: %v", err)
	}

	if !IsSealed(sealed) {
		t.Error("sealed payload should carry the seal header")
	}
	if bytes.Contains(sealed, plaintext) {
		t.Error("sealed payload should not contain the plaintext")
	}

	opened, err := sealer.Open(sealed)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("Value mismatch: got %s, want %s", opened, plaintext)
	}
}

func TestSeal_RandomizedOutput(t *testing.T) {
	sealer, _ := NewSealer("test-passphrase")

	a, err := sealer.Seal([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := sealer.Seal([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("sealing twice should produce different payloads")
	}
}

func TestOpen_WrongPassphrase(t *testing.T) {
	sealer, _ := NewSealer("right")
	other, _ := NewSealer("wrong")

	sealed, err := sealer.Seal([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Open(sealed); err == nil {
		t.Error("expected error opening with the wrong passphrase")
	}
}

func TestOpen_NotSealed(t *testing.T) {
	sealer, _ := NewSealer("pass")

	_, err := sealer.Open([]byte(`{"plain":true}`))
	if !errors.Is(err, ErrNotSealed) {
		t.Errorf("expected ErrNotSealed, got %v", err)
	}
}

func TestOpen_Truncated(t *testing.T) {
	sealer, _ := NewSealer("pass")

	sealed, err := sealer.Seal([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sealer.Open(sealed[:len(sealedMagic)+4]); err == nil {
		t.Error("expected error for truncated payload")
	}
}
