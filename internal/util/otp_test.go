package util

import (
	"bytes"
	"strconv"
	"testing"
)

func TestGenerateLoginCode_SpaceAndFormat(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateLoginCode()
		if err != nil {
			t.Fatalf("GenerateLoginCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside 100000-999999", n)
		}
	}
}

func TestGenerateSessionToken_Entropy(t *testing.T) {
	first, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if len(first) != 48 {
		t.Fatalf("expected 48 hex chars (24 bytes), got %d", len(first))
	}
	second, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if first == second {
		t.Fatalf("two tokens collided")
	}
}

func TestHashCode_RoundTripAndAvalanche(t *testing.T) {
	digest := HashCode("042917")
	if !CodeMatches("042917", digest) {
		t.Fatalf("identical code must match its digest")
	}
	if CodeMatches("042918", digest) {
		t.Fatalf("one-character change must not match")
	}
	if bytes.Equal(digest, []byte("042917")) {
		t.Fatalf("digest must not equal the plaintext")
	}
	if bytes.Equal(digest, HashCode("042918")) {
		t.Fatalf("near-identical inputs must produce different digests")
	}
}
