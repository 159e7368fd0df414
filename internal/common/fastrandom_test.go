package common

import (
	"bytes"
	"math/big"
	"testing"
)

func TestCPRNGDeterministic(t *testing.T) {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i)
	}

	rng1, err := NewCPRNG(&seed)
	if err != nil {
		t.Fatalf("NewCPRNG: %v", err)
	}
	rng2, _ := NewCPRNG(&seed)

	var buf1, buf2 [96]byte
	rng1.Read(buf1[:])
	// Each Read consumes whole 16-byte blocks, so chunked reads match the
	// one-shot stream only on block boundaries.
	for i := 0; i < 96; i += 32 {
		rng2.Read(buf2[i : i+32])
	}
	if !bytes.Equal(buf1[:], buf2[:]) {
		t.Fatal("block-aligned chunked reads diverge from one-shot read")
	}

	var again [96]byte
	rng1.Read(again[:])
	if bytes.Equal(buf1[:], again[:]) {
		t.Fatal("stream repeated itself")
	}
}

func TestFastRandomBigInt(t *testing.T) {
	limit := big.NewInt(1000)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		v := FastRandomBigInt(limit)
		if v.Sign() < 0 || v.Cmp(limit) >= 0 {
			t.Fatalf("value %v out of [0, %v)", v, limit)
		}
		seen[v.String()] = true
	}
	if len(seen) < 50 {
		t.Fatalf("only %d distinct values in 200 draws", len(seen))
	}
}

func TestFastRandomBytes(t *testing.T) {
	a := FastRandomBytes(32)
	b := FastRandomBytes(32)
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("wrong lengths %d, %d", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Fatal("two draws returned identical bytes")
	}
	if len(FastRandomBytes(0)) != 0 {
		t.Fatal("zero-length draw")
	}
}
