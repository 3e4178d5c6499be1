package vm

import (
	"math"
	"testing"
)

func TestFloatRoundTripZero(t *testing.T) {
	if got := bytes2float(float2bytes(0)); got != 0 {
		t.Fatalf("bytes2float(float2bytes(0)) = %v, want 0", got)
	}
	if b := float2bytes(0); b != ([6]byte{}) {
		t.Fatalf("float2bytes(0) = %v, want all zero", b)
	}
}

func TestFloatEncodeExampleFromSpec(t *testing.T) {
	got := float2bytes(6.5)
	want := [6]byte{0x40, 0x2A, 0x00, 0x00, 0x00, 0x00}
	if got != want {
		t.Fatalf("float2bytes(6.5) = % X, want % X", got, want)
	}
	if v := bytes2float(want); v != 6.5 {
		t.Fatalf("bytes2float(40 2A 00 00 00 00) = %v, want 6.5", v)
	}
}

func TestFloatRoundTripValues(t *testing.T) {
	values := []float64{1, -1, 2.5, -2.5, 100.125, 0.001, -123456.789, 3.14159}
	for _, v := range values {
		b := float2bytes(v)
		got := bytes2float(b)
		if diff := math.Abs(got - v); diff > math.Abs(v)*1e-9+1e-12 {
			t.Errorf("round-trip %v: got %v (diff %v)", v, got, diff)
		}
	}
}

func TestFloatBytesRoundTripNonZero(t *testing.T) {
	b := float2bytes(42.5)
	if b == ([6]byte{}) {
		t.Fatal("non-zero value encoded to all-zero bytes")
	}
	v := bytes2float(b)
	b2 := float2bytes(v)
	if b != b2 {
		t.Fatalf("float2bytes(bytes2float(b)) = % X, want % X", b2, b)
	}
}
