package vm

import "testing"

func TestMemoryByteRoundTrip(t *testing.T) {
	var m Memory
	if err := m.SetByte(0x100, 0xAB); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetByte(0x100)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xAB {
		t.Fatalf("GetByte = 0x%02X, want 0xAB", got)
	}
}

func TestMemoryWordRoundTrip(t *testing.T) {
	var m Memory
	if err := m.SetWord(3, 0x00002A); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetWord(3)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x00002A {
		t.Fatalf("GetWord = 0x%06X, want 0x00002A", got)
	}
}

func TestMemoryFloatRoundTrip(t *testing.T) {
	var m Memory
	if err := m.SetFloat(0, 6.5); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetFloat(0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 6.5 {
		t.Fatalf("GetFloat = %v, want 6.5", got)
	}
}

func TestMemoryOutOfRangeReadReturnsZero(t *testing.T) {
	var m Memory
	b, err := m.GetByte(MemSize)
	if err == nil {
		t.Fatal("expected error reading out-of-range address")
	}
	if b != 0 {
		t.Fatalf("out-of-range read = 0x%02X, want 0", b)
	}
}

func TestMemoryOutOfRangeWriteIsNoOp(t *testing.T) {
	var m Memory
	if err := m.SetByte(MemSize, 0xFF); err == nil {
		t.Fatal("expected error writing out-of-range address")
	}
}

func TestMemoryLoadBytes(t *testing.T) {
	var m Memory
	data := []byte{0x18, 0x00, 0x30}
	if err := m.LoadBytes(0, data); err != nil {
		t.Fatal(err)
	}
	for i, want := range data {
		got, err := m.GetByte(uint32(i))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got, want)
		}
	}
	// no other address touched
	if b, _ := m.GetByte(3); b != 0 {
		t.Errorf("byte 3 = 0x%02X, want 0 (untouched)", b)
	}
}
