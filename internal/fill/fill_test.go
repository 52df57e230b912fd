package fill

import (
	"bytes"
	"testing"
)

func TestIntoOffsetPreservesSurroundingBytes(t *testing.T) {
	dst := []byte{1, 1, 0, 0, 0, 0, 1, 1}
	Into(dst, 2, 2, 2, []byte{0xAB, 0xCD})
	want := []byte{1, 1, 0xAB, 0xCD, 0xAB, 0xCD, 1, 1}
	if !bytes.Equal(dst, want) {
		t.Fatalf("Into = %v, want %v", dst, want)
	}
}

func TestIntoZeroPattern(t *testing.T) {
	dst := []byte{9, 9, 9, 9}
	Into(dst, 0, 2, 2, nil)
	want := []byte{0, 0, 0, 0}
	if !bytes.Equal(dst, want) {
		t.Fatalf("Into with nil pattern = %v, want %v", dst, want)
	}
}
