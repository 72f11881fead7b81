package buffer_test

import (
	"errors"
	"testing"

	"github.com/momentics/safemem/api"
	"github.com/momentics/safemem/buffer"
)

func TestViewReadWrite(t *testing.T) {
	b, err := buffer.New[int64](16)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()

	v, err := buffer.NewView(b)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if v.Len() != 16 {
		t.Errorf("view Len = %d, want 16", v.Len())
	}
	if v.Raw() == nil {
		t.Error("view Raw is nil for a live buffer")
	}

	for i := 0; i < v.Len(); i++ {
		v.Set(i, int64(i*i))
	}
	// Writes through the raw pointer land in the owning buffer.
	for i := 0; i < b.Len(); i++ {
		got, err := b.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if got != int64(i*i) {
			t.Errorf("[%d] = %d, want %d", i, got, i*i)
		}
	}
	if v.At(3) != 9 {
		t.Errorf("At(3) = %d, want 9", v.At(3))
	}
}

func TestViewRequiresLiveBuffer(t *testing.T) {
	inert, err := buffer.New[byte](0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buffer.NewView(inert); !errors.Is(err, api.ErrInvalidOperation) {
		t.Errorf("NewView on inert buffer = %v, want InvalidOperation", err)
	}

	b, err := buffer.New[byte](4)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Release(); err != nil {
		t.Fatal(err)
	}
	if _, err := buffer.NewView(b); !errors.Is(err, api.ErrUseAfterRelease) {
		t.Errorf("NewView on released buffer = %v, want UseAfterRelease", err)
	}
}
