package pool_test

import (
	"errors"
	"os"
	"runtime"
	"sync"
	"testing"

	"github.com/momentics/safemem/api"
	"github.com/momentics/safemem/buffer"
	"github.com/momentics/safemem/pool"
)

func TestMain(m *testing.M) {
	buffer.SetLeakPolicy(buffer.LeakLog)
	os.Exit(m.Run())
}

func TestRentReturnIdentity(t *testing.T) {
	p := pool.New[int64]()

	b1, err := p.Rent(10)
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	for i := 0; i < 10; i++ {
		b1.Set(i, int64(i))
	}
	if err := p.Return(b1); err != nil {
		t.Fatalf("Return: %v", err)
	}

	b2, err := p.Rent(10)
	if err != nil {
		t.Fatalf("Rent after Return: %v", err)
	}
	// Object identity is reused; content carries no guarantee, the
	// allocation is fresh.
	if b1 != b2 {
		t.Error("rent did not reuse the returned buffer object")
	}
	if !b2.Alive() || b2.Len() != 10 {
		t.Errorf("reused buffer: alive=%v len=%d, want true 10", b2.Alive(), b2.Len())
	}
	if err := p.Return(b2); err != nil {
		t.Fatal(err)
	}
}

func TestRentFreshAllocation(t *testing.T) {
	p := pool.New[byte]()

	b, err := p.Rent(4)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Return(b); err != nil {
		t.Fatal(err)
	}
	// Renting a different size from the same object is a fresh
	// allocate, not a resize-with-copy.
	b2, err := p.Rent(128)
	if err != nil {
		t.Fatal(err)
	}
	if b2.Len() != 128 {
		t.Errorf("Len = %d, want 128", b2.Len())
	}
	if err := p.Return(b2); err != nil {
		t.Fatal(err)
	}
}

func TestRentNegativeLength(t *testing.T) {
	p := pool.New[byte]()
	if _, err := p.Rent(-1); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("Rent(-1) = %v, want InvalidArgument", err)
	}
}

func TestReturnNil(t *testing.T) {
	p := pool.New[byte]()
	if err := p.Return(nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("Return(nil) = %v, want InvalidArgument", err)
	}
}

func TestReturnReleasedBuffer(t *testing.T) {
	p := pool.New[int32]()
	b, err := p.Rent(8)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Release(); err != nil {
		t.Fatal(err)
	}
	if err := p.Return(b); !errors.Is(err, api.ErrUseAfterRelease) {
		t.Errorf("Return of released buffer = %v, want UseAfterRelease", err)
	}
}

func TestCapacityOverflowDrops(t *testing.T) {
	p := pool.New[byte](pool.WithCapacity(1))

	b1, _ := p.Rent(4)
	b2, _ := p.Rent(4)
	if err := p.Return(b1); err != nil {
		t.Fatal(err)
	}
	if err := p.Return(b2); err != nil {
		t.Fatal(err)
	}
	if p.Idle() != 1 {
		t.Errorf("Idle = %d, want 1", p.Idle())
	}
	st := p.Stats()
	if st.Drops != 1 {
		t.Errorf("Drops = %d, want 1", st.Drops)
	}
}

func TestStatsAccounting(t *testing.T) {
	p := pool.New[int64]()

	b, _ := p.Rent(2)
	p.Return(b)
	b, _ = p.Rent(2)
	p.Return(b)

	st := p.Stats()
	if st.Rents != 2 || st.Returns != 2 {
		t.Errorf("Rents/Returns = %d/%d, want 2/2", st.Rents, st.Returns)
	}
	if st.Misses != 1 || st.Reuses != 1 {
		t.Errorf("Misses/Reuses = %d/%d, want 1/1", st.Misses, st.Reuses)
	}
	if st.Rents != st.Reuses+st.Misses {
		t.Errorf("rents %d != reuses %d + misses %d", st.Rents, st.Reuses, st.Misses)
	}
}

func TestConcurrentRentReturn(t *testing.T) {
	p := pool.New[int64]()
	workers := 8
	iterations := 2000

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				b, err := p.Rent(16)
				if err != nil {
					t.Errorf("worker %d: Rent: %v", id, err)
					return
				}
				if err := b.Set(0, int64(id)); err != nil {
					t.Errorf("worker %d: Set: %v", id, err)
					return
				}
				if v, _ := b.Get(0); v != int64(id) {
					t.Errorf("worker %d: buffer shared while rented", id)
					return
				}
				if err := p.Return(b); err != nil {
					t.Errorf("worker %d: Return: %v", id, err)
					return
				}
				if i%128 == 0 {
					runtime.Gosched()
				}
			}
		}(w)
	}
	wg.Wait()

	total := int64(workers * iterations)
	st := p.Stats()
	if st.Rents != total {
		t.Errorf("Rents = %d, want %d", st.Rents, total)
	}
	if st.Returns != total {
		t.Errorf("Returns = %d, want %d", st.Returns, total)
	}
	if st.Reuses+st.Misses != total {
		t.Errorf("Reuses+Misses = %d, want %d", st.Reuses+st.Misses, total)
	}
}

func TestDefaultBytesSingleton(t *testing.T) {
	if pool.DefaultBytes() != pool.DefaultBytes() {
		t.Error("DefaultBytes is not process-wide")
	}
}
