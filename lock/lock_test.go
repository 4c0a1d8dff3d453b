package lock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestWrapAndRead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.lock")
	defer teardown()
	//
	l := NewSharedLock()
	cell := Wrap(l, "hello")
	g := l.Read()
	defer g.Release()
	if *cell.Read(g) != "hello" {
		t.Errorf("expected cell to read back 'hello', got %q", *cell.Read(g))
	}
}

func TestWriteMutates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.lock")
	defer teardown()
	//
	l := NewSharedLock()
	cell := Wrap(l, 7)
	g := l.Write()
	*cell.Write(g) = 11
	g.Release()
	rg := l.Read()
	defer rg.Release()
	if *cell.Read(rg) != 11 {
		t.Errorf("expected mutated cell to hold 11, is %d", *cell.Read(rg))
	}
}

func TestForeignGuardPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.lock")
	defer teardown()
	//
	l1 := NewSharedLock()
	l2 := NewSharedLock()
	cell := Wrap(l1, 1)
	g := l2.Read()
	defer g.Release()
	defer func() {
		if recover() == nil {
			t.Error("expected read with foreign guard to panic, didn't")
		}
	}()
	_ = cell.Read(g)
}

func TestReleasedGuardPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.lock")
	defer teardown()
	//
	l := NewSharedLock()
	cell := Wrap(l, 1)
	g := l.Read()
	g.Release()
	defer func() {
		if recover() == nil {
			t.Error("expected read with released guard to panic, didn't")
		}
	}()
	_ = cell.Read(g)
}

func TestDoubleReleasePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.lock")
	defer teardown()
	//
	l := NewSharedLock()
	g := l.Read()
	g.Release()
	defer func() {
		if recover() == nil {
			t.Error("expected double release to panic, didn't")
		}
	}()
	g.Release()
}

func TestConcurrentReaders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.lock")
	defer teardown()
	//
	l := NewSharedLock()
	cell := Wrap(l, 42)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g := l.Read()
			defer g.Release()
			if *cell.Read(g) != 42 {
				t.Error("reader observed wrong value")
			}
		}()
	}
	wg.Wait()
}

func TestWriterExcludesReaders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.lock")
	defer teardown()
	//
	l := NewSharedLock()
	cell := Wrap(l, 0)
	wguard := l.Write()
	var observed int32
	done := make(chan struct{})
	go func() {
		g := l.Read()
		atomic.StoreInt32(&observed, int32(*cell.Read(g)))
		g.Release()
		close(done)
	}()
	time.Sleep(20 * time.Millisecond) // reader must still be blocked
	*cell.Write(wguard) = 99
	wguard.Release()
	<-done
	if atomic.LoadInt32(&observed) != 99 {
		t.Errorf("expected reader to observe write of 99, observed %d", observed)
	}
}

func TestProtectedBy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssrules.lock")
	defer teardown()
	//
	l1 := NewSharedLock()
	l2 := NewSharedLock()
	cell := Wrap(l1, "x")
	if !cell.ProtectedBy(l1) {
		t.Error("expected cell to be protected by its own lock")
	}
	if cell.ProtectedBy(l2) {
		t.Error("expected cell not to be protected by a foreign lock")
	}
}
