package strategy

import (
	"testing"

	"github.com/rmehta/tradesim/internal/core"
)

type stubStrategy struct {
	name string
}

func (s *stubStrategy) Name() string        { return s.name }
func (s *stubStrategy) Description() string { return "stub" }
func (s *stubStrategy) MinBars() int        { return 1 }
func (s *stubStrategy) GenerateSignals(bars []core.Bar) ([]core.SignalRow, error) {
	return nil, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register("alpha", func() Strategy { return &stubStrategy{name: "alpha"} })

	s, ok := r.Get("alpha")
	if !ok {
		t.Fatal("expected strategy to be found")
	}
	if s.Name() != "alpha" {
		t.Errorf("Name() = %s, want alpha", s.Name())
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("unknown name should not be found")
	}
}

func TestRegistry_PreservesOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"charlie", "alpha", "bravo"}
	for _, n := range names {
		n := n
		r.Register(n, func() Strategy { return &stubStrategy{name: n} })
	}

	got := r.Names()
	if len(got) != 3 {
		t.Fatalf("Names() len = %d, want 3", len(got))
	}
	for i, n := range names {
		if got[i] != n {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], n)
		}
	}
}

func TestRegistry_ReregisterKeepsSlot(t *testing.T) {
	r := NewRegistry()
	r.Register("a", func() Strategy { return &stubStrategy{name: "a"} })
	r.Register("b", func() Strategy { return &stubStrategy{name: "b"} })
	r.Register("a", func() Strategy { return &stubStrategy{name: "a2"} })

	got := r.Names()
	if got[0] != "a" || got[1] != "b" || len(got) != 2 {
		t.Errorf("Names() = %v, want [a b]", got)
	}

	s, _ := r.Get("a")
	if s.Name() != "a2" {
		t.Errorf("replacement factory not used, got %s", s.Name())
	}
}

func TestDiff(t *testing.T) {
	rows := []core.SignalRow{
		{Signal: 1},
		{Signal: 1},
		{Signal: 0},
		{Signal: 1},
		{Signal: -1},
	}

	Diff(rows)

	want := []int{0, 0, -1, 1, -2}
	for i, w := range want {
		if rows[i].Position != w {
			t.Errorf("rows[%d].Position = %d, want %d", i, rows[i].Position, w)
		}
	}
}
