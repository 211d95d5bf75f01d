package grid

import (
	"errors"
	"slices"
	"testing"
)

type fakeChild struct {
	key       string
	changes   int
	destroyed bool
}

func (f *fakeChild) Key() string { return f.key }
func (f *fakeChild) Change(p string) error {
	f.changes++
	f.key = p
	return nil
}
func (f *fakeChild) Destroy() { f.destroyed = true }

func keys(cs []*fakeChild) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.key
	}
	return out
}

func TestReconcile_ReusesByKey(t *testing.T) {
	var created []*fakeChild
	factory := func(p string) (*fakeChild, error) {
		c := &fakeChild{key: p}
		created = append(created, c)
		return c, nil
	}
	id := func(s string) string { return s }

	list, err := Reconcile(nil, []string{"A", "B", "C"}, id, factory)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := list[0], list[1], list[2]
	created = nil

	list, err = Reconcile(list, []string{"B", "C", "D"}, id, factory)
	if err != nil {
		t.Fatal(err)
	}

	if got := keys(list); !slices.Equal(got, []string{"B", "C", "D"}) {
		t.Errorf("order = %v, want [B C D]", got)
	}
	if list[0] != b || list[1] != c {
		t.Error("B and C should be reused, not recreated")
	}
	if b.changes != 1 || c.changes != 1 {
		t.Errorf("reused children should receive new props once, got %d and %d", b.changes, c.changes)
	}
	if !a.destroyed {
		t.Error("A should be destroyed")
	}
	if b.destroyed || c.destroyed {
		t.Error("reused children must not be destroyed")
	}
	if len(created) != 1 || created[0].key != "D" {
		t.Errorf("created = %v, want only D", keys(created))
	}
}

func TestReconcile_ReordersWithoutRecreating(t *testing.T) {
	id := func(s string) string { return s }
	factory := func(p string) (*fakeChild, error) { return &fakeChild{key: p}, nil }

	list, _ := Reconcile(nil, []string{"A", "B"}, id, factory)
	a, b := list[0], list[1]

	list, err := Reconcile(list, []string{"B", "A"}, id, factory)
	if err != nil {
		t.Fatal(err)
	}
	if list[0] != b || list[1] != a {
		t.Error("reorder should move the existing components")
	}
}

func TestReconcile_DuplicateKeys(t *testing.T) {
	id := func(s string) string { return s }
	n := 0
	factory := func(p string) (*fakeChild, error) {
		n++
		return &fakeChild{key: p}, nil
	}

	list, _ := Reconcile(nil, []string{"A"}, id, factory)
	list, err := Reconcile(list, []string{"A", "A"}, id, factory)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0] == list[1] {
		t.Error("duplicate key should create a second component")
	}
	if n != 2 {
		t.Errorf("factory calls = %d, want 2", n)
	}
}

func TestReconcile_FactoryErrorRollsBack(t *testing.T) {
	id := func(s string) string { return s }
	boom := errors.New("boom")
	var created []*fakeChild
	factory := func(p string) (*fakeChild, error) {
		if p == "X" {
			return nil, boom
		}
		c := &fakeChild{key: p}
		created = append(created, c)
		return c, nil
	}

	existing, _ := Reconcile(nil, []string{"A"}, id, factory)
	created = nil

	got, err := Reconcile(existing, []string{"A", "N", "X"}, id, factory)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !slices.Equal(got, existing) {
		t.Error("existing list should be returned on error")
	}
	if existing[0].destroyed {
		t.Error("existing children must survive a failed reconcile")
	}
	if existing[0].changes != 1 {
		t.Errorf("reused child changes = %d, want 1 (props applied before the failure)", existing[0].changes)
	}
	if len(created) != 1 || !created[0].destroyed {
		t.Error("children created during the failed call should be destroyed")
	}
}
