package grid

// Child is a component that can be reused for a new set of props.
type Child[P any] interface {
	Key() string
	Change(props P) error
	Destroy()
}

// Reconcile brings existing in line with items, matching by key rather than
// position. A component whose key is still present is reused and receives
// the new props; items with a new key get a component from factory; the
// components left over are destroyed. The result follows the order of items.
//
// If a change or factory call fails, components created during this call
// are destroyed and existing is returned alongside the error. The list is
// unchanged, but components reused before the failing item may already
// hold their new props.
func Reconcile[P any, C Child[P]](existing []C, items []P, key func(P) string, factory func(P) (C, error)) ([]C, error) {
	byKey := make(map[string][]C, len(existing))
	for _, c := range existing {
		k := c.Key()
		byKey[k] = append(byKey[k], c)
	}

	out := make([]C, 0, len(items))
	var created []C
	used := make(map[any]bool, len(existing))

	fail := func(err error) ([]C, error) {
		for _, c := range created {
			c.Destroy()
		}
		return existing, err
	}

	for _, item := range items {
		k := key(item)
		if pool := byKey[k]; len(pool) > 0 {
			c := pool[0]
			byKey[k] = pool[1:]
			if err := c.Change(item); err != nil {
				return fail(err)
			}
			used[any(c)] = true
			out = append(out, c)
			continue
		}
		c, err := factory(item)
		if err != nil {
			return fail(err)
		}
		created = append(created, c)
		out = append(out, c)
	}

	for _, c := range existing {
		if !used[any(c)] {
			c.Destroy()
		}
	}
	return out, nil
}
