// Package store provides the reactive configuration tree shared by the chart
// host and its components. Values live in a JSON document addressed by dotted
// paths; subscribers are notified when a related path changes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrPathNotFound is returned by Decode when nothing is stored at the path.
var ErrPathNotFound = errors.New("path not found")

// Well-known paths.
const (
	PathRows     = "config.list.rows"
	PathTime     = "config.chart.time"
	PathWrappers = "config.wrappers"
)

// Listener receives the current value at the subscribed path.
type Listener func(value gjson.Result)

type subscription struct {
	path    string
	fn      Listener
	removed bool
}

// Store is a JSON document with change notification.
// It is not safe for concurrent use.
type Store struct {
	doc  []byte
	subs []*subscription
}

// New creates an empty store.
func New() *Store {
	return &Store{doc: []byte(`{}`)}
}

// Get returns the value at path.
func (s *Store) Get(path string) gjson.Result {
	return gjson.GetBytes(s.doc, path)
}

// Decode unmarshals the value at path into dst.
func (s *Store) Decode(path string, dst any) error {
	v := s.Get(path)
	if !v.Exists() {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if err := DecodeResult(v, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// DecodeResult unmarshals a value read from the store into dst.
func DecodeResult(v gjson.Result, dst any) error {
	return json.Unmarshal([]byte(v.Raw), dst)
}

// Set stores v at path and notifies subscribers.
func (s *Store) Set(path string, v any) error {
	doc, err := sjson.SetBytes(s.doc, path, v)
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	s.doc = doc
	s.notify(path)
	return nil
}

// Delete removes the value at path and notifies subscribers.
func (s *Store) Delete(path string) error {
	doc, err := sjson.DeleteBytes(s.doc, path)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	s.doc = doc
	s.notify(path)
	return nil
}

// Update replaces the value at path with the result of fn applied to the
// current value. If fn fails the document is left untouched.
func (s *Store) Update(path string, fn func(current gjson.Result) (any, error)) error {
	next, err := fn(s.Get(path))
	if err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	return s.Set(path, next)
}

// Subscribe registers fn for changes at path, at any of its ancestors, or at
// any of its descendants. fn is called once immediately with the current
// value. The returned function removes the subscription.
func (s *Store) Subscribe(path string, fn Listener) func() {
	sub := &subscription{path: path, fn: fn}
	s.subs = append(s.subs, sub)
	fn(s.Get(path))
	return func() {
		sub.removed = true
		for i, v := range s.subs {
			if v == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Store) Subscribers() int {
	return len(s.subs)
}

func (s *Store) notify(changed string) {
	subs := append([]*subscription(nil), s.subs...)
	for _, sub := range subs {
		if sub.removed || !related(sub.path, changed) {
			continue
		}
		sub.fn(s.Get(sub.path))
	}
}

// related reports whether one path equals or contains the other.
func related(a, b string) bool {
	if a == b || a == "" || b == "" {
		return true
	}
	return strings.HasPrefix(a, b+".") || strings.HasPrefix(b, a+".")
}

// Key joins path segments, escaping characters with a meaning in paths.
func Key(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = escape(seg)
	}
	return strings.Join(escaped, ".")
}

func escape(seg string) string {
	if !strings.ContainsAny(seg, `.*?\|#@`) {
		return seg
	}
	var b strings.Builder
	for _, r := range seg {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
