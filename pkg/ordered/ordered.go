// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ordered provides an insertion-ordered map.
//
// Go maps do not preserve insertion order, so APIs that must replay keys in
// the order a caller supplied them (column lists, WHERE constraints) take an
// *ordered.Map instead. A nil *Map behaves like an empty map for reads;
// Set needs a non-nil map, from New, Of or a zero Map value.
package ordered

import "iter"

// Pair is one key/value entry.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an insertion-ordered map.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0),
		values: make(map[K]V),
	}
}

// Of creates an ordered map from pairs. Later duplicates overwrite the value
// but keep the position of the first occurrence.
func Of[K comparable, V any](pairs ...Pair[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		keys:   make([]K, 0, len(pairs)),
		values: make(map[K]V, len(pairs)),
	}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Set sets a value. A new key is appended; an existing key keeps its position.
// Calling Set on a nil *Map panics.
func (m *Map[K, V]) Set(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get gets a value.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete deletes a value.
func (m *Map[K, V]) Delete(key K) {
	if m == nil {
		return
	}
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns all keys in order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	result := make([]K, len(m.keys))
	copy(result, m.keys)
	return result
}

// Values returns all values in key order.
func (m *Map[K, V]) Values() []V {
	if m == nil {
		return nil
	}
	result := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		result = append(result, m.values[k])
	}
	return result
}

// Len returns the number of entries. Len of a nil map is 0.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All iterates over entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := New[K, V]()
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}
