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
package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_PreservesInsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("zebra", 1)
	m.Set("apple", 2)
	m.Set("mango", 3)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
	assert.Equal(t, []int{1, 2, 3}, m.Values())
	assert.Equal(t, 3, m.Len())
}

func TestMap_SetExistingKeepsPosition(t *testing.T) {
	m := Of(Pair[string, int]{"a", 1}, Pair[string, int]{"b", 2}, Pair[string, int]{"a", 9})

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestMap_Delete(t *testing.T) {
	m := Of(Pair[string, int]{"a", 1}, Pair[string, int]{"b", 2}, Pair[string, int]{"c", 3})
	m.Delete("b")
	m.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
}

func TestMap_NilIsEmpty(t *testing.T) {
	var m *Map[string, any]

	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("x"))
	for range m.All() {
		t.Fatal("nil map should not yield")
	}
	assert.Panics(t, func() { m.Set("x", 1) })
}

func TestMap_ZeroValueUsable(t *testing.T) {
	var m Map[string, int]
	m.Set("x", 1)
	assert.Equal(t, 1, m.Len())
}

func TestMap_AllStopsEarly(t *testing.T) {
	m := Of(Pair[string, int]{"a", 1}, Pair[string, int]{"b", 2}, Pair[string, int]{"c", 3})

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestMap_CloneIsIndependent(t *testing.T) {
	m := Of(Pair[string, int]{"a", 1})
	c := m.Clone()
	c.Set("b", 2)

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}
