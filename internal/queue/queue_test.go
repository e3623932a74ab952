package queue

import (
	"fmt"
	"testing"

	. "github.com/ava12/lagrum/internal/test"
)

func TestEmpty(t *testing.T) {
	q := New[int]()
	ExpectInt(t, minSize, len(q.items))
	ExpectBool(t, true, q.IsEmpty())
	_, f := q.First()
	ExpectBool(t, false, f)
}

func TestPrefilled(t *testing.T) {
	for l := 0; l <= minSize*3; l++ {
		t.Run(fmt.Sprintf("%d items", l), func(t *testing.T) {
			items := make([]int, l)
			for i := range items {
				items[i] = i
			}
			q := New[int](items...)
			ExpectInt(t, l, q.Len())
			Assert(t, len(q.items)&(len(q.items)-1) == 0, "expecting 2^n buffer, got %d", len(q.items))
			for i := 0; i < l; i++ {
				v, f := q.First()
				ExpectBool(t, true, f)
				ExpectInt(t, i, v)
			}
			ExpectBool(t, true, q.IsEmpty())
		})
	}
}

func TestWrapAndGrow(t *testing.T) {
	q := New[string]("a", "b", "c")
	q.First()
	q.First()
	q.Append("d").Append("e").Append("f")
	ExpectInt(t, minSize, len(q.items))
	q.Append("g")
	ExpectInt(t, minSize<<1, len(q.items))

	expected := []string{"c", "d", "e", "f", "g"}
	got := q.Items()
	ExpectInt(t, len(expected), len(got))
	for i := range expected {
		ExpectString(t, expected[i], got[i])
	}
	for _, s := range expected {
		v, _ := q.First()
		ExpectString(t, s, v)
	}
	ExpectBool(t, true, q.IsEmpty())
}
