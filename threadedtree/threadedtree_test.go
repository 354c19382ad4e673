package threadedtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeOf(vals ...int) *Tree[int] {
	t := New[int]()
	for _, v := range vals {
		t.Insert(v)
	}
	return t
}

func TestTree_Empty(t *testing.T) {
	tr := New[string]()

	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Len())
	assert.True(t, tr.Begin().Equal(tr.End()))
	assert.True(t, tr.Find("x").Equal(tr.End()))
	assert.True(t, tr.End().Prev().IsSentinel())
	assert.Empty(t, tr.Values())
}

func TestTree_InsertOrdersAndDedups(t *testing.T) {
	tr := New[int]()
	for _, v := range []int{50, 30, 70, 20, 40, 60, 80, 30, 70} {
		tr.Insert(v)
	}

	assert.Equal(t, 7, tr.Len())
	if diff := cmp.Diff([]int{20, 30, 40, 50, 60, 70, 80}, tr.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, tr.Insert(40), "duplicate insert is a no-op")
	assert.True(t, tr.Insert(45))
	assert.Equal(t, 8, tr.Len())
}

func TestTree_Find(t *testing.T) {
	tr := treeOf(50, 30, 70, 20, 40)

	it := tr.Find(40)
	require.False(t, it.IsSentinel())
	assert.Equal(t, 40, it.Value())
	assert.Equal(t, 50, it.Next().Value())
	assert.Equal(t, 30, it.Prev().Value())

	assert.True(t, tr.Find(45).Equal(tr.End()))
	assert.True(t, tr.Find(10).Equal(tr.End()))
	assert.True(t, tr.Find(99).Equal(tr.End()))
	assert.True(t, tr.Contains(20))
	assert.False(t, tr.Contains(21))
}

func TestTree_Backwards(t *testing.T) {
	tr := treeOf(5, 2, 8, 1, 3, 7, 9, 6)

	var got []int
	for it := tr.End().Prev(); !it.IsSentinel(); it = it.Prev() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []int{9, 8, 7, 6, 5, 3, 2, 1}, got)

	first := tr.Begin()
	before := first.Prev()
	assert.True(t, before.IsSentinel())
	assert.True(t, before.Prev().Equal(before))
	assert.True(t, before.Next().Equal(first))
	assert.True(t, tr.End().Next().Equal(tr.End()))
}

func TestTree_DegenerateShapes(t *testing.T) {
	asc := New[int]()
	desc := New[int]()
	for i := 0; i < 50; i++ {
		asc.Insert(i)
		desc.Insert(49 - i)
	}
	assert.Equal(t, asc.Values(), desc.Values())
	assert.Equal(t, 0, asc.Begin().Value())
	assert.Equal(t, 49, desc.End().Prev().Value())
}

func TestTree_RandomMatchesSort(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	tr := New[int]()
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := r.Intn(300)
		require.Equal(t, !seen[v], tr.Insert(v))
		seen[v] = true
	}

	want := make([]int, 0, len(seen))
	for v := range seen {
		want = append(want, v)
	}
	sort.Ints(want)
	assert.Equal(t, want, tr.Values())
	assert.Equal(t, len(want), tr.Len())
}

func TestTree_SentinelDereferencePanics(t *testing.T) {
	tr := treeOf(1)
	assert.Panics(t, func() { tr.End().Value() })
	assert.Panics(t, func() { tr.Begin().Prev().Value() })
	assert.Panics(t, func() { Iterator[int]{}.Value() })
}

func TestTree_CloneIndependence(t *testing.T) {
	tr := treeOf(3, 1, 2)
	c := tr.Clone()

	c.Insert(0)
	c.Insert(4)
	assert.Equal(t, []int{1, 2, 3}, tr.Values())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, c.Values())
	assert.False(t, tr.Begin().Equal(c.Begin()), "iterators of different trees differ")
}
