package cachelist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listOf(vals ...string) *List[string] {
	l := New[string]()
	for _, v := range vals {
		l.Insert(v)
	}
	return l
}

func requireEntries(t *testing.T, l *List[string], want []Entry[string]) {
	t.Helper()
	if diff := cmp.Diff(want, l.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

// advance moves it forward n times.
func advance(it Iterator[string], n int) Iterator[string] {
	for i := 0; i < n; i++ {
		it = it.Next()
	}
	return it
}

func TestList_Empty(t *testing.T) {
	l := New[string]()

	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Begin().Equal(l.End()))
	assert.True(t, l.CBegin().Equal(l.CEnd()))
	assert.True(t, l.End().Prev().IsSentinel())
	assert.Nil(t, l.Entries())
}

func TestList_InsertAppends(t *testing.T) {
	l := listOf("a", "b", "c")

	assert.False(t, l.Empty())
	assert.Equal(t, 3, l.Len())
	requireEntries(t, l, []Entry[string]{{"a", 0}, {"b", 0}, {"c", 0}})
	assert.Equal(t, []string{"a", "b", "c"}, l.Values())
}

func TestList_SearchReorders(t *testing.T) {
	l := listOf("A", "B", "C")

	it := l.Search("B")
	require.False(t, it.IsSentinel())
	assert.Equal(t, "B", it.Value())
	assert.Equal(t, 1, it.AccessCount())
	assert.True(t, it.Equal(l.Begin()), "B moved to the head")
	requireEntries(t, l, []Entry[string]{{"B", 1}, {"A", 0}, {"C", 0}})

	// C reaches count 1 and lands before the first entry with count <= 1,
	// which is B at the head.
	it = l.Search("C")
	assert.True(t, it.Equal(l.Begin()))
	requireEntries(t, l, []Entry[string]{{"C", 1}, {"B", 1}, {"A", 0}})

	l.Search("B")
	requireEntries(t, l, []Entry[string]{{"B", 2}, {"C", 1}, {"A", 0}})
}

func TestList_SearchMiss(t *testing.T) {
	l := listOf("a", "b")

	it := l.Search("zzz")
	assert.True(t, it.Equal(l.End()))
	requireEntries(t, l, []Entry[string]{{"a", 0}, {"b", 0}})
}

func TestList_SearchSingleStaysPut(t *testing.T) {
	l := listOf("only")

	for i := 1; i <= 3; i++ {
		it := l.Search("only")
		assert.Equal(t, i, it.AccessCount())
		assert.True(t, it.Equal(l.Begin()))
	}
	assert.Equal(t, 1, l.Len())
}

func TestList_SearchFindsFirstDuplicate(t *testing.T) {
	l := listOf("x", "y", "x")

	l.Search("x")
	requireEntries(t, l, []Entry[string]{{"x", 1}, {"y", 0}, {"x", 0}})
}

func TestList_SearchNoSmallerCountStays(t *testing.T) {
	l := listOf("a", "b")
	l.Search("a")
	l.Search("a")
	l.Search("a")
	l.Search("b")
	// b (1) finds a (3) first, then no other entry with count <= 1, so it
	// stays at the tail.
	requireEntries(t, l, []Entry[string]{{"a", 3}, {"b", 1}})
}

func TestList_Erase(t *testing.T) {
	l := listOf("a", "b", "c")

	b := l.Begin().Next()
	next := l.Erase(b)
	assert.Equal(t, "c", next.Value())
	assert.False(t, b.Valid(), "erased iterator is invalid")
	assert.Equal(t, []string{"a", "c"}, l.Values())

	next = l.Erase(l.Back())
	assert.True(t, next.Equal(l.End()))
	assert.Equal(t, []string{"a"}, l.Values())
}

func TestList_EraseRange(t *testing.T) {
	l := listOf("1", "2", "3", "4", "5")
	fifth := advance(l.Begin(), 4)

	got := l.EraseRange(advance(l.Begin(), 1), advance(l.Begin(), 4))
	assert.True(t, got.Equal(fifth))
	assert.Equal(t, "5", got.Value())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"1", "5"}, l.Values())
}

func TestList_EraseRangeEdges(t *testing.T) {
	l := New[string]()
	end := l.EraseRange(l.Begin(), l.End())
	assert.True(t, end.Equal(l.End()), "empty list is a no-op")

	l = listOf("a", "b")
	first := l.Begin()
	assert.True(t, l.EraseRange(first, first).Equal(first))
	assert.Equal(t, 2, l.Len())

	l.EraseRange(l.Begin(), l.End())
	assert.True(t, l.Empty())
}

func TestList_EraseRangeUnreachablePanicsWithoutErasing(t *testing.T) {
	l := listOf("a", "b", "c")
	second := l.Begin().Next()

	assert.Panics(t, func() { l.EraseRange(second, l.Begin()) })
	assert.Equal(t, []string{"a", "b", "c"}, l.Values())
}

func TestList_ContractViolationsPanic(t *testing.T) {
	l := listOf("a")
	other := listOf("a")

	assert.Panics(t, func() { l.End().Value() }, "dereference End")
	assert.Panics(t, func() { l.Erase(l.End()) }, "erase End")
	assert.Panics(t, func() { l.Erase(l.Begin().Prev()) }, "erase front sentinel")
	assert.Panics(t, func() { l.Erase(other.Begin()) }, "erase foreign iterator")

	it := l.Begin()
	l.Erase(it)
	assert.Panics(t, func() { it.Value() }, "use after erase")
	assert.Panics(t, func() { l.Erase(it) }, "double erase")
}

func TestList_IteratorEquality(t *testing.T) {
	a := listOf("x")
	b := listOf("x")

	assert.True(t, a.Begin().Equal(a.Begin()))
	assert.False(t, a.Begin().Equal(b.Begin()), "same value, different list")
	assert.False(t, a.End().Equal(b.End()))
	assert.Equal(t, a.Begin().Value(), b.Begin().Value())
}

func TestList_Bidirectional(t *testing.T) {
	l := listOf("a", "b", "c")

	var backwards []string
	for it := l.End().Prev(); !it.IsSentinel(); it = it.Prev() {
		backwards = append(backwards, it.Value())
	}
	assert.Equal(t, []string{"c", "b", "a"}, backwards)
	assert.True(t, l.Back().Equal(l.End().Prev()))
	assert.True(t, l.End().Next().Equal(l.End()))

	var forwards []string
	for it := l.CBegin(); !it.Equal(l.CEnd()); it = it.Next() {
		forwards = append(forwards, it.Value())
	}
	assert.Equal(t, []string{"a", "b", "c"}, forwards)
}

func TestList_SetKeepsCount(t *testing.T) {
	l := listOf("a", "b")
	it := l.Search("b")
	it.Set("B")

	requireEntries(t, l, []Entry[string]{{"B", 1}, {"a", 0}})
	assert.Equal(t, "B", it.Const().Value())
}

func TestList_SlotReuseInvalidatesOldIterators(t *testing.T) {
	l := listOf("a")
	old := l.Begin()
	l.Erase(old)
	l.Insert("b") // reuses the released slot

	assert.False(t, old.Valid())
	assert.Equal(t, "b", l.Begin().Value())
}

func TestList_CloneIndependence(t *testing.T) {
	l := listOf("a", "b", "c")
	l.Search("c")

	c := l.Clone()
	requireEntries(t, c, l.Entries())

	c.Erase(c.Begin())
	c.Search("a")

	requireEntries(t, l, []Entry[string]{{"c", 1}, {"a", 0}, {"b", 0}})
	requireEntries(t, c, []Entry[string]{{"a", 1}, {"b", 0}})
}

func TestList_Take(t *testing.T) {
	l := listOf("a", "b")
	l.Search("b")
	oldBegin := l.Begin()

	moved := l.Take()
	requireEntries(t, moved, []Entry[string]{{"b", 1}, {"a", 0}})
	assert.True(t, l.Empty(), "source is a valid empty list")
	assert.False(t, oldBegin.Valid())

	l.Insert("z")
	assert.Equal(t, []string{"z"}, l.Values())
	assert.Equal(t, 2, moved.Len())
}

func TestList_Clear(t *testing.T) {
	l := listOf("a", "b", "c")
	it := l.Begin()

	l.Clear()
	assert.True(t, l.Empty())
	assert.False(t, it.Valid())
	l.Insert("d")
	assert.Equal(t, []string{"d"}, l.Values())
}
