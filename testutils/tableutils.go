// Package testutils holds test batteries shared by the cachekit tables.
package testutils

import (
	"fmt"
	"testing"

	"github.com/venkatsvpr/cachekit"
)

// TableContract runs the Table contract against tables built by newTable.
// limit is the number of distinct keys a fresh table must admit; the next new
// key must be rejected.
func TableContract(t *testing.T, newTable func() cachekit.Table[int], limit int) {
	t.Run("RoundTrip", func(t *testing.T) {
		RoundTripTest(t, newTable(), limit)
	})
	t.Run("Overwrite", func(t *testing.T) {
		OverwriteTest(t, newTable(), limit)
	})
	t.Run("Admission", func(t *testing.T) {
		AdmissionTest(t, newTable(), limit)
	})
	t.Run("Remove", func(t *testing.T) {
		RemoveTest(t, newTable(), limit)
	})
	t.Run("Absent", func(t *testing.T) {
		AbsentTest(t, newTable(), limit)
	})
}

func key(i int) string {
	return fmt.Sprintf("key-%d", i)
}

func RoundTripTest(t *testing.T, tbl cachekit.Table[int], limit int) {
	if !tbl.IsEmpty() || tbl.Len() != 0 {
		t.Fatalf("fresh table not empty: %v", tbl.Len())
	}
	for i := 0; i < limit; i++ {
		if !tbl.Update(key(i), i) {
			t.Fatalf("update %d rejected", i)
		}
	}
	if tbl.Len() != limit {
		t.Fatalf("bad len: %v", tbl.Len())
	}
	if tbl.IsEmpty() {
		t.Fatalf("should not be empty")
	}
	for i := 0; i < limit; i++ {
		if v, ok := tbl.Find(key(i)); !ok || v != i {
			t.Fatalf("bad find %d: %v %v", i, v, ok)
		}
	}
}

func OverwriteTest(t *testing.T, tbl cachekit.Table[int], limit int) {
	for i := 0; i < limit; i++ {
		tbl.Update(key(i), i)
	}
	// a full table still accepts overwrites of existing keys
	for i := 0; i < limit; i++ {
		if !tbl.Update(key(i), i*10) {
			t.Fatalf("overwrite %d rejected", i)
		}
	}
	if tbl.Len() != limit {
		t.Fatalf("overwrite changed len: %v", tbl.Len())
	}
	for i := 0; i < limit; i++ {
		if v, ok := tbl.Find(key(i)); !ok || v != i*10 {
			t.Fatalf("bad value for %d: %v", i, v)
		}
	}
}

func AdmissionTest(t *testing.T, tbl cachekit.Table[int], limit int) {
	for i := 0; i < limit; i++ {
		tbl.Update(key(i), i)
	}
	if tbl.Update(key(limit), limit) {
		t.Fatalf("key past the limit should be rejected")
	}
	if tbl.Len() != limit {
		t.Fatalf("rejected update changed len: %v", tbl.Len())
	}
	if _, ok := tbl.Find(key(limit)); ok {
		t.Fatalf("rejected key should not be found")
	}

	// removing one key makes room for exactly one more
	if !tbl.Remove(key(0)) {
		t.Fatalf("should be contained")
	}
	if !tbl.Update(key(limit), limit) {
		t.Fatalf("update after remove rejected")
	}
	if tbl.Update(key(limit+1), limit+1) {
		t.Fatalf("table should be at its limit again")
	}
}

func RemoveTest(t *testing.T, tbl cachekit.Table[int], limit int) {
	for i := 0; i < limit; i++ {
		tbl.Update(key(i), i)
	}
	for i := 0; i < limit; i += 2 {
		if !tbl.Remove(key(i)) {
			t.Fatalf("should be contained: %d", i)
		}
		if tbl.Remove(key(i)) {
			t.Fatalf("should not be contained: %d", i)
		}
		if _, ok := tbl.Find(key(i)); ok {
			t.Fatalf("should be deleted: %d", i)
		}
	}
	for i := 1; i < limit; i += 2 {
		if v, ok := tbl.Find(key(i)); !ok || v != i {
			t.Fatalf("survivor %d lost: %v %v", i, v, ok)
		}
	}
	if tbl.Len() != limit/2 {
		t.Fatalf("bad len: %v", tbl.Len())
	}
	for i := 1; i < limit; i += 2 {
		tbl.Remove(key(i))
	}
	if !tbl.IsEmpty() {
		t.Fatalf("should be empty, len %v", tbl.Len())
	}
}

func AbsentTest(t *testing.T, tbl cachekit.Table[int], limit int) {
	for i := 0; i < limit; i++ {
		tbl.Update(key(i), i)
	}
	if tbl.Remove("missing") {
		t.Fatalf("remove of absent key should fail")
	}
	if tbl.Len() != limit {
		t.Fatalf("bad len after absent remove: %v", tbl.Len())
	}
	if v, ok := tbl.Find("missing"); ok || v != 0 {
		t.Fatalf("find of absent key: %v %v", v, ok)
	}
}
