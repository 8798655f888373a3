package tabular

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"testing"
)

// setupStore creates a store backed by a temporary file.
func setupStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "tabular_store_*.db")
	if err != nil {
		t.Fatal(err)
	}
	path := tmpfile.Name()
	tmpfile.Close()

	s, err := OpenStore(path, 0600, nil)
	if err != nil {
		os.Remove(path)
		t.Fatal(err)
	}
	return s, func() {
		s.Close()
		os.Remove(path)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	d := NewDataset(
		Header{Symbol("id"), Symbol("name"), Symbol("score")},
		Row{"1", "alice", 30.0},
		Row{"2", "bob", 25.0},
	)
	if err := s.SaveDataset("users", d); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadDataset("users")
	if err != nil {
		t.Fatal(err)
	}
	// Symbols come back as plain strings; the resolver still matches them.
	if !reflect.DeepEqual(loaded.Header, Header{"id", "name", "score"}) {
		t.Fatalf("header = %v", loaded.Header)
	}
	notFound := &struct{}{}
	if Resolve(loaded.Header, Symbol("name"), notFound) == notFound {
		t.Fatal("Symbol key no longer resolves against the loaded header")
	}

	rows, err := CollectRows(loaded.Rows)
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{
		{"1", "alice", 30.0},
		{"2", "bob", 25.0},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestStore_RowsRestartable(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	d := NewDataset(Header{"a"}, Row{"1"}, Row{"2"})
	if err := s.SaveDataset("d", d); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadDataset("d")
	if err != nil {
		t.Fatal(err)
	}

	first, err := CollectRows(loaded.Rows)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CollectRows(loaded.Rows)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("second traversal %v differs from first %v", second, first)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	_, err := s.LoadDataset("absent")
	if err == nil {
		t.Fatal("expected an error for a missing dataset")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_OverwriteReplaces(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	if err := s.SaveDataset("d", NewDataset(Header{"a"}, Row{"old"})); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDataset("d", NewDataset(Header{"b"}, Row{"new"})); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadDataset("d")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded.Header, Header{"b"}) {
		t.Fatalf("header = %v, want the replacement", loaded.Header)
	}
	rows, err := CollectRows(loaded.Rows)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rows, []Row{{"new"}}) {
		t.Fatalf("rows = %v, want the replacement", rows)
	}
}

func TestStore_Datasets(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	for _, name := range []string{"one", "two"} {
		if err := s.SaveDataset(name, NewDataset(Header{"a"})); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.Datasets()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("names = %v, want two entries", names)
	}
}

func TestStore_JsonCodec(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	s.SetCodec(JsonMaUn)

	d := NewDataset(Header{"a"}, Row{1.5})
	if err := s.SaveDataset("d", d); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadDataset("d")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := CollectRows(loaded.Rows)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rows, []Row{{1.5}}) {
		t.Fatalf("rows = %v", rows)
	}
}

func TestRowKey_PreservesInsertionOrder(t *testing.T) {
	prev := rowKey(1)
	for id := uint64(2); id < 300; id++ {
		key := rowKey(id)
		if bytes.Compare(prev, key) >= 0 {
			t.Fatalf("rowKey(%d) does not sort after rowKey(%d)", id, id-1)
		}
		prev = key
	}

	decoded, err := rowID(rowKey(42))
	if err != nil {
		t.Fatal(err)
	}
	if decoded != 42 {
		t.Fatalf("rowID(rowKey(42)) = %d", decoded)
	}
}
