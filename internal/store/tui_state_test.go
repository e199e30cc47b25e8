package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// Missing file => default state.
	st0, err := LoadTUIState(dir)
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &TUIState{Version: 1, SelectedItemID: "item-2", RecentItemIDs: []string{"item-2", "item-1"}}
	if err := SaveTUIState(dir, want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}
	got, err := LoadTUIState(dir)
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestTUIState_CorruptFileIsIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tuiStateFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := LoadTUIState(dir)
	if err != nil || st.SelectedItemID != "" {
		t.Fatalf("expected default state; got %#v err=%v", st, err)
	}
}

func TestTUIState_TouchItemKeepsRecentUniqueAndBounded(t *testing.T) {
	t.Parallel()

	st := &TUIState{}
	for i := 0; i < maxRecentItems+3; i++ {
		st.TouchItem("item-" + strconv.Itoa(i))
	}
	st.TouchItem("item-5")

	if st.SelectedItemID != "item-5" {
		t.Fatalf("expected selection item-5; got %q", st.SelectedItemID)
	}
	if len(st.RecentItemIDs) != maxRecentItems || st.RecentItemIDs[0] != "item-5" {
		t.Fatalf("unexpected recent list: %v", st.RecentItemIDs)
	}
	seen := map[string]bool{}
	for _, id := range st.RecentItemIDs {
		if seen[id] {
			t.Fatalf("duplicate recent id %s in %v", id, st.RecentItemIDs)
		}
		seen[id] = true
	}
}
