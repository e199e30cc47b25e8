package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	tuiStateFileName = "tui_state.json"
	maxRecentItems   = 10
)

// TUIState stores small UI state for restoring the list selection on relaunch.
// It is best effort: callers should tolerate missing or invalid data.
type TUIState struct {
	Version int `json:"version"`

	SelectedItemID string `json:"selectedItemId,omitempty"`

	// RecentItemIDs holds the most recently edited item ids, newest first.
	RecentItemIDs []string `json:"recentItemIds,omitempty"`
}

// TouchItem records id as selected and most recently edited.
func (st *TUIState) TouchItem(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	st.SelectedItemID = id
	recent := []string{id}
	for _, r := range st.RecentItemIDs {
		if r != id && len(recent) < maxRecentItems {
			recent = append(recent, r)
		}
	}
	st.RecentItemIDs = recent
}

func LoadTUIState(dir string) (*TUIState, error) {
	if strings.TrimSpace(dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(filepath.Join(dir, tuiStateFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted state is treated as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveTUIState(dir string, st *TUIState) error {
	if st == nil || strings.TrimSpace(dir) == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "tui_state-*.tmp", filepath.Join(dir, tuiStateFileName), b, 0o644)
}
