// Package snapshot stores raw market snapshots on disk so a run can be
// repeated offline against the exact input it saw.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Alias1177/pairscan/internal/model"
)

// FileName builds the default file name for a snapshot
func FileName(snap model.RawSnapshot) string {
	at := snap.FetchedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return fmt.Sprintf("%s_%s_%s.json", strings.ToLower(snap.Symbol), snap.Interval, at.Format("20060102T150405Z"))
}

// Save writes a snapshot as JSON, creating parent directories as needed
func Save(path string, snap model.RawSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot written by Save
func Load(path string) (model.RawSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RawSnapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap model.RawSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.RawSnapshot{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snap, nil
}
