package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupModeSidecar writes the backup next to the source file.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// IsValid reports whether m is a known mode.
func (m BackupMode) IsValid() bool {
	return m == BackupModeSidecar || m == BackupModeNone
}

// BackupSuffix is appended to the source path for sidecar backups.
const BackupSuffix = ".phpfmt.bak"

// BackupConfig controls whether formatted files are backed up first.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the defaults: sidecar mode, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// Path returns where the backup of source goes, or "" when backups are off.
func (c BackupConfig) Path(source string) string {
	if !c.Enabled || c.Mode == BackupModeNone {
		return ""
	}
	return source + BackupSuffix
}

// Save writes original, the pre-formatting content of the file described by
// snap, to its backup path. An existing backup is left alone so repeated runs
// keep the oldest content. It reports whether a backup was written.
func (c BackupConfig) Save(ctx context.Context, snap *Snapshot, original []byte) (bool, error) {
	if snap == nil {
		return false, ErrNilSnapshot
	}
	path := c.Path(snap.Path)
	if path == "" {
		return false, nil
	}

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup %s: %w", path, err)
	}

	if err := WriteFile(ctx, path, original, snap.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
