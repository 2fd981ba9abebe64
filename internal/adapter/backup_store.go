package adapter

import (
	"context"
	"fmt"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
	"vuexpurge.dev/pkg/vuexpurge/pkg"
)

// BackupStore keeps the original content of overwritten files so a run can
// be undone.
type BackupStore interface {
	// Create starts a new backup spill in dir.
	Create(ctx context.Context, dir m.Path) (pkg.FileSpill[m.Backup], error)

	// Load reads every backup recorded in the spill at path.
	Load(ctx context.Context, path m.Path) ([]m.Backup, error)
}

// LocalBackupStore stores backups in gob spill files.
type LocalBackupStore struct{}

// NewLocalBackupStore constructs a LocalBackupStore.
func NewLocalBackupStore() *LocalBackupStore {
	return &LocalBackupStore{}
}

// Create implements BackupStore.
func (s *LocalBackupStore) Create(_ context.Context, dir m.Path) (pkg.FileSpill[m.Backup], error) {
	spill, err := pkg.NewFileSpill[m.Backup](string(dir), "backup-*.gob")
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}

	return spill, nil
}

// Load implements BackupStore.
func (s *LocalBackupStore) Load(_ context.Context, path m.Path) ([]m.Backup, error) {
	spill, err := pkg.OpenFileSpill[m.Backup](string(path))
	if err != nil {
		return nil, fmt.Errorf("open backup: %w", err)
	}

	defer func() {
		_ = spill.Close()
	}()

	backups := make([]m.Backup, 0, spill.Len())

	err = spill.Range(func(_ uint64, backup m.Backup) error {
		backups = append(backups, backup)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	return backups, nil
}
