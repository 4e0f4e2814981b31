package cli

import (
	"fmt"

	"dslsplit/internal/adapter/store"
)

// openStore opens the table store and brings its schema up to date,
// clearing it when it was written by an incompatible version.
func openStore() (*store.BoltStore, error) {
	cfg := GetConfig()
	if err := cfg.EnsureStoreDir(GetRootDir()); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	st, err := store.NewBoltStore(cfg.StorePath(GetRootDir()))
	if err != nil {
		return nil, fmt.Errorf("failed to open table store: %w", err)
	}

	result, err := st.CheckMigration()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}
	if result.NeedsRebuild {
		fmt.Printf("Table store rebuild required: %s\n", result.Reason)
		if err := st.Clear(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to clear table store: %w", err)
		}
	}
	if result.NeedsRebuild || result.NeedsMigration {
		if err := st.Migrate(); err != nil {
			st.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return st, nil
}
