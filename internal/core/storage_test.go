package core

import (
	"path/filepath"
	"testing"
)

func TestOpenPersistentStoreDrivers(t *testing.T) {
	t.Setenv("MSEXPERIMENT_STORAGE_DRIVER", "memory")
	store, err := OpenPersistentStore()
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if store == nil {
		t.Fatalf("nil store")
	}

	t.Setenv("MSEXPERIMENT_STORAGE_DRIVER", "sqlite")
	t.Setenv("MSEXPERIMENT_SQLITE_PATH", filepath.Join(t.TempDir(), "state.db"))
	store, err = OpenPersistentStore()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if store == nil {
		t.Fatalf("nil store")
	}

	t.Setenv("MSEXPERIMENT_STORAGE_DRIVER", "bogus")
	if _, err := OpenPersistentStore(); err == nil {
		t.Fatalf("unknown driver must fail")
	}
}
