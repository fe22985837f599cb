package storage

import (
	"testing"
	"time"
)

func TestBoltStoreMarksAndExpiresRepos(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		RepoTTL:         1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(dir+"/seen.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	seen, err := store.SeenRepo(101)
	if err != nil || seen {
		t.Fatalf("expected unseen repo, seen=%v err=%v", seen, err)
	}

	if err := store.MarkRepo(101); err != nil {
		t.Fatalf("MarkRepo: %v", err)
	}

	seen, err = store.SeenRepo(101)
	if err != nil || !seen {
		t.Fatalf("expected repo marked as seen, got seen=%v err=%v", seen, err)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	seen, err = store.SeenRepo(101)
	if err != nil {
		t.Fatalf("SeenRepo after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestBoltStoreKeysAreIndependent(t *testing.T) {
	storeRaw, err := openBolt(t.TempDir()+"/seen.db", Options{})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if err := store.MarkRepo(1); err != nil {
		t.Fatalf("MarkRepo: %v", err)
	}
	seen, err := store.SeenRepo(2)
	if err != nil || seen {
		t.Fatalf("marking one id must not mark another, seen=%v err=%v", seen, err)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.MarkRepo(7); err != nil {
		t.Fatalf("noop store MarkRepo: %v", err)
	}
	seen, err := store.SeenRepo(7)
	if err != nil || seen {
		t.Fatalf("noop store must never report seen, seen=%v err=%v", seen, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
}
