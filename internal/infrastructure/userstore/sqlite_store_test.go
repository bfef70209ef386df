package userstore

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMasterUserSeeded(t *testing.T) {
	store := newTestStore(t)

	ok, err := store.Validate("master_user", "1234")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !ok {
		t.Fatal("master_user/1234 should validate on a fresh database")
	}

	perms, err := store.Permissions("master_user")
	if err != nil {
		t.Fatalf("Permissions() error = %v", err)
	}
	if len(perms) != 3 {
		t.Fatalf("master permissions = %v, want all three devices", perms)
	}
}

func TestValidateRejectsWrongPin(t *testing.T) {
	store := newTestStore(t)

	ok, err := store.Validate("master_user", "0000")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Fatal("wrong PIN must not validate")
	}
}

func TestAddUpdateDeleteLifecycle(t *testing.T) {
	store := newTestStore(t)

	if err := store.Add("alice", "5678", []string{"speakers"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := store.Add("alice", "9999", nil); err == nil {
		t.Fatal("duplicate user ID must fail")
	}

	perms, _ := store.Permissions("alice")
	if len(perms) != 1 || perms[0] != "speakers" {
		t.Fatalf("permissions = %v", perms)
	}

	if err := store.Update("alice", "4321", []string{"speakers", "door1"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if ok, _ := store.Validate("alice", "4321"); !ok {
		t.Fatal("updated PIN should validate")
	}
	if err := store.Update("ghost", "0000", nil); err == nil {
		t.Fatal("updating a missing user must fail")
	}

	accounts, err := store.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("All() returned %d accounts, want 2", len(accounts))
	}

	if err := store.Delete("alice"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := store.Validate("alice", "4321"); ok {
		t.Fatal("deleted user must not validate")
	}
}

func TestPermissionsForUnknownUser(t *testing.T) {
	store := newTestStore(t)

	perms, err := store.Permissions("ghost")
	if err != nil {
		t.Fatalf("Permissions() error = %v", err)
	}
	if len(perms) != 0 {
		t.Fatalf("unknown user permissions = %v, want none", perms)
	}
}
