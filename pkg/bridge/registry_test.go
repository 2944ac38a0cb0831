package bridge

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/ucanduit/ucanduit/pkg/appdir"
	"github.com/ucanduit/ucanduit/pkg/persistence"
)

func TestStoreRegistryCommands(t *testing.T) {
	store := persistence.NewJSONStore(appdir.MapEnv{Vars: map[string]string{appdir.AppDataVar: t.TempDir()}})
	r := NewStoreRegistry(store)

	if want := []string{ReadJSONFile, WriteJSONFile}; !reflect.DeepEqual(r.Names(), want) {
		t.Fatalf("expected %v, got %v", want, r.Names())
	}

	if _, err := r.Invoke(WriteJSONFile, json.RawMessage(`{"filename":"empty.json"}`)); err != nil {
		t.Fatalf("Invoke(write): %v", err)
	}

	v, err := r.Invoke(ReadJSONFile, json.RawMessage(`{"filename":"empty.json"}`))
	if err != nil {
		t.Fatalf("Invoke(read): %v", err)
	}
	if v != nil {
		t.Fatalf("expected missing data to be stored as null, got %v", v)
	}
}

func TestRegistryUnknownCommand(t *testing.T) {
	_, err := NewRegistry().Invoke("nope", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestRegistryPassesStoreErrors(t *testing.T) {
	store := persistence.NewJSONStore(appdir.MapEnv{Vars: map[string]string{appdir.AppDataVar: t.TempDir()}})
	r := NewStoreRegistry(store)

	_, err := r.Invoke(ReadJSONFile, json.RawMessage(`{"filename":"missing.json"}`))
	if !errors.Is(err, persistence.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}
