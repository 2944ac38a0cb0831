package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ucanduit/ucanduit/pkg/persistence"
)

const (
	WriteJSONFile = "write_json_file"
	ReadJSONFile  = "read_json_file"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid arguments")
)

// CommandFunc handles one invocation. args is the raw JSON object sent by
// the caller; the result is encoded back as JSON.
type CommandFunc func(args json.RawMessage) (any, error)

// Registry maps command names to handlers.
type Registry struct {
	commands map[string]CommandFunc
}

func NewRegistry() *Registry {
	return &Registry{commands: map[string]CommandFunc{}}
}

func (r *Registry) Register(name string, fn CommandFunc) {
	r.commands[name] = fn
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Invoke(name string, args json.RawMessage) (any, error) {
	fn, ok := r.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return fn(args)
}

type writeArgs struct {
	Filename string          `json:"filename"`
	Data     json.RawMessage `json:"data"`
}

type readArgs struct {
	Filename string `json:"filename"`
}

// NewStoreRegistry registers write_json_file and read_json_file against store.
func NewStoreRegistry(store persistence.Store) *Registry {
	r := NewRegistry()

	r.Register(WriteJSONFile, func(raw json.RawMessage) (any, error) {
		var args writeArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		// A missing data field is stored as null.
		if err := store.Write(args.Filename, args.Data); err != nil {
			return nil, err
		}
		return nil, nil
	})

	r.Register(ReadJSONFile, func(raw json.RawMessage) (any, error) {
		var args readArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return store.Read(args.Filename)
	})

	return r
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty body", ErrBadArgs)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	return nil
}
