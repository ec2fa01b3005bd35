package lua

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rangescan/pkg/scan"
)

// Transformer exposes global functions of a Lua script as string transforms.
type Transformer struct {
	state *State

	mu  sync.Mutex
	err error
}

// NewTransformer wraps a State that already has the script loaded.
func NewTransformer(state *State) *Transformer {
	return &Transformer{state: state}
}

// LoadFile creates a State, runs the script at path and returns a
// Transformer for it.
func LoadFile(path string, opts ...StateOption) (*Transformer, error) {
	state, err := NewState(opts...)
	if err != nil {
		return nil, err
	}
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return NewTransformer(state), nil
}

// LoadString is like LoadFile for an in-memory script.
func LoadString(code string, opts ...StateOption) (*Transformer, error) {
	state, err := NewState(opts...)
	if err != nil {
		return nil, err
	}
	if err := state.DoString(code); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return NewTransformer(state), nil
}

// Func returns the global Lua function name as a transform.
// It fails if name is not defined as a function.
func (t *Transformer) Func(name string) (scan.StringFunc, error) {
	if !t.state.HasFunction(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFunction)
	}
	return func(s string) string {
		if t.Err() != nil {
			return s
		}
		out, err := t.call(name, s)
		if err != nil {
			t.setErr(fmt.Errorf("lua:%s: %w", name, err))
			return s
		}
		return out
	}, nil
}

func (t *Transformer) call(name, s string) (string, error) {
	results, err := t.state.Call(name, lua.LString(s))
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", ErrBadReturn
	}
	switch v := results[0].(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return v.String(), nil
	default:
		return "", fmt.Errorf("got %s: %w", v.Type(), ErrBadReturn)
	}
}

func (t *Transformer) setErr(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		t.err = err
	}
}

// Err returns the first error raised by a transform, if any.
func (t *Transformer) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Reset clears the recorded error so the transforms run again.
func (t *Transformer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = nil
}

// Close releases the underlying Lua state.
func (t *Transformer) Close() error {
	return t.state.Close()
}
