package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single Lua call.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps gopher-lua with a sandbox and per-call timeouts.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes every
// entry point so a State can be shared, but Lua code itself still runs one
// call at a time.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	closed           bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout for each DoString, DoFile and Call.
// Zero disables the timeout.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	state.L = L

	openSafeLibraries(L)
	L.PreloadModule(ModuleName, loadScanModule)

	NewSandbox(L).Install()

	return state, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os and debug are intentionally not opened.
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.run(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua string.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.run(func() error {
		return s.L.DoString(code)
	})
}

// Call calls a global Lua function with the given arguments and returns
// all of its results.
func (s *State) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	fnVal := s.L.GetGlobal(fn)
	if fnVal.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%q (got %s): %w", fn, fnVal.Type(), ErrNotFunction)
	}

	stackTop := s.L.GetTop()
	err := s.run(func() error {
		s.L.Push(fnVal)
		for _, arg := range args {
			s.L.Push(arg)
		}
		return s.L.PCall(len(args), lua.MultRet, nil)
	})
	if err != nil {
		s.L.SetTop(stackTop)
		return nil, err
	}

	nRet := s.L.GetTop() - stackTop
	if nRet <= 0 {
		return []lua.LValue{}, nil
	}
	results := make([]lua.LValue, nRet)
	for i := 0; i < nRet; i++ {
		results[i] = s.L.Get(stackTop + i + 1)
	}
	s.L.Pop(nRet)
	return results, nil
}

// run executes fn under the execution timeout with panic recovery.
// Callers must hold s.mu.
func (s *State) run(fn func() error) (err error) {
	if s.executionTimeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.executionTimeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
		defer func() {
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = fmt.Errorf("%w after %s", ErrExecutionTimeout, s.executionTimeout)
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// HasFunction reports whether name is a global Lua function.
func (s *State) HasFunction(name string) bool {
	return s.GetGlobal(name).Type() == lua.LTFunction
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases all resources associated with the Lua state.
// After Close is called, all other methods will return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
