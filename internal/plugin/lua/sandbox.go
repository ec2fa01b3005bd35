package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to pure string computation.
type Sandbox struct {
	L *lua.LState
}

// unsafeGlobals load code from disk or strings.
var unsafeGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
}

// safeModules are the only modules require may load.
var safeModules = map[string]bool{
	"string":   true,
	"table":    true,
	"math":     true,
	ModuleName: true,
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{L: L}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	for _, name := range unsafeGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.pruneLoaders()
	s.installSafeRequire()
}

// pruneLoaders keeps only the preload searcher. The file searcher is
// reachable as package.loaders[2] and would honor a package.path the script
// sets itself. package.loaders and the registry's _LOADERS are the same
// table, which require iterates.
func (s *Sandbox) pruneLoaders() {
	if pkgTable, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkgTable, "path", lua.LString(""))
		s.L.SetField(pkgTable, "cpath", lua.LString(""))
		if loaders, ok := s.L.GetField(pkgTable, "loaders").(*lua.LTable); ok {
			truncateLoaders(loaders)
		}
	}
	if loaders, ok := s.L.GetField(s.L.Get(lua.RegistryIndex), "_LOADERS").(*lua.LTable); ok {
		truncateLoaders(loaders)
	}
}

func truncateLoaders(loaders *lua.LTable) {
	for i := loaders.Len(); i > 1; i-- {
		loaders.RawSetInt(i, lua.LNil)
	}
}

// installSafeRequire replaces require with a whitelist-based version.
func (s *Sandbox) installSafeRequire() {

	originalRequire := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !safeModules[modName] {
			// RaiseError does not return.
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}
