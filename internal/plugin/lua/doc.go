// Package lua runs user-supplied Lua transforms for rangescan.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - Per-call execution timeouts
//   - A Transformer that exposes global Lua functions as string transforms
//   - A "rangescan" module so scripts can scan strings themselves
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoFile("transforms.lua"); err != nil {
//	    return err
//	}
//
// # Sandbox
//
// The Sandbox removes dofile, loadfile, load and loadstring, clears
// package.path and package.cpath, and only lets require load the string,
// table, math and rangescan modules. The io, os and debug libraries are
// never opened.
//
// # Transformer
//
// A script defines plain global functions taking and returning a string:
//
//	function shout(s)
//	    return string.upper(s) .. "!"
//	end
//
// and Transformer.Func("shout") turns it into a scan.StringFunc. Because a
// StringFunc cannot fail, the first Lua error is kept and reported by
// Transformer.Err; after a failure every function returns its input.
package lua
