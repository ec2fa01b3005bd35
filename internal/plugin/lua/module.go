package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rangescan/pkg/scan"
)

// ModuleName is the name scripts pass to require to get the scan helpers.
const ModuleName = "rangescan"

// loadScanModule builds the rangescan module table:
//
//	local rs = require("rangescan")
//	rs.matches("o", "foo")  --> {"o", "o"}
//	rs.gaps("o", "foo")     --> {"f"}
//	rs.ranges("o", "foo")   --> {{2, 2}, {3, 3}}
//	rs.transform("o", "foo", string.upper) --> "fOO"
func loadScanModule(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"matches":   luaStrings(scan.ModeMatches),
		"gaps":      luaStrings(scan.ModeGaps),
		"ranges":    luaRanges,
		"transform": luaTransform,
	})
	L.Push(mod)
	return 1
}

func luaStrings(mode scan.Mode) lua.LGFunction {
	return func(L *lua.LState) int {
		query := L.CheckString(1)
		content := L.CheckString(2)

		tbl := L.NewTable()
		for _, s := range scan.NewWithMode(query, content, mode).CollectStrings() {
			tbl.Append(lua.LString(s))
		}
		L.Push(tbl)
		return 1
	}
}

// luaRanges returns match ranges as 1-based inclusive {first, last} pairs,
// ready for string.sub.
func luaRanges(L *lua.LState) int {
	query := L.CheckString(1)
	content := L.CheckString(2)

	tbl := L.NewTable()
	for _, r := range scan.New(query, content).Collect() {
		pair := L.NewTable()
		pair.Append(lua.LNumber(r.Start + 1))
		pair.Append(lua.LNumber(r.End))
		tbl.Append(pair)
	}
	L.Push(tbl)
	return 1
}

func luaTransform(L *lua.LState) int {
	query := L.CheckString(1)
	content := L.CheckString(2)
	fn := L.CheckFunction(3)

	out := scan.Transform(query, content, func(s string) string {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(s)); err != nil {
			L.RaiseError("rangescan.transform: %s", err.Error())
		}
		ret := L.Get(-1)
		L.Pop(1)
		return lua.LVAsString(ret)
	})
	L.Push(lua.LString(out))
	return 1
}
