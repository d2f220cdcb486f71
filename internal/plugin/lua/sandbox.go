package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to pure computation: no file loading,
// no module loading and no output.
type Sandbox struct {
	L *lua.LState

	removed []string
}

// unsafeGlobals can load code from disk or strings, or bypass the
// sandbox.
var unsafeGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
	"collectgarbage",
	"print",
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{L: L}
}

// Install removes the unsafe globals.
func (s *Sandbox) Install() {
	for _, name := range unsafeGlobals {
		if s.L.GetGlobal(name) != lua.LNil {
			s.removed = append(s.removed, name)
		}
		s.L.SetGlobal(name, lua.LNil)
	}
}

// Removed returns the globals Install took away.
func (s *Sandbox) Removed() []string {
	return append([]string(nil), s.removed...)
}
