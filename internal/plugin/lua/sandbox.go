package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richline/internal/logging"
)

// safeModules may be loaded with require. They are already open as
// globals; require returns them.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// installSandbox removes every way for a script to load code or reach the
// host beyond the opened libraries.
func installSandbox(L *lua.LState, logger *logging.Logger) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	installPrint(L, logger)
	installRequire(L)
}

// installPrint sends print output to the logger instead of stdout, which the
// terminal owns.
func installPrint(L *lua.LState, logger *logging.Logger) {
	log := logger.WithComponent("lua")
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		log.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))
}

// installRequire clears the module search paths and replaces require with a
// whitelist lookup.
func installRequire(L *lua.LState) {
	pkg, ok := L.GetGlobal("package").(*lua.LTable)
	if !ok {
		L.SetGlobal("require", lua.LNil)
		return
	}
	L.SetField(pkg, "path", lua.LString(""))
	L.SetField(pkg, "cpath", lua.LString(""))

	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !safeModules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(L.GetGlobal(name))
		return 1
	}))
}
