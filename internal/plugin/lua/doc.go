// Package lua loads custom language definitions from Lua scripts.
//
// A script declares one or more languages by calling language with a
// table. The definition is turned into a highlight.Definition and its rule
// set is built right away, so configuration errors surface at load time:
//
//	language {
//	  name = "toml",
//	  extensions = { ".toml" },
//	  comment = "#",
//	  keywords = { "true", "false" },
//	  terminators = "[\\s,\\]}]",
//	}
//
// Scripts run in a sandboxed State: only the base, table, string and math
// libraries are available, code cannot be loaded from files or strings and
// each run is bounded by a timeout.
//
//	catalog := lua.NewCatalog()
//	if err := catalog.LoadDir(dir); err != nil {
//	    log.Warn("languages: %v", err)
//	}
//	def, ok := catalog.ForPath("config.toml")
package lua
