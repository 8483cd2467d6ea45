// File: strataconf/strata/doc.go
// Package strata is a layered configuration store: it merges values
// from ordered sources (JSON, YAML, TOML, and INI files or literals,
// plus environment variables) into one logical key-value tree,
// answers typed dotted-path queries against it, and can persist the
// merged tree back through any registered source.
//
// Features:
//   - Ordered sources with last-registered-wins merging
//   - Recursive table merge; arrays and scalars replace atomically
//   - Environment overrides mapped by prefix and separator, applied
//     last regardless of registration order
//   - Strict typed getters plus struct decoding via mapstructure
//   - Reload that keeps the previous state on any failure
//   - Save-back through a named source's native format
//   - Optional insertion-order preservation for table keys
//
// Quick start:
//
//	cfg, err := strata.NewBuilder().
//	    Add(strata.NewSource("base", strata.FormatJSON,
//	        `{"server": {"host": "localhost", "port": 8080}}`)).
//	    AddFile("override.yaml").
//	    Env("MYAPP_", "_").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := cfg.String("server.host")
//	port, _ := cfg.Int64("server.port")
//
// Later sources override earlier ones key by key; nested tables merge
// recursively while arrays replace wholesale, so list-valued settings
// never interleave across layers. With Env enabled, a variable such
// as MYAPP_SERVER_PORT=9090 overrides "server.port" no matter what
// the files say.
//
// Config is safe for concurrent reads; Reload swaps the tree under a
// write lock. Coordinating reads against concurrent Reload or Set
// calls beyond that single swap is the caller's responsibility.
package strata
