// File: lixenwraith/logprops/doc.go

// Package logprops resolves logging configuration properties from multiple
// prioritized sources: system properties, environment variables, property
// files, JSON documents and programmatic sources.
//
// Features:
//   - PropertySource contract with per-source key spelling (normal forms)
//   - Loose key matching through tokenization ("log4j2.fooBar", "LOG4J_FOO_BAR"
//     and "log4j.foo-bar" are the same property)
//   - Literal, normalized and tokenized caches rebuilt on explicit Reload
//   - Fail-soft typed accessors for string, bool, int, int64, float, duration,
//     charset and list values
//   - Tri-state booleans telling "unset" apart from "set but empty"
//   - Context-scoped lookups with "log4j2.<context>.<key>" composite keys
//   - Builder pattern, file discovery, struct scanning and Prometheus metrics
//
// Quick Start:
//
//	env, err := logprops.NewBuilder().
//	    WithProperties(map[string]string{"log4j2.level": "WARN"}, logprops.SystemPropertiesPriority).
//	    WithEnvironment().
//	    WithFile("log4j2.component.properties").
//	    Build()
//	if err != nil && !errors.Is(err, logprops.ErrConfigNotFound) {
//	    log.Fatal(err)
//	}
//
//	level := env.StringOr("log4j2.level", "ERROR")
//	shutdown := env.Duration("log4j2.shutdownTimeout", 30*time.Second)
//
// Precedence:
// Sources are ordered by ascending Priority. For any key, the first source in
// that order which defines it wins. The built-in priorities are:
//  1. System properties (0)
//  2. Environment variables (100)
//  3. Property files (200)
//  4. JSON documents (300)
//
// Thread Safety:
// All Environment operations are safe for concurrent use. Reload is
// serialized; readers observe either the previous or the rebuilt caches,
// never a partial state.
package logprops
