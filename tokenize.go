// File: lixenwraith/logprops/tokenize.go
package logprops

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TokenCacheSize bounds the number of memoized tokenizations.
const TokenCacheSize = 2048

var (
	// namespace prefixes: log4j, log4j2, log4j-, log4j2., org.apache.logging.log4j. ...
	prefixPattern = regexp.MustCompile(`(?i)^(?:log4j2?[-._/]?|org\.apache\.logging\.log4j\.)`)

	// sub-components that keep their name as part of the key
	subComponentPattern = regexp.MustCompile(`(?i)^asynclogger(?:config)?\.`)

	tokenPattern = regexp.MustCompile(`([A-Z]*[a-z0-9]+|[A-Z0-9]+)[-._/]?`)
)

// Keys that predate the prefixed naming scheme.
var legacyTokens = map[string][]string{
	"disableThreadContext":          {"disable", "thread", "context"},
	"disableThreadContextStack":     {"disable", "thread", "context", "stack"},
	"disableThreadContextMap":       {"disable", "thread", "context", "map"},
	"isThreadContextMapInheritable": {"is", "thread", "context", "map", "inheritable"},
}

var tokenCache = mustTokenCache()

func mustTokenCache() *lru.Cache[string, []string] {
	cache, err := lru.New[string, []string](TokenCacheSize)
	if err != nil {
		panic(err)
	}
	return cache
}

// Tokenize splits a property name into lower-case word tokens.
//
// A recognized namespace prefix is stripped first; names that start with
// neither a prefix nor a known sub-component yield no tokens and only take
// part in literal lookups. The returned slice must not be modified.
func Tokenize(key string) []string {
	if tokens, ok := legacyTokens[key]; ok {
		return tokens
	}
	if tokens, ok := tokenCache.Get(key); ok {
		return tokens
	}

	tokens := tokenize(key)
	tokenCache.Add(key, tokens)
	return tokens
}

func tokenize(key string) []string {
	rest := key
	if loc := prefixPattern.FindStringIndex(key); loc != nil {
		rest = key[loc[1]:]
	} else if !subComponentPattern.MatchString(key) {
		return nil
	}

	matches := tokenPattern.FindAllStringSubmatch(rest, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, strings.ToLower(m[1]))
	}
	return tokens
}

// tokenKey is the map key for a token sequence.
func tokenKey(tokens []string) string {
	return strings.Join(tokens, ".")
}
