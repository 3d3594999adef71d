package buildenv

import (
	"maps"
	"runtime"
	"slices"
	"strings"
)

// Env is a set of environment variables.
type Env map[string]string

// FromEnviron parses KEY=VALUE pairs as returned by os.Environ.
// Entries without '=' are skipped.
func FromEnviron(environ []string) Env {
	env := make(Env, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Clone returns an independent copy of e.
func (e Env) Clone() Env {
	c := make(Env, len(e))
	maps.Copy(c, e)
	return c
}

// Environ formats e as sorted KEY=VALUE pairs suitable for exec.Cmd.Env.
func (e Env) Environ() []string {
	keys := slices.Sorted(maps.Keys(e))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+e[k])
	}
	return out
}

// Get returns the value of key. On Windows the lookup ignores case, matching
// how the OS treats variable names.
func (e Env) Get(key string) string {
	v, _ := e.lookup(key)
	return v
}

// Set assigns key, reusing the spelling of an existing key on Windows.
func (e Env) Set(key, value string) {
	if _, existing := e.lookup(key); existing != "" {
		key = existing
	}
	e[key] = value
}

// lookup returns the value and the actual key name stored for key.
func (e Env) lookup(key string) (string, string) {
	if v, ok := e[key]; ok {
		return v, key
	}
	if runtime.GOOS != "windows" {
		return "", ""
	}
	for k, v := range e {
		if strings.EqualFold(k, key) {
			return v, k
		}
	}
	return "", ""
}
