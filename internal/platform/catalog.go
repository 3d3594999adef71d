package platform

import (
	"fmt"
	"runtime"
)

// Operating system identifiers used by the catalog.
const (
	Windows = "windows"
	Linux   = "linux"
	Darwin  = "darwin"
)

// Spec describes a single build target.
type Spec struct {
	OS   string // GOOS value
	Arch string // GOARCH value
	Ext  string // executable extension, ".exe" on Windows
}

// Entry pairs a platform key with its spec.
type Entry struct {
	Key  string
	Spec Spec
}

// Catalog is an immutable, ordered registry of build targets.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog builds a catalog from entries, keeping their order.
// Keys must be unique and every spec must name an OS and architecture.
func NewCatalog(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Key == "" || e.Spec.OS == "" || e.Spec.Arch == "" {
			return nil, fmt.Errorf("invalid catalog entry %q: key, os and arch are required", e.Key)
		}
		if _, dup := c.index[e.Key]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.Key)
		}
		c.index[e.Key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// DefaultCatalog returns the six desktop targets the backend ships for.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]Entry{
		{Key: "windows-amd64", Spec: Spec{OS: Windows, Arch: "amd64", Ext: ".exe"}},
		{Key: "windows-arm64", Spec: Spec{OS: Windows, Arch: "arm64", Ext: ".exe"}},
		{Key: "linux-amd64", Spec: Spec{OS: Linux, Arch: "amd64"}},
		{Key: "linux-arm64", Spec: Spec{OS: Linux, Arch: "arm64"}},
		{Key: "darwin-amd64", Spec: Spec{OS: Darwin, Arch: "amd64"}},
		{Key: "darwin-arm64", Spec: Spec{OS: Darwin, Arch: "arm64"}},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve returns the spec registered for key.
func (c *Catalog) Resolve(key string) (Spec, error) {
	i, ok := c.index[key]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, key)
	}
	return c.entries[i].Spec, nil
}

// Keys returns every key in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the catalog entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Key formats a platform key from an OS and architecture.
func Key(goos, goarch string) string {
	return goos + "-" + goarch
}

// HostKey returns the platform key of the running process.
func HostKey() string {
	return Key(runtime.GOOS, runtime.GOARCH)
}
