package platform

import "fmt"

// Meta tokens accepted in place of a concrete platform key.
const (
	All     = "all"
	Current = "current"
)

// ResolveRequested expands a requested platform list into concrete keys.
//
// "all" expands to every catalog key in catalog order and "current" to host.
// Duplicates are dropped, keeping the first occurrence. An empty request
// resolves to the host alone. Every resulting key must be in the catalog.
func (c *Catalog) ResolveRequested(requested []string, host string) ([]string, error) {
	if len(requested) == 0 {
		requested = []string{Current}
	}

	var expanded []string
	for _, r := range requested {
		switch r {
		case All:
			expanded = append(expanded, c.Keys()...)
		case Current:
			expanded = append(expanded, host)
		default:
			expanded = append(expanded, r)
		}
	}

	seen := make(map[string]bool, len(expanded))
	keys := make([]string, 0, len(expanded))
	for _, k := range expanded {
		if seen[k] {
			continue
		}
		if _, ok := c.index[k]; !ok {
			if k == host {
				return nil, fmt.Errorf("%w: host platform %q is not in the catalog", ErrUnknownPlatform, k)
			}
			return nil, fmt.Errorf("%w: %q (valid: %v, %q, %q)", ErrUnknownPlatform, k, c.Keys(), All, Current)
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys, nil
}
