package identity

// Claims adalah decoded token claims dari auth provider.
// Semua accessor default ke zero value kalau field absen atau tipenya salah.
type Claims map[string]any

// Subject returns the unique user id ("sub") from the claims.
func (c Claims) Subject() string {
	return c.String("sub")
}

// String returns the named claim as a string, or "" when absent.
func (c Claims) String(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}

// Truthy reports whether the named claim is set to a truthy value:
// bool true, non-empty string, or non-zero number all count.
func (c Claims) Truthy(key string) bool {
	switch v := c[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		// non-scalar claim present at all counts as set
		return true
	}
}

// Map returns the named claim as nested Claims, or an empty map.
func (c Claims) Map(key string) Claims {
	switch v := c[key].(type) {
	case map[string]any:
		return Claims(v)
	case Claims:
		return v
	}
	return Claims{}
}

// List returns the named claim as a slice of nested Claims.
// Non-map elements are skipped.
func (c Claims) List(key string) []Claims {
	raw, ok := c[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Claims, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Claims(m))
		}
	}
	return out
}
