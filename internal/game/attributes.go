package game

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// AttributeReader exposes read access to an entity's named attributes.
type AttributeReader interface {
	Attribute(name string) (any, bool)
}

// Attributes is a concurrency-safe store of named values owned by an entity.
// Names are case-insensitive.
type Attributes struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewAttributes returns a store seeded with the provided values.
func NewAttributes(seed map[string]any) *Attributes {
	a := &Attributes{values: make(map[string]any, len(seed))}
	for k, v := range seed {
		a.values[attributeKey(k)] = v
	}
	return a
}

func attributeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Attribute implements AttributeReader.
func (a *Attributes) Attribute(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.values[attributeKey(name)]
	return v, ok
}

// Get returns the named value or fallback when it is unset.
func (a *Attributes) Get(name string, fallback any) any {
	if v, ok := a.Attribute(name); ok {
		return v
	}
	return fallback
}

// Has reports whether the attribute is set.
func (a *Attributes) Has(name string) bool {
	_, ok := a.Attribute(name)
	return ok
}

// Set stores value under name. A nil value removes the attribute.
func (a *Attributes) Set(name string, value any) {
	key := attributeKey(name)
	if key == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if value == nil {
		delete(a.values, key)
		return
	}
	a.values[key] = value
}

// SetDefault stores value only if the attribute is not already set. It
// reports whether the value was written.
func (a *Attributes) SetDefault(name string, value any) bool {
	key := attributeKey(name)
	if key == "" || value == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, exists := a.values[key]; exists {
		return false
	}
	a.values[key] = value
	return true
}

// Delete removes the attribute.
func (a *Attributes) Delete(name string) {
	a.Set(name, nil)
}

// String returns the attribute as a string.
func (a *Attributes) String(name string) (string, bool) {
	v, ok := a.Attribute(name)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case Gender:
		return string(s), true
	default:
		return "", false
	}
}

// Int returns the attribute as an int. Numbers decoded from JSON arrive as
// float64 and numeric strings are accepted.
func (a *Attributes) Int(name string) (int, bool) {
	v, ok := a.Attribute(name)
	if !ok {
		return 0, false
	}
	return toInt(v)
}

// Bool returns the attribute as a bool.
func (a *Attributes) Bool(name string) (bool, bool) {
	v, ok := a.Attribute(name)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Strings returns a list attribute.
func (a *Attributes) Strings(name string) ([]string, bool) {
	v, ok := a.Attribute(name)
	if !ok {
		return nil, false
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// IntMap returns a string-to-int map attribute such as character stats.
func (a *Attributes) IntMap(name string) (map[string]int, bool) {
	v, ok := a.Attribute(name)
	if !ok {
		return nil, false
	}
	switch m := v.(type) {
	case map[string]int:
		out := make(map[string]int, len(m))
		for k, n := range m {
			out[k] = n
		}
		return out, true
	case map[string]any:
		out := make(map[string]int, len(m))
		for k, raw := range m {
			n, ok := toInt(raw)
			if !ok {
				return nil, false
			}
			out[k] = n
		}
		return out, true
	default:
		return nil, false
	}
}

// Names returns the attribute names in sorted order.
func (a *Attributes) Names() []string {
	a.mu.RLock()
	names := make([]string, 0, len(a.values))
	for k := range a.values {
		names = append(names, k)
	}
	a.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Snapshot copies the current values.
func (a *Attributes) Snapshot() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// Load replaces every value with the provided set.
func (a *Attributes) Load(values map[string]any) {
	fresh := make(map[string]any, len(values))
	for k, v := range values {
		if key := attributeKey(k); key != "" && v != nil {
			fresh[key] = v
		}
	}
	a.mu.Lock()
	a.values = fresh
	a.mu.Unlock()
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
