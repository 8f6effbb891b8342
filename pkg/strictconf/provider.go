package strictconf

import "os"

// Provider supplies raw, untyped values for string keys.
//
// A missing key is reported as Absent() with a nil error; Get never
// fails just because a key does not exist. The error return carries
// failures of the backing source (a broken database connection, say),
// which the accessor propagates to its caller unchanged.
//
// The contract does not interpret keys; dotted paths, environment
// variable names and so on are provider-defined namespaces.
// Implementations must be safe for concurrent use.
type Provider interface {
	Get(key string) (Value, error)
}

// Static is a Provider over a fixed key/value map.
// The map is treated as immutable after construction, which makes
// Static safe for concurrent reads.
type Static struct {
	values map[string]Value
}

// NewStatic creates a Static provider over values.
// The map must not be modified after the call.
func NewStatic(values map[string]Value) *Static {
	if values == nil {
		values = make(map[string]Value)
	}
	return &Static{values: values}
}

// NewStaticFromMap creates a Static provider from raw dynamic data,
// converting each value with FromAny.
func NewStaticFromMap(data map[string]any) *Static {
	values := make(map[string]Value, len(data))
	for k, raw := range data {
		values[k] = FromAny(raw)
	}
	return &Static{values: values}
}

// Get implements Provider.
func (s *Static) Get(key string) (Value, error) {
	v, ok := s.values[key]
	if !ok {
		return Absent(), nil
	}
	return v, nil
}

// Len returns the number of stored keys. Useful for testing.
func (s *Static) Len() int {
	return len(s.values)
}

// Func adapts a plain lookup function into a Provider. The function
// receives the key unchanged and may perform arbitrary work; the core
// makes no assumption about its latency or determinism.
type Func func(key string) (Value, error)

// Get implements Provider.
func (f Func) Get(key string) (Value, error) {
	return f(key)
}

// Chain queries an ordered list of Providers and returns the first
// present, non-null value. Null from an earlier provider means "defer
// to the next one", not an authoritative null; absent means the same.
// If every provider defers, Chain reports the key as absent.
//
// The provider list is immutable after construction; earlier entries
// take priority.
type Chain struct {
	providers []Provider
}

// NewChain creates a Chain over providers in priority order.
// An empty chain reports every key as absent.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Get implements Provider. A provider error stops the scan and is
// returned as-is.
func (c *Chain) Get(key string) (Value, error) {
	for _, p := range c.providers {
		v, err := p.Get(key)
		if err != nil {
			return Absent(), err
		}
		if !v.IsMissing() {
			return v, nil
		}
	}
	return Absent(), nil
}

// Env reads values from process environment variables. Values are
// always strings; Env performs no parsing, so a numeric variable must
// be read back through the string getters.
type Env struct {
	prefix string
}

// NewEnv creates an Env provider. prefix is prepended to every
// requested key before the environment lookup; pass "" to look keys
// up verbatim.
func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix}
}

// Get implements Provider. Unset variables are absent; set-but-empty
// variables are present empty strings.
func (e *Env) Get(key string) (Value, error) {
	v, ok := os.LookupEnv(e.prefix + key)
	if !ok {
		return Absent(), nil
	}
	return String(v), nil
}
