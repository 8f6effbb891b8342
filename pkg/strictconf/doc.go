/*
Package strictconf is a strict, non-coercive typed-access boundary in
front of an arbitrary weakly-typed configuration source.

# Overview

A Provider hands out raw, untyped values for string keys. An Accessor
sits in front of one Provider and exposes typed getters that either
return a value guaranteed to match the requested shape or fail with a
*TypeMismatchError. Nothing is ever coerced: "123" is never silently
turned into the number 123, an integer never satisfies a float request,
and 1 is not true.

How the raw values get here — files, environment, databases — is the
concern of Provider implementations, not of the validation core.

# Basic Usage

Wrap a provider and read through the typed getters:

	cfg := strictconf.New(strictconf.NewStaticFromMap(map[string]any{
	    "host":    "localhost",
	    "port":    5432,
	    "debug":   true,
	    "servers": []any{"a", "b"},
	}))

	host, err := cfg.String("host")      // "localhost"
	port, err := cfg.Int("port")         // 5432
	debug, err := cfg.Bool("debug")      // true
	list, err := cfg.StringList("servers")

Wrong shapes fail loudly and precisely:

	_, err := cfg.Int("host")
	// config key "host": expected int, got "localhost"

# Getter Forms

Each of the four kinds (String, Int, Bool, Float) comes in five forms:

  - plain: String(key) — missing, null, and wrong-type all fail
  - nullable: NullableString(key) — missing and null return nil
  - default: StringOr(key, def) — def substitutes for any type mismatch
  - list: StringList(key) — homogeneous list, element-wise validation
  - map: StringMap(key) — string-keyed homogeneous map

List failures localize to the offending element ("servers[2]"); map
failures report the outer key only. The asymmetry is deliberate.

# Providers

Three composable providers are built in, plus an environment source:

	base := strictconf.NewStaticFromMap(defaults)
	env := strictconf.NewEnv("APP_")
	lookup := strictconf.Func(func(key string) (strictconf.Value, error) {
	    return strictconf.Absent(), nil
	})

	cfg := strictconf.New(strictconf.NewChain(env, lookup, base))

Chain returns the first present, non-null value. An explicit null from
an earlier provider means "defer to the next one", not an authoritative
null answer.

# Error Handling

The accessor produces exactly one error kind, *TypeMismatchError,
carrying the key, the expected shape descriptor, and a rendering of the
actual value. Errors from the backing source (say, a database read in a
Func provider) pass through the accessor untouched; the ...Or getters
substitute their default only for mismatches, never for provider
failures.

# Thread Safety

Accessor is stateless and safe to share. Static and Chain are safe for
concurrent reads as long as their backing data is not mutated after
construction. A Func provider is as safe as the function it wraps.

# Subpackages

  - source: YAML/JSON file and byte loaders producing Static providers
  - sqlitestore: a Provider backed by a SQLite key/value table
  - observability: opt-in logging, metrics, and tracing around lookups
*/
package strictconf
