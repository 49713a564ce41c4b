package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// MaxKeyLength is the longest encoded key written verbatim. Keys that
// exceed it are replaced with an xxhash digest so they stay practical as
// JSON object keys and log fields. The digest is deterministic, so the
// substitution never changes hit/miss behavior.
const MaxKeyLength = 256

// identityPattern matches hexadecimal address fragments, the telltale of
// a value whose textual form is identity-based rather than value-based
// (function pointers, channels, or types that format as their address).
// Such fragments are stable within a process but not across runs, which
// defeats a persistent cache.
var identityPattern = regexp.MustCompile(`0x[0-9a-fA-F]+`)

// defaultKeyEncoder implements KeyEncoder using reflection-based
// serialization. It handles function pointers using %p formatting,
// recursive slices, and falls back to JSON for complex types while
// ensuring deterministic key generation across runs.
type defaultKeyEncoder struct {
	observer Observer
}

// NewDefaultKeyEncoder creates the default key encoder. The observer
// receives advisories when an argument renders to an identity-like
// segment; pass nil to discard them.
func NewDefaultKeyEncoder(observer Observer) KeyEncoder {
	return &defaultKeyEncoder{observer: observer}
}

// EncodeCall builds a cache key from positional and named arguments.
// Positional arguments keep their order; named arguments are sorted by
// name so argument ordering at the call site never changes the key.
func (e *defaultKeyEncoder) EncodeCall(args []any, kwargs map[string]any) string {
	parts := make([]string, 0, len(args)+len(kwargs))

	for _, arg := range args {
		parts = append(parts, e.encodeValue(arg))
	}

	if len(kwargs) > 0 {
		names := make([]string, 0, len(kwargs))
		for name := range kwargs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			parts = append(parts, name+"="+e.encodeValue(kwargs[name]))
		}
	}

	for _, part := range parts {
		e.adviseIfUnstable(part)
	}

	if len(parts) == 0 {
		return "()"
	}

	key := strings.Join(parts, KeySeparator)
	if len(key) > MaxKeyLength {
		return fmt.Sprintf("xxh64:%016x", xxhash.Sum64String(key))
	}
	return key
}

// adviseIfUnstable emits an advisory when a rendered segment looks like
// it embeds a memory address. Advisory only: the key is used as-is.
func (e *defaultKeyEncoder) adviseIfUnstable(segment string) {
	if e.observer == nil {
		return
	}
	if identityPattern.MatchString(segment) {
		e.observer(Advisory{Kind: AdvisoryUnstableKeySegment, Segment: segment})
	}
}

// encodeValue handles individual argument serialization based on type.
func (e *defaultKeyEncoder) encodeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	rt := reflect.TypeOf(v)

	// Function pointers have no value-based representation; %p is the
	// best available, and the advisory scan will flag it.
	if rt.Kind() == reflect.Func {
		return fmt.Sprintf("func:%p", v)
	}

	// Handle pointers by dereferencing
	if rt.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "nil"
		}
		return e.encodeValue(rv.Elem().Interface())
	}

	// Handle slices recursively
	if rt.Kind() == reflect.Slice {
		if rv.IsNil() {
			return "slice:nil"
		}
		return e.encodeSeq("slice", rv)
	}

	// Handle arrays
	if rt.Kind() == reflect.Array {
		return e.encodeSeq("array", rv)
	}

	// Handle maps with sorted keys for determinism
	if rt.Kind() == reflect.Map {
		if rv.IsNil() {
			return "map:nil"
		}
		return e.encodeMap(rv)
	}

	// Handle structs
	if rt.Kind() == reflect.Struct {
		return e.encodeStruct(rv, rt)
	}

	switch rt.Kind() {
	case reflect.Chan:
		return fmt.Sprintf("chan:%p", v)
	case reflect.Interface:
		if rv.IsNil() {
			return "interface:nil"
		}
		return e.encodeValue(rv.Elem().Interface())
	}

	// For basic types, use string representation
	if isBasicKind(rt.Kind()) {
		return fmt.Sprintf("%v", v)
	}

	// Fallback to JSON for complex types
	return e.jsonFallback(v)
}

// encodeSeq handles slice and array serialization recursively.
func (e *defaultKeyEncoder) encodeSeq(kind string, rv reflect.Value) string {
	length := rv.Len()
	parts := make([]string, length)

	for i := 0; i < length; i++ {
		parts[i] = e.encodeValue(rv.Index(i).Interface())
	}

	return fmt.Sprintf("%s[%d]:{%s}", kind, length, strings.Join(parts, ","))
}

// encodeMap handles map serialization with sorted keys for determinism.
func (e *defaultKeyEncoder) encodeMap(rv reflect.Value) string {
	keys := rv.MapKeys()

	type pair struct {
		key   string
		value reflect.Value
	}
	pairs := make([]pair, len(keys))
	for i, k := range keys {
		pairs[i] = pair{key: e.encodeValue(k.Interface()), value: rv.MapIndex(k)}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	rendered := make([]string, len(pairs))
	for i, p := range pairs {
		rendered[i] = fmt.Sprintf("%s=%s", p.key, e.encodeValue(p.value.Interface()))
	}

	return fmt.Sprintf("map[%d]:{%s}", len(rendered), strings.Join(rendered, ","))
}

// encodeStruct handles struct serialization with field names.
func (e *defaultKeyEncoder) encodeStruct(rv reflect.Value, rt reflect.Type) string {
	numFields := rv.NumField()
	parts := make([]string, 0, numFields)

	for i := 0; i < numFields; i++ {
		field := rt.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		fieldValue := rv.Field(i)
		if !fieldValue.CanInterface() {
			continue
		}

		parts = append(parts, fmt.Sprintf("%s:%s", field.Name, e.encodeValue(fieldValue.Interface())))
	}

	return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))
}

// isBasicKind checks if a kind represents a basic Go type.
func isBasicKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}

// jsonFallback provides JSON serialization as a last resort.
func (e *defaultKeyEncoder) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// If JSON marshaling fails, use type and pointer info
		rv := reflect.ValueOf(v)
		rt := reflect.TypeOf(v)
		if rv.CanAddr() {
			return fmt.Sprintf("fallback:%s:%x", rt.String(), rv.UnsafeAddr())
		}
		return fmt.Sprintf("fallback:%s", rt.String())
	}
	return fmt.Sprintf("json:%s", string(data))
}
