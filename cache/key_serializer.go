package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	// KeySeparator defines the delimiter used between cache key segments.
	KeySeparator = "::"

	// DefaultMaxSegmentLength is the longest argument segment kept verbatim.
	DefaultMaxSegmentLength = 64
)

// defaultKeySerializer implements KeySerializer using reflection-based serialization.
// Segments longer than maxSegment are replaced by their xxhash digest so keys stay
// short and free of characters remote stores reject.
type defaultKeySerializer struct {
	maxSegment int
}

// KeySerializerOption configures the default serializer.
type KeySerializerOption func(*defaultKeySerializer)

// WithMaxSegmentLength sets the length above which segments are hashed.
func WithMaxSegmentLength(n int) KeySerializerOption {
	return func(s *defaultKeySerializer) {
		if n > 0 {
			s.maxSegment = n
		}
	}
}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer(opts ...KeySerializerOption) KeySerializer {
	s := &defaultKeySerializer{maxSegment: DefaultMaxSegmentLength}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SerializeKey builds a cache key from the prefix and args.
func (s *defaultKeySerializer) SerializeKey(method string, args ...any) string {
	if len(args) == 0 {
		return method
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, method)
	for _, arg := range args {
		parts = append(parts, s.shorten(s.serializeValue(arg)))
	}

	return strings.Join(parts, KeySeparator)
}

func (s *defaultKeySerializer) shorten(segment string) string {
	if len(segment) <= s.maxSegment && !strings.ContainsAny(segment, " \t\r\n") {
		return segment
	}
	return "h:" + strconv.FormatUint(xxhash.Sum64String(segment), 16)
}

// serializeValue handles individual argument serialization based on type.
func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	switch tv := v.(type) {
	case string:
		return tv
	case time.Time:
		return tv.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return tv.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "slice:nil"
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = s.serializeValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ",") + "]"
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return fmt.Sprintf("%v", v)
	}

	return s.jsonFallback(v)
}

// jsonFallback provides JSON serialization as a last resort
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%T", v)
	}
	return string(data)
}
