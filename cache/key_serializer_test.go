package cache

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type itemRef struct {
	id   int
	kind int
}

func (r itemRef) String() string {
	return "ref-" + strconv.Itoa(r.id) + "-" + strconv.Itoa(r.kind)
}

func joinWithSeparator(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

func TestDefaultKeySerializer_BasicTypes(t *testing.T) {
	serializer := NewDefaultKeySerializer()
	ptr := 5
	var nilPtr *int

	tests := []struct {
		name   string
		method string
		args   []any
		want   string
	}{
		{name: "no args", method: "calendar_item", args: nil, want: "calendar_item"},
		{name: "single int", method: "calendar_item", args: []any{42}, want: joinWithSeparator("calendar_item", "42")},
		{name: "string", method: "text_list", args: []any{"home"}, want: joinWithSeparator("text_list", "home")},
		{name: "multiple basic types", method: "text", args: []any{"Welcome", "home", 1}, want: joinWithSeparator("text", "Welcome", "home", "1")},
		{name: "bool and float", method: "m", args: []any{true, 3.5}, want: joinWithSeparator("m", "true", "3.5")},
		{name: "nil", method: "m", args: []any{nil}, want: joinWithSeparator("m", "nil")},
		{name: "pointer", method: "m", args: []any{&ptr}, want: joinWithSeparator("m", "5")},
		{name: "nil pointer", method: "m", args: []any{nilPtr}, want: joinWithSeparator("m", "nil")},
		{name: "slice", method: "m", args: []any{[]int{1, 2}}, want: joinWithSeparator("m", "[1,2]")},
		{name: "nil slice", method: "m", args: []any{[]string(nil)}, want: joinWithSeparator("m", "slice:nil")},
		{name: "stringer", method: "timeline_list_item", args: []any{itemRef{id: 3, kind: 1}}, want: joinWithSeparator("timeline_list_item", "ref-3-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serializer.SerializeKey(tt.method, tt.args...))
		})
	}
}

func TestDefaultKeySerializer_Time(t *testing.T) {
	serializer := NewDefaultKeySerializer()
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 3, 1, 13, 0, 0, 0, loc)

	assert.Equal(t, joinWithSeparator("onthisday", "2024-03-01T12:00:00Z"), serializer.SerializeKey("onthisday", ts))
}

func TestDefaultKeySerializer_HashesLongSegments(t *testing.T) {
	serializer := NewDefaultKeySerializer(WithMaxSegmentLength(8))

	short := serializer.SerializeKey("text", "home")
	assert.Equal(t, joinWithSeparator("text", "home"), short)

	long := serializer.SerializeKey("text", "a much longer title")
	assert.True(t, strings.HasPrefix(long, "text"+KeySeparator+"h:"))
	assert.Equal(t, long, serializer.SerializeKey("text", "a much longer title"))
	assert.NotEqual(t, long, serializer.SerializeKey("text", "a much longer titles"))
}

func TestDefaultKeySerializer_HashesWhitespace(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	key := serializer.SerializeKey("translation", "Good morning", "home")
	parts := strings.Split(key, KeySeparator)
	assert.Len(t, parts, 3)
	assert.True(t, strings.HasPrefix(parts[1], "h:"))
	assert.Equal(t, "home", parts[2])
}

func TestDefaultKeySerializer_StructFallsBackToJSON(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	type filter struct {
		Page string
		Lang int
	}
	assert.Equal(t, joinWithSeparator("f", `{"Page":"home","Lang":1}`), serializer.SerializeKey("f", filter{Page: "home", Lang: 1}))
}

func TestDefaultKeySerializer_Stable(t *testing.T) {
	serializer := NewDefaultKeySerializer()
	args := []any{"home", 2, []string{"a", "b"}}

	first := serializer.SerializeKey("text_list", args...)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, serializer.SerializeKey("text_list", args...))
	}
}
