package cache

import (
	"strings"
	"testing"

	"github.com/goliatone/go-memoize/pkg/testsupport"
)

func joinWithSeparator(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

func TestDefaultKeyEncoder_BasicTypes(t *testing.T) {
	encoder := NewDefaultKeyEncoder(nil)

	tests := []struct {
		name string
		args []any
		want string
	}{
		{
			name: "no args",
			args: []any{},
			want: "()",
		},
		{
			name: "single int",
			args: []any{42},
			want: "42",
		},
		{
			name: "multiple basic types",
			args: []any{1, "hello", true, 3.14},
			want: joinWithSeparator("1", "hello", "true", "3.14"),
		},
		{
			name: "nil arg",
			args: []any{nil},
			want: "nil",
		},
		{
			name: "string with separator chars",
			args: []any{"hello:world"},
			want: "hello:world",
		},
		{
			name: "slice",
			args: []any{[]string{"a", "b"}},
			want: "slice[2]:{a,b}",
		},
		{
			name: "nil slice",
			args: []any{[]string(nil)},
			want: "slice:nil",
		},
		{
			name: "array",
			args: []any{[2]int{7, 9}},
			want: "array[2]:{7,9}",
		},
		{
			name: "map with sorted keys",
			args: []any{map[string]int{"b": 2, "a": 1}},
			want: "map[2]:{a=1,b=2}",
		},
		{
			name: "struct with exported fields",
			args: []any{struct {
				Name string
				Age  int
			}{Name: "ada", Age: 36}},
			want: "struct:{Name:ada,Age:36}",
		},
		{
			name: "pointer dereferenced",
			args: []any{ptr("deref")},
			want: "deref",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encoder.EncodeCall(tt.args, nil)
			if got != tt.want {
				t.Errorf("EncodeCall() = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestDefaultKeyEncoder_Determinism(t *testing.T) {
	encoder := NewDefaultKeyEncoder(nil)

	args := []any{"query", 7, map[string]string{"x": "1", "y": "2", "z": "3"}}
	first := encoder.EncodeCall(args, nil)

	// Map iteration order is randomized per run, so repeated encoding is
	// the cheapest way to catch order leaking into the key.
	for i := 0; i < 50; i++ {
		if got := encoder.EncodeCall(args, nil); got != first {
			t.Fatalf("EncodeCall() not deterministic: %q vs %q", got, first)
		}
	}
}

func TestDefaultKeyEncoder_NamedArgs(t *testing.T) {
	encoder := NewDefaultKeyEncoder(nil)

	got := encoder.EncodeCall(nil, map[string]any{"tier": "gold", "currency": "EUR"})
	want := joinWithSeparator("currency=EUR", "tier=gold")
	if got != want {
		t.Errorf("EncodeCall() = %q, want %q (named args sorted)", got, want)
	}

	t.Run("mixed positional and named", func(t *testing.T) {
		got := encoder.EncodeCall([]any{"eu-west-1"}, map[string]any{"tier": "gold"})
		want := joinWithSeparator("eu-west-1", "tier=gold")
		if got != want {
			t.Errorf("EncodeCall() = %q, want %q", got, want)
		}
	})
}

func TestDefaultKeyEncoder_UnstableAdvisory(t *testing.T) {
	var advisories []Advisory
	encoder := NewDefaultKeyEncoder(func(a Advisory) {
		advisories = append(advisories, a)
	})

	t.Run("function argument is flagged", func(t *testing.T) {
		advisories = nil
		key := encoder.EncodeCall([]any{func() {}}, nil)

		if len(advisories) != 1 {
			t.Fatalf("got %d advisories, want 1", len(advisories))
		}
		if advisories[0].Kind != AdvisoryUnstableKeySegment {
			t.Errorf("advisory kind = %q, want %q", advisories[0].Kind, AdvisoryUnstableKeySegment)
		}
		// Advisory only: the key is still produced from the segment.
		if !strings.HasPrefix(key, "func:0x") {
			t.Errorf("key = %q, want func:0x prefix", key)
		}
	})

	t.Run("stable arguments are not flagged", func(t *testing.T) {
		advisories = nil
		encoder.EncodeCall([]any{"plain", 12, []int{1, 2}}, nil)

		if len(advisories) != 0 {
			t.Errorf("got %d advisories for stable args, want 0", len(advisories))
		}
	})
}

func TestDefaultKeyEncoder_LongKeyDigest(t *testing.T) {
	encoder := NewDefaultKeyEncoder(nil)

	long := strings.Repeat("payload-", 100)
	first := encoder.EncodeCall([]any{long}, nil)

	if !strings.HasPrefix(first, "xxh64:") {
		t.Fatalf("key = %q, want xxh64: prefix for over-long input", first)
	}
	if got := encoder.EncodeCall([]any{long}, nil); got != first {
		t.Errorf("digested key not deterministic: %q vs %q", got, first)
	}
	if other := encoder.EncodeCall([]any{long + "!"}, nil); other == first {
		t.Error("distinct over-long inputs produced the same digest")
	}
}

type keyScenario struct {
	Name   string         `json:"name"`
	Args   []any          `json:"args"`
	Kwargs map[string]any `json:"kwargs"`
	Want   string         `json:"want"`
}

func TestDefaultKeyEncoder_Fixtures(t *testing.T) {
	var scenarios []keyScenario
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("key_scenarios.json"), &scenarios)

	encoder := NewDefaultKeyEncoder(nil)
	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			if got := encoder.EncodeCall(sc.Args, sc.Kwargs); got != sc.Want {
				t.Errorf("EncodeCall() = %q, want %q", got, sc.Want)
			}
		})
	}
}
