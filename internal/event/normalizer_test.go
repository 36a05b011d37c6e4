package event

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1717171717, 0)

func newTestNormalizer() *Normalizer {
	return NewNormalizer().WithClock(func() time.Time { return fixedNow })
}

func TestCoerceBilingual(t *testing.T) {
	t.Run("bilingual mapping passes through", func(t *testing.T) {
		in := map[string]any{"en": "Hello", "zh": "你好"}
		got := CoerceBilingual(ValueOf(in), "x")
		assert.Equal(t, Bilingual{En: "Hello", Zh: "你好"}, got)
	})

	t.Run("extra languages are dropped", func(t *testing.T) {
		in := map[string]any{"en": "A", "zh": "B", "fr": "C"}
		assert.Equal(t, Bilingual{En: "A", Zh: "B"}, CoerceBilingual(ValueOf(in), "x"))
	})

	t.Run("same text both languages for plain strings", func(t *testing.T) {
		for _, s := range []string{"Launch", "", "发布会"} {
			assert.Equal(t, Bilingual{En: s, Zh: s}, CoerceBilingual(ValueOf(s), "x"))
		}
	})

	t.Run("other shapes fall back to the default", func(t *testing.T) {
		cases := map[string]Value{
			"absent":        Absent,
			"null":          ValueOf(nil),
			"number":        ValueOf(42.0),
			"bool":          ValueOf(true),
			"list":          ValueOf([]any{"en", "zh"}),
			"partial map":   ValueOf(map[string]any{"en": "only"}),
			"unrelated map": ValueOf(map[string]any{"text": "x"}),
		}
		for name, v := range cases {
			t.Run(name, func(t *testing.T) {
				assert.Equal(t, Bilingual{En: "dflt", Zh: "dflt"}, CoerceBilingual(v, "dflt"))
			})
		}
	})

	t.Run("non-string slot values are rendered as text", func(t *testing.T) {
		got := CoerceBilingual(ValueOf(map[string]any{"en": 2024.0, "zh": nil}), "")
		assert.Equal(t, Bilingual{En: "2024", Zh: ""}, got)
	})
}

var idPattern = regexp.MustCompile(`^event_\d+_\d{3}$`)

func TestGenerateID(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, "event_20240305_001", n.GenerateID("2024-03-05", 1))
	assert.Equal(t, "event_20241231_042", n.GenerateID("2024-12-31", 42))

	t.Run("unpadded month and day", func(t *testing.T) {
		for _, d := range []string{"2024-3-5", "2024-03-5", "2024-3-05"} {
			assert.Equal(t, "event_20240305_001", n.GenerateID(d, 1), "date %q", d)
		}
	})

	t.Run("invalid dates fall back to the clock", func(t *testing.T) {
		for _, d := range []string{"not-a-date", "", "2024/03/05", "2024-13-01", "2024-02-30"} {
			got := n.GenerateID(d, 1)
			assert.Equal(t, "event_1717171717_001", got, "date %q", d)
		}
	})

	t.Run("always matches the id shape", func(t *testing.T) {
		for _, seq := range []int{-3, 0, 1, 7, 99, 999} {
			for _, d := range []string{"2024-01-10", "garbage"} {
				got := GenerateID(d, seq)
				assert.NotEmpty(t, got)
				assert.Regexp(t, idPattern, got)
			}
		}
	})
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-01-10")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("2024-1-9")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), d)

	for _, s := range []string{"10/01/2024", "2024-1-32", "24-01-10", "2024-01-10T00:00:00Z"} {
		_, ok = ParseDate(s)
		assert.False(t, ok, s)
	}
}

func TestRepairPeople(t *testing.T) {
	t.Run("drops non-mapping entries", func(t *testing.T) {
		in := []any{
			map[string]any{"name": "A"},
			"garbage",
			map[string]any{"name": "B", "role": "X"},
		}
		got := RepairVIPs(ValueOf(in))
		require.Len(t, got, 2)
		assert.Equal(t, VIP{Name: Same("A"), Role: DefaultVIPRole}, got[0])
		assert.Equal(t, VIP{Name: Same("B"), Role: Same("X")}, got[1])
	})

	t.Run("missing name becomes Unknown", func(t *testing.T) {
		got := RepairSpeakers(ValueOf([]any{map[string]any{"theme": "AI"}}))
		require.Len(t, got, 1)
		assert.Equal(t, Bilingual{En: "Unknown", Zh: "未知"}, got[0].Name)
		assert.Equal(t, Same("AI"), got[0].Theme)
	})

	t.Run("present but malformed name uses empty default", func(t *testing.T) {
		got := RepairSpeakers(ValueOf([]any{map[string]any{"name": 12.0}}))
		require.Len(t, got, 1)
		assert.Equal(t, Same(""), got[0].Name)
		assert.Equal(t, Same("Presentation"), got[0].Theme)
	})

	t.Run("speakers read theme not role", func(t *testing.T) {
		got := RepairSpeakers(ValueOf([]any{map[string]any{"name": "A", "role": "Host"}}))
		require.Len(t, got, 1)
		assert.Equal(t, DefaultTheme, got[0].Theme)
	})

	t.Run("non-list input yields an empty list", func(t *testing.T) {
		for _, v := range []Value{Absent, ValueOf(nil), ValueOf("Jane"), ValueOf(map[string]any{"name": "Jane"})} {
			got := RepairSpeakers(v)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		}
	})

	t.Run("keeps order and duplicates", func(t *testing.T) {
		in := []any{
			map[string]any{"name": "B"},
			map[string]any{"name": "A"},
			map[string]any{"name": "B"},
		}
		got := RepairSpeakers(ValueOf(in))
		require.Len(t, got, 3)
		assert.Equal(t, "B", got[0].Name.En)
		assert.Equal(t, "A", got[1].Name.En)
		assert.Equal(t, "B", got[2].Name.En)
	})
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want []string
	}{
		{"single string", ValueOf("Tech"), []string{"Tech"}},
		{"list", ValueOf([]any{"A", "B"}), []string{"A", "B"}},
		{"list elements stringified", ValueOf([]any{"A", 3.0, true}), []string{"A", "3", "true"}},
		{"string set", ValueOf([]string{"A"}), []string{"A"}},
		{"number", ValueOf(42.0), []string{}},
		{"absent", Absent, []string{}},
		{"null", ValueOf(nil), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer()

	t.Run("round trip of a sparse record", func(t *testing.T) {
		raw := map[string]any{
			"date":       "2024-01-10",
			"event_name": "Launch",
			"speakers":   []any{map[string]any{"name": "Jane", "theme": "AI"}},
		}
		got := n.Normalize(raw)

		assert.Equal(t, "event_20240110_001", got.ID)
		assert.Equal(t, Bilingual{En: "Launch", Zh: "Launch"}, got.EventName)
		assert.Equal(t, Bilingual{En: "Missing location", Zh: "缺少location"}, got.Location)
		assert.Equal(t, Bilingual{En: "Missing description", Zh: "缺少description"}, got.Description)
		assert.Equal(t, Bilingual{En: "Missing time", Zh: "缺少time"}, got.Time)
		assert.Equal(t, []string{}, got.Category)
		assert.Equal(t, []Speaker{{Name: Same("Jane"), Theme: Same("AI")}}, got.Speakers)
		assert.Equal(t, []VIP{}, got.VIPs)
		assert.Nil(t, got.Transportation)
		assert.Equal(t, "2024-01-10", got.Date)
		assert.Equal(t, "", got.Language)
		assert.Equal(t, "", got.Hyperlink)
	})

	t.Run("id resolution", func(t *testing.T) {
		tests := []struct {
			name string
			raw  map[string]any
			want string
		}{
			{"kept", map[string]any{"id": "evt-1", "date": "2024-01-10"}, "evt-1"},
			{"numeric id stringified", map[string]any{"id": 17.0}, "17"},
			{"placeholder replaced", map[string]any{"id": "N/A", "date": "2024-02-01"}, "event_20240201_001"},
			{"empty replaced", map[string]any{"id": "", "date": "2024-02-01"}, "event_20240201_001"},
			{"null replaced", map[string]any{"id": nil, "date": "2024-02-01"}, "event_20240201_001"},
			{"no date", map[string]any{}, "event_1717171717_001"},
			{"bad date", map[string]any{"date": "soon"}, "event_1717171717_001"},
			{"non-string date", map[string]any{"date": 20240201.0}, "event_1717171717_001"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, n.Normalize(tt.raw).ID)
			})
		}
	})

	t.Run("present but null required field uses empty text", func(t *testing.T) {
		got := n.Normalize(map[string]any{"location": nil})
		assert.Equal(t, Same(""), got.Location)
	})

	t.Run("simple fields", func(t *testing.T) {
		got := n.Normalize(map[string]any{
			"date":      "2024-05-05",
			"language":  false,
			"hyperlink": 0.0,
		})
		assert.Equal(t, "2024-05-05", got.Date)
		assert.Equal(t, "", got.Language)
		assert.Equal(t, "", got.Hyperlink)

		got = n.Normalize(map[string]any{"language": "en", "hyperlink": 12.5})
		assert.Equal(t, "en", got.Language)
		assert.Equal(t, "12.5", got.Hyperlink)
	})

	t.Run("transportation only when truthy", func(t *testing.T) {
		assert.Nil(t, n.Normalize(map[string]any{"transportation": ""}).Transportation)
		assert.Nil(t, n.Normalize(map[string]any{"transportation": nil}).Transportation)

		got := n.Normalize(map[string]any{"transportation": "MTR Exit A"})
		require.NotNil(t, got.Transportation)
		assert.Equal(t, Same("MTR Exit A"), *got.Transportation)

		got = n.Normalize(map[string]any{"transportation": 3.0})
		require.NotNil(t, got.Transportation)
		assert.Equal(t, Same(""), *got.Transportation)
	})

	t.Run("sequence number feeds synthesized ids", func(t *testing.T) {
		got := n.NormalizeWithSequence(map[string]any{"date": "2024-01-10"}, 4)
		assert.Equal(t, "event_20240110_004", got.ID)
		got = n.NormalizeWithSequence(map[string]any{"id": "keep"}, 4)
		assert.Equal(t, "keep", got.ID)
	})
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newTestNormalizer()
	first := n.Normalize(map[string]any{
		"date":           "2024-01-10",
		"event_name":     map[string]any{"en": "Launch", "zh": "发布会"},
		"location":       "Hall 1",
		"transportation": "Bus 5",
		"category":       "Tech",
		"speakers":       []any{map[string]any{"name": "Jane"}, "junk"},
		"vips":           []any{map[string]any{"role": "Host"}},
	})

	data, err := json.Marshal(first)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	second := n.Normalize(raw)
	assert.Equal(t, first, second)
}

func TestNormalizeAny(t *testing.T) {
	n := newTestNormalizer()

	rec, err := n.NormalizeAny(map[string]any{"id": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", rec.ID)

	for _, v := range []any{nil, "x", []any{}, 1.0} {
		_, err := n.NormalizeAny(v)
		assert.Error(t, err)
	}
}

func TestNeedsID(t *testing.T) {
	assert.True(t, NeedsID(map[string]any{}))
	assert.True(t, NeedsID(map[string]any{"id": "N/A"}))
	assert.True(t, NeedsID(map[string]any{"id": ""}))
	assert.False(t, NeedsID(map[string]any{"id": "event_1"}))
	assert.False(t, NeedsID(map[string]any{"id": 3.0}))
}
