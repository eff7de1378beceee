package instrmap_test

import (
	"testing"

	"github.com/fwojciec/instrmap"
	"github.com/stretchr/testify/assert"
)

func TestSplitLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		key   string
		value string
		ok    bool
	}{
		{name: "two tokens", line: "MOVAPS movaps", key: "MOVAPS", value: "movaps", ok: true},
		{name: "remainder keeps inner spaces", line: "ADDPS __m128 _mm_add_ps (__m128 a, __m128 b)", key: "ADDPS", value: "__m128 _mm_add_ps (__m128 a, __m128 b)", ok: true},
		{name: "run of whitespace", line: "PAUSE \t\n void _mm_pause(void)", key: "PAUSE", value: "void _mm_pause(void)", ok: true},
		{name: "leading and trailing whitespace", line: "  CLFLUSH void _mm_clflush(void const*p)\n", key: "CLFLUSH", value: "void _mm_clflush(void const*p)", ok: true},
		{name: "single token", line: "MOVAPS", ok: false},
		{name: "single token with trailing space", line: "MOVAPS   ", ok: false},
		{name: "empty", line: "", ok: false},
		{name: "only whitespace", line: " \t ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key, value, ok := instrmap.SplitLine(tt.line)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestFilterLines(t *testing.T) {
	t.Parallel()

	t.Run("drops auto-generated stubs", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"MOVAPS movaps",
			"Auto-generated from high-level language. foo",
			"ADDPS addps",
			"VZEROALL Auto-generated from high-level language.",
		}

		assert.Equal(t, []string{"MOVAPS movaps", "ADDPS addps"}, instrmap.FilterLines(lines))
	})

	t.Run("keeps lines that only mention part of the marker", func(t *testing.T) {
		t.Parallel()

		lines := []string{"FOO Auto-generated from"}

		assert.Equal(t, lines, instrmap.FilterLines(lines))
	})

	t.Run("returns empty slice for nil input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, instrmap.FilterLines(nil))
	})
}

func TestBuildMap(t *testing.T) {
	t.Parallel()

	t.Run("groups values by first token in first-seen order", func(t *testing.T) {
		t.Parallel()

		m := instrmap.BuildMap([]string{"MOVAPS movaps", "MOVAPS _mm_move_ps", "ADDPS addps"})

		assert.Equal(t, 2, m.Len())
		assert.Equal(t, []string{"MOVAPS", "ADDPS"}, m.Keys())
		assert.Equal(t, []string{"movaps", "_mm_move_ps"}, m.Values("MOVAPS"))
		assert.Equal(t, []string{"addps"}, m.Values("ADDPS"))
	})

	t.Run("retains duplicate values", func(t *testing.T) {
		t.Parallel()

		m := instrmap.BuildMap([]string{"PAUSE void _mm_pause(void)", "PAUSE void _mm_pause(void)"})

		assert.Equal(t, []string{"void _mm_pause(void)", "void _mm_pause(void)"}, m.Values("PAUSE"))
	})

	t.Run("drops malformed lines", func(t *testing.T) {
		t.Parallel()

		m := instrmap.BuildMap([]string{"", "LONE", "   ", "ADDPS addps"})

		assert.Equal(t, []string{"ADDPS"}, m.Keys())
	})

	t.Run("empty input builds empty map", func(t *testing.T) {
		t.Parallel()

		m := instrmap.BuildMap(nil)

		assert.Equal(t, 0, m.Len())
		assert.Empty(t, m.Keys())
	})

	t.Run("filtered auto-generated line contributes nothing", func(t *testing.T) {
		t.Parallel()

		m := instrmap.BuildMap(instrmap.FilterLines([]string{"Auto-generated from high-level language. foo"}))

		assert.Equal(t, 0, m.Len())
		assert.Nil(t, m.Values("Auto-generated"))
	})
}

func TestInstructionMap(t *testing.T) {
	t.Parallel()

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()

		var m instrmap.InstructionMap
		m.Add("ADDPS", "addps")

		assert.Equal(t, []string{"ADDPS"}, m.Keys())
	})

	t.Run("returned slices do not alias internal state", func(t *testing.T) {
		t.Parallel()

		m := instrmap.NewInstructionMap()
		m.Add("ADDPS", "addps")

		keys := m.Keys()
		keys[0] = "CHANGED"
		vals := m.Values("ADDPS")
		vals[0] = "changed"

		assert.Equal(t, []string{"ADDPS"}, m.Keys())
		assert.Equal(t, []string{"addps"}, m.Values("ADDPS"))
	})

	t.Run("missing key returns nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, instrmap.NewInstructionMap().Values("NOPE"))
	})
}
