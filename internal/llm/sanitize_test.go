package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	t.Run("removes json fences", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	})

	t.Run("removes bare fences", func(t *testing.T) {
		assert.Equal(t, `[1,2]`, StripFences("```\n[1,2]\n```"))
	})

	t.Run("leaves clean content untouched", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
	})
}

func TestExtractJSON(t *testing.T) {
	t.Run("strict object", func(t *testing.T) {
		var out map[string]int
		require.NoError(t, ExtractJSON(`{"a":1}`, &out))
		assert.Equal(t, 1, out["a"])
	})

	t.Run("fenced object", func(t *testing.T) {
		var out map[string]string
		require.NoError(t, ExtractJSON("```json\n{\"title\":\"Neon\"}\n```", &out))
		assert.Equal(t, "Neon", out["title"])
	})

	t.Run("array embedded in prose", func(t *testing.T) {
		var out []int
		require.NoError(t, ExtractJSON("Here you go:\n[1, 2, 3]\nEnjoy!", &out))
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("object embedded in prose", func(t *testing.T) {
		var out map[string]string
		require.NoError(t, ExtractJSON(`Sure! {"mood": "dark"} is what I'd use.`, &out))
		assert.Equal(t, "dark", out["mood"])
	})

	t.Run("brackets inside strings do not break balancing", func(t *testing.T) {
		var out map[string]string
		require.NoError(t, ExtractJSON(`result: {"note": "use [0.5] weight, escaped \" quote"} done`, &out))
		assert.Equal(t, `use [0.5] weight, escaped " quote`, out["note"])
	})

	t.Run("array fragment wins over object fragment", func(t *testing.T) {
		var out []string
		require.NoError(t, ExtractJSON(`intro ["a","b"] trailing {"c":"d"}`, &out))
		assert.Equal(t, []string{"a", "b"}, out)
	})

	t.Run("plain prose is unparsable", func(t *testing.T) {
		var out map[string]any
		assert.ErrorIs(t, ExtractJSON("I could not generate anything today.", &out), ErrUnparsable)
	})

	t.Run("empty content is unparsable", func(t *testing.T) {
		var out map[string]any
		assert.ErrorIs(t, ExtractJSON("   ", &out), ErrUnparsable)
	})

	t.Run("unclosed fragment is unparsable", func(t *testing.T) {
		var out map[string]any
		assert.ErrorIs(t, ExtractJSON(`{"a": 1`, &out), ErrUnparsable)
	})
}
