package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeObj(t *testing.T, s string) map[string]any {
	t.Helper()
	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &obj))
	return obj
}

func TestClientSchemaAcceptsValid(t *testing.T) {
	assert.Empty(t, ClientSchema.Check(decodeObj(t, validBody)))
	assert.Empty(t, ModelSchema.Check(decodeObj(t, validBody)))
}

func TestSchemaProblems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		schema  Schema
		problem string
	}{
		{"bad pattern", func(o map[string]any) { o["pattern"] = "rumination" }, ClientSchema, "pattern invalid"},
		{"blank name", func(o map[string]any) { o["name"] = "  " }, ClientSchema, "name missing"},
		{"no evidence", func(o map[string]any) { o["evidence"] = []any{} }, ClientSchema, "evidence invalid"},
		{"four evidence", func(o map[string]any) { o["evidence"] = []any{"a", "b", "c", "d"} }, ClientSchema, "evidence invalid"},
		{"evidence number", func(o map[string]any) { o["evidence"] = []any{1.0} }, ClientSchema, "evidence invalid"},
		{"string timebox", func(o map[string]any) { o["one_action"].(map[string]any)["timebox_min"] = "15" }, ClientSchema, "one_action.timebox_min invalid"},
		{"no action", func(o map[string]any) { delete(o, "one_action") }, ClientSchema, "one_action missing"},
		{"no dod", func(o map[string]any) { o["one_action"].(map[string]any)["definition_of_done"] = "" }, ClientSchema, "one_action.definition_of_done missing"},
		{"confidence high", func(o map[string]any) { o["confidence"] = 1.5 }, ClientSchema, "confidence invalid"},
		{"confidence missing", func(o map[string]any) { delete(o, "confidence") }, ClientSchema, "confidence invalid"},
		{"six tags", func(o map[string]any) { o["tags"] = []any{"a", "b", "c", "d", "e", "f"} }, ClientSchema, "tags invalid"},
		{"no followup", func(o map[string]any) { delete(o, "followup_question") }, ClientSchema, "followup_question missing"},
		{"language number", func(o map[string]any) { o["language"] = 1.0 }, ClientSchema, "language invalid"},
		{"model language", func(o map[string]any) { o["language"] = "fr" }, ModelSchema, "language invalid"},
		{"model missing language", func(o map[string]any) { delete(o, "language") }, ModelSchema, "language invalid"},
		{"model timebox", func(o map[string]any) { o["one_action"].(map[string]any)["timebox_min"] = 12.0 }, ModelSchema, "one_action.timebox_min invalid"},
		{"model unknown key", func(o map[string]any) { o["mood"] = "sad" }, ModelSchema, "unknown key: mood"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := decodeObj(t, validBody)
			tt.mutate(obj)
			assert.Contains(t, tt.schema.Check(obj), tt.problem)
		})
	}
}

func TestClientSchemaIsLenient(t *testing.T) {
	obj := decodeObj(t, validBody)
	delete(obj, "language")
	delete(obj, "tags")
	obj["one_action"].(map[string]any)["timebox_min"] = 12.0
	obj["extra"] = true
	assert.Empty(t, ClientSchema.Check(obj))
}

func TestValidateTypedResult(t *testing.T) {
	r, err := ClientSchema.Decode([]byte(validBody))
	require.NoError(t, err)
	assert.Empty(t, ModelSchema.Validate(r))

	r.Language = ""
	assert.Contains(t, ModelSchema.Validate(r), "language invalid")
}

func TestPatternValid(t *testing.T) {
	for _, p := range Patterns {
		assert.True(t, p.Valid())
	}
	assert.False(t, Pattern("unknown").Valid())
}
