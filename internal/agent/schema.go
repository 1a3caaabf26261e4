package agent

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Schema is a set of rules a structured result must satisfy.
type Schema struct {
	// RequireLanguage demands a language from Languages.
	RequireLanguage bool
	Languages       []string

	// Timeboxes, when set, restricts one_action.timebox_min.
	Timeboxes []float64

	// RejectUnknownKeys fails results carrying keys outside the schema.
	RejectUnknownKeys bool
}

// ClientSchema is what the journal accepts from the service.
var ClientSchema = Schema{}

// ModelSchema is what the service accepts from the model.
var ModelSchema = Schema{
	RequireLanguage:   true,
	Languages:         []string{"zh-Hant", "en"},
	Timeboxes:         []float64{5, 10, 15, 20, 30},
	RejectUnknownKeys: true,
}

var knownKeys = map[string]bool{
	"pattern": true, "name": true, "language": true, "evidence": true, "reframe": true,
	"one_action": true, "followup_question": true, "tags": true, "confidence": true, "meta": true,
}

// Check returns every problem found in obj, in a stable order.
func (s Schema) Check(obj map[string]any) []string {
	if obj == nil {
		return []string{"not object"}
	}
	var problems []string
	add := func(p string) { problems = append(problems, p) }

	if p, ok := obj["pattern"].(string); !ok || !Pattern(p).Valid() {
		add("pattern invalid")
	}
	if !nonEmpty(obj["name"]) {
		add("name missing")
	}

	if lang, present := obj["language"]; present || s.RequireLanguage {
		l, ok := lang.(string)
		if !ok || (len(s.Languages) > 0 && !contains(s.Languages, l)) {
			add("language invalid")
		}
	}

	if ev, ok := obj["evidence"].([]any); !ok || len(ev) < 1 || len(ev) > 3 || !allStrings(ev) {
		add("evidence invalid")
	}
	if !nonEmpty(obj["reframe"]) {
		add("reframe missing")
	}
	if !nonEmpty(obj["followup_question"]) {
		add("followup_question missing")
	}

	action, ok := obj["one_action"].(map[string]any)
	if !ok {
		add("one_action missing")
	} else {
		if !nonEmpty(action["task"]) {
			add("one_action.task missing")
		}
		tb, ok := number(action["timebox_min"])
		if !ok || (len(s.Timeboxes) > 0 && !containsFloat(s.Timeboxes, tb)) {
			add("one_action.timebox_min invalid")
		}
		if !nonEmpty(action["definition_of_done"]) {
			add("one_action.definition_of_done missing")
		}
	}

	if tags, present := obj["tags"]; present && tags != nil {
		list, ok := tags.([]any)
		if !ok || len(list) > 5 || !allStrings(list) {
			add("tags invalid")
		}
	}

	if c, ok := number(obj["confidence"]); !ok || c < 0 || c > 1 {
		add("confidence invalid")
	}

	if s.RejectUnknownKeys {
		var unknown []string
		for k := range obj {
			if !knownKeys[k] {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		for _, k := range unknown {
			add("unknown key: " + k)
		}
	}
	return problems
}

// Decode parses body, checks it and returns the typed result. A body that
// is not a JSON object, or that fails the schema, yields *ValidationError.
func (s Schema) Decode(body []byte) (*Result, error) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("not a JSON object: %v", err)}}
	}
	if problems := s.Check(obj); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	var r Result
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}
	return &r, nil
}

// Validate checks an already typed result, for results built in process.
func (s Schema) Validate(r *Result) []string {
	data, err := json.Marshal(r)
	if err != nil {
		return []string{err.Error()}
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return []string{err.Error()}
	}
	return s.Check(obj)
}

func nonEmpty(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func number(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func allStrings(list []any) bool {
	for _, v := range list {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsFloat(list []float64, v float64) bool {
	for _, f := range list {
		if f == v {
			return true
		}
	}
	return false
}
