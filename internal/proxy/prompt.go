package proxy

import (
	"fmt"
	"strings"

	"github.com/jasonroy7dct/site/internal/agent"
)

// SystemPrompt is the fixed instruction for the analysis model.
func SystemPrompt() string {
	return strings.Join([]string{
		"You are Rumination Breaker: a concise agent that helps a user stop unproductive mental loops.",
		"Goals:",
		"- Identify the loop pattern (choose from: comparison, future_projection, perfectionism, uncertainty_loop, identity_threat, other).",
		"- Name it in one line (no therapy talk, no fluff).",
		"- Produce exactly ONE doable action that fits in 10–20 minutes, with a crisp definition of done.",
		"- Provide a short reframe (max 2 sentences).",
		"- Ask exactly ONE follow-up question that forces narrowing.",
		"- Always include: language (zh-Hant or en) and confidence (0..1).",
		"Rules:",
		"- Do not moralize or lecture.",
		"- Do not propose multiple actions.",
		"- Output strict JSON only. No markdown, no extra text.",
	}, "\n")
}

// UserPrompt lays out the current text, the similar past entries and the
// expected schema.
func UserPrompt(text string, memories []agent.Memory, language string, strict bool) string {
	outLang := fmt.Sprintf("Output language must be %s.", language)
	if language == "auto" {
		outLang = "match the user input language (prefer Traditional Chinese if Chinese). Output language must be zh-Hant or en."
	}

	if len(memories) > agent.MaxMemories {
		memories = memories[:agent.MaxMemories]
	}
	lines := make([]string, 0, len(memories))
	for i, m := range memories {
		pattern := m.Pattern
		if pattern == "" {
			pattern = "unknown"
		}
		action := ""
		if m.OneAction != nil {
			action = m.OneAction.Task
		}
		lines = append(lines, fmt.Sprintf("#%d date=%s pattern=%s summary=%s action=%s", i+1, m.TS, pattern, m.Summary, action))
	}
	past := "(none)"
	if len(lines) > 0 {
		past = strings.Join(lines, "\n")
	}

	return strings.Join([]string{
		"OUTPUT_LANGUAGE_INSTRUCTION:",
		outLang,
		"",
		"STRICT_MODE:",
		fmt.Sprintf("%t", strict),
		"",
		"CURRENT_TEXT:",
		text,
		"",
		"SIMILAR_PAST_ENTRIES (max 3):",
		past,
		"",
		"Return JSON with this exact schema (keys required unless noted):",
		"{",
		`  "pattern": "comparison|future_projection|perfectionism|uncertainty_loop|identity_threat|other",`,
		`  "name": "one-line name",`,
		`  "language": "zh-Hant|en",`,
		`  "evidence": ["1-3 short quotes from CURRENT_TEXT"],`,
		`  "one_action": { "task": "...", "timebox_min": 15, "definition_of_done": "..." },`,
		`  "reframe": "max 2 sentences",`,
		`  "followup_question": "exactly one question",`,
		`  "tags": ["optional", "up to 5 strings"],`,
		`  "confidence": 0.0`,
		"}",
	}, "\n")
}
