package proxy

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jasonroy7dct/site/internal/agent"
)

// Fallback reasons recorded in meta.fallback_reason.
const (
	ReasonMissingKey     = "missing_api_key"
	ReasonInvalidKey     = "invalid_api_key"
	ReasonLLMFailure     = "llm_failure"
	ReasonEmptyResponse  = "empty_llm_response"
	ReasonInvalidJSON    = "invalid_json"
	ReasonInvalidSchema  = "invalid_schema"
	ReasonNetworkTimeout = "network_or_timeout"
)

const mockConfidence = 0.55

var (
	reSentence = regexp.MustCompile(`[\n\r]+|[。！？!?]+`)

	patternRules = []struct {
		pattern agent.Pattern
		re      *regexp.Regexp
	}{
		{agent.Comparison, regexp.MustCompile(`compare|comparison|比別人|比較|輸給|落後|不如`)},
		{agent.FutureProjection, regexp.MustCompile(`future|tomorrow|next|will|會不會|將來|未來|以後|如果.*怎麼辦`)},
		{agent.Perfectionism, regexp.MustCompile(`perfect|perfection|一定要|做到最好|不能錯|超標準|完美`)},
		{agent.UncertaintyLoop, regexp.MustCompile(`uncertain|uncertainty|不知道|不確定|一直想|反覆想|卡住|怎麼選`)},
		{agent.IdentityThreat, regexp.MustCompile(`identity|worth|我是不是|我很爛|沒用|價值|失敗者|不夠好`)},
	}
)

type phrase struct{ zh, en string }

func (p phrase) in(lang string) string {
	if lang == "zh-Hant" {
		return p.zh
	}
	return p.en
}

var mockNames = map[agent.Pattern]phrase{
	agent.Comparison:       {"比較迴圈：把自己丟進別人的尺", "Comparison loop: measuring yourself by others"},
	agent.FutureProjection: {"未來投射：把不確定當成定案", "Future projection: treating uncertainty as certainty"},
	agent.Perfectionism:    {"完美主義：把『夠好』推到無限遠", "Perfectionism: pushing ‘good enough’ infinitely far"},
	agent.UncertaintyLoop:  {"不確定迴圈：想太多取代了決策", "Uncertainty loop: overthinking replaces deciding"},
	agent.IdentityThreat:   {"自我價值威脅：把結果等同於你這個人", "Identity threat: equating outcomes with your worth"},
	agent.Other:            {"雜訊迴圈：腦內訊號沒有被收斂", "Noise loop: signals aren’t being narrowed"},
}

var mockTasks = map[agent.Pattern]phrase{
	agent.Comparison:       {"寫下『我能控制的 3 件事』並選 1 件立刻做 10–15 分鐘", "List 3 controllables and do 1 for 10–15 minutes"},
	agent.FutureProjection: {"把擔心拆成『最壞情境 / 最可能情境 / 下一步』各寫 1 句", "Write 1 line each: worst case / most likely / next step"},
	agent.Perfectionism:    {"把目標改成『60% 版本』：寫下最小可交付並做 15 分鐘", "Define a 60% version and work on it for 15 minutes"},
	agent.UncertaintyLoop:  {"列出 2 個選項，各寫『做/不做的代價』各 1 句，然後做暫定選擇", "Two options: write 1 line cost of do/not-do each, then pick a provisional choice"},
	agent.IdentityThreat:   {"把『我＝結果』改寫成『我在練什麼技能』寫 3 句", "Rewrite ‘I = outcome’ into 3 lines about the skill you’re practicing"},
	agent.Other:            {"腦內想法倒到紙上 3 分鐘，再圈出唯一要處理的 1 個問題", "Brain dump for 3 minutes, then circle ONE problem to handle"},
}

var mockDone = map[agent.Pattern]phrase{
	agent.Comparison:       {"列出 3 件可控事項，並完成其中 1 件的小步驟", "3 controllables written; one small step completed"},
	agent.FutureProjection: {"三行完成，且下一步是今天能做的", "3 lines written; next step is doable today"},
	agent.Perfectionism:    {"產出最小可交付（草稿/列表/骨架）", "A minimal deliverable exists (draft/list/skeleton)"},
	agent.UncertaintyLoop:  {"寫完 4 句並圈選 1 個暫定選擇", "4 lines written; one provisional choice selected"},
	agent.IdentityThreat:   {"三句完成且聚焦技能/行為", "3 lines written; each is skill/behavior-focused"},
	agent.Other:            {"完成 dump 文字並圈出 1 句問題", "A dump exists and one problem sentence is circled"},
}

var (
	mockReframe = phrase{
		"你不需要一次解完所有不確定，你只要把下一步縮到可執行。先完成一個小步驟，噪音會下降。",
		"You don’t need to solve all uncertainty at once; you only need an executable next step. Finish one small step and the noise drops.",
	}
	mockFollowup = phrase{
		"如果你只能讓『今天』變好 5%，你要先改變哪一件最小的事？",
		"If you could make today 5% better, what smallest thing would you change first?",
	}
)

// detectLang keeps an explicit zh-Hant or en preference, otherwise picks
// zh-Hant when the text has any CJK character.
func detectLang(text, preferred string) string {
	if preferred == "zh-Hant" || preferred == "en" {
		return preferred
	}
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return "zh-Hant"
		}
	}
	return "en"
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// pickEvidence returns up to n sentences of text, each at most 90
// characters.
func pickEvidence(text string, n int) []string {
	s := strings.TrimSpace(text)
	if s == "" {
		return []string{"(empty)"}
	}
	var out []string
	for _, part := range reSentence.Split(s, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, clip(part, 90))
		if len(out) >= n {
			break
		}
	}
	if len(out) == 0 {
		out = append(out, clip(s, 90))
	}
	return out
}

// classifyPattern is the keyword classifier used when no model is
// available. Rules are tried in order.
func classifyPattern(text string) agent.Pattern {
	s := strings.ToLower(text)
	for _, rule := range patternRules {
		if rule.re.MatchString(s) {
			return rule.pattern
		}
	}
	return agent.Other
}

// MockResult builds a deterministic analysis of text without a model.
func MockResult(text, language, reason string) *agent.Result {
	lang := detectLang(text, language)
	pattern := classifyPattern(text)
	if reason == "" {
		reason = "mock_enabled"
	}

	r := &agent.Result{
		Pattern:  pattern,
		Name:     mockNames[pattern].in(lang),
		Language: lang,
		Evidence: pickEvidence(text, 2),
		OneAction: agent.Action{
			Task:             mockTasks[pattern].in(lang),
			TimeboxMin:       15,
			DefinitionOfDone: mockDone[pattern].in(lang),
		},
		Reframe:          mockReframe.in(lang),
		FollowupQuestion: mockFollowup.in(lang),
		Tags:             []string{"mock", string(pattern)},
		Confidence:       mockConfidence,
		Meta:             &agent.Meta{Mode: "mock", FallbackReason: reason},
	}
	if problems := agent.ModelSchema.Validate(r); len(problems) > 0 {
		return fallbackResult(text, lang, reason, problems)
	}
	return r
}

func fallbackResult(text, lang, reason string, problems []string) *agent.Result {
	if len(problems) > 5 {
		problems = problems[:5]
	}
	return &agent.Result{
		Pattern:  agent.Other,
		Name:     phrase{"雜訊迴圈：先收斂一個問題", "Noise loop: narrow to one problem"}.in(lang),
		Language: lang,
		Evidence: pickEvidence(text, 1),
		OneAction: agent.Action{
			Task:             phrase{"寫下你現在最想解的一個問題句，然後列 1 個下一步", "Write the one problem sentence and one next step"}.in(lang),
			TimeboxMin:       15,
			DefinitionOfDone: phrase{"你有 1 句問題 + 1 個下一步", "You have 1 problem sentence + 1 next step"}.in(lang),
		},
		Reframe:          phrase{"先把問題縮小到可做，其他先放下。", "Shrink to a doable step; park the rest."}.in(lang),
		FollowupQuestion: phrase{"你要先解哪一個最小問題？", "Which smallest problem will you solve first?"}.in(lang),
		Tags:             []string{"mock"},
		Confidence:       0.4,
		Meta:             &agent.Meta{Mode: "mock_fallback", FallbackReason: reason, Errors: problems},
	}
}
