package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/brain"
	"github.com/jasonroy7dct/site/internal/logging"
)

// Request bounds for the analysis endpoint.
const (
	maxPayloadBytes   = 60000
	maxLanguageRunes  = 20
	maxTSRunes        = 40
	maxSummaryRunes   = 500
	maxPatternRunes   = 40
	maxTaskRunes      = 200
	maxDoneRunes      = 240
	maxDetailRunes    = 2000
	maxSchemaProblems = 10
	defaultTimebox    = 15
)

type agentPayload struct {
	CurrentText string `json:"current_text"`
	Language    string `json:"language"`
	Strict      bool   `json:"strict"`
	TopMemories []struct {
		TS        string `json:"ts"`
		Summary   string `json:"summary"`
		Pattern   string `json:"pattern"`
		OneAction *struct {
			Task             string  `json:"task"`
			TimeboxMin       float64 `json:"timebox_min"`
			DefinitionOfDone string  `json:"definition_of_done"`
		} `json:"one_action"`
	} `json:"top_memories"`
}

func clampRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// bound clamps a payload into an analysis request.
func (p agentPayload) bound() agent.Request {
	req := agent.Request{
		Text:     clampRunes(p.CurrentText, agent.MaxTextRunes),
		Language: clampRunes(p.Language, maxLanguageRunes),
		Strict:   p.Strict,
		Memories: []agent.Memory{},
	}
	if req.Language == "" {
		req.Language = "auto"
	}
	for i, m := range p.TopMemories {
		if i == agent.MaxMemories {
			break
		}
		mem := agent.Memory{
			TS:      clampRunes(m.TS, maxTSRunes),
			Summary: clampRunes(m.Summary, maxSummaryRunes),
			Pattern: clampRunes(m.Pattern, maxPatternRunes),
		}
		if m.OneAction != nil {
			tb := m.OneAction.TimeboxMin
			if tb == 0 {
				tb = defaultTimebox
			}
			mem.OneAction = &agent.Action{
				Task:             clampRunes(m.OneAction.Task, maxTaskRunes),
				TimeboxMin:       tb,
				DefinitionOfDone: clampRunes(m.OneAction.DefinitionOfDone, maxDoneRunes),
			}
		}
		req.Memories = append(req.Memories, mem)
	}
	return req
}

func handleAgentPreflight(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusNoContent)
}

// agentReply writes an analysis response with the shared headers.
type agentReply struct {
	w       http.ResponseWriter
	headers map[string]string
}

func (a *agentReply) set(k, v string) { a.headers[k] = v }

func (a *agentReply) json(status int, payload any) {
	h := a.w.Header()
	h.Set("Cache-Control", "no-store")
	for k, v := range a.headers {
		h.Set(k, v)
	}
	respondJSON(a.w, status, payload)
}

func (a *agentReply) mock(req agent.Request, reason string) {
	logging.Info("agent serving mock", "reason", reason)
	a.set("X-RB-Mode", "mock")
	a.json(http.StatusOK, MockResult(req.Text, req.Language, reason))
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	reply := &agentReply{w: w, headers: map[string]string{}}

	ok, remaining := s.limiter.Allow(clientIP(r))
	if !ok {
		reply.json(http.StatusTooManyRequests, map[string]any{"error": "Rate limit exceeded. Try again later.", "remaining": 0})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 4*maxPayloadBytes))
	if err != nil {
		reply.json(http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	var payload agentPayload
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			reply.json(http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
			return
		}
	}
	if len(body) > maxPayloadBytes {
		reply.json(http.StatusRequestEntityTooLarge, map[string]string{"error": "Payload too large"})
		return
	}

	req := payload.bound()
	if strings.TrimSpace(req.Text) == "" {
		reply.json(http.StatusBadRequest, map[string]string{"error": "current_text is required"})
		return
	}

	reply.set("X-RateLimit-Remaining", strconv.Itoa(remaining))

	if !s.provider.Available() {
		if !s.cfg.AllowMock {
			reply.json(http.StatusInternalServerError, map[string]string{
				"error": "Missing API key: set LLM_API_KEY (or GROQ_API_KEY). RB_ALLOW_MOCK=false so no fallback.",
			})
			return
		}
		reply.mock(req, ReasonMissingKey)
		return
	}

	reply.set("X-RB-Mode", "live")
	reply.set("X-LLM-BaseURL", s.cfg.LLMBaseURL)
	reply.set("X-LLM-Model", s.cfg.LLMModel)

	temperature := 0.2
	if req.Strict {
		temperature = 0.0
	}
	resp, err := s.provider.Generate(r.Context(), brain.Request{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   UserPrompt(req.Text, req.Memories, req.Language, req.Strict),
		Temperature:  temperature,
		JSONMode:     true,
	})
	if err != nil {
		var apiErr *brain.APIError
		switch {
		case errors.As(err, &apiErr) && s.cfg.AllowMock && apiErr.IsAuthFailure():
			reply.mock(req, ReasonInvalidKey)
		case errors.As(err, &apiErr) && s.cfg.AllowMock:
			reply.mock(req, ReasonLLMFailure)
		case errors.As(err, &apiErr):
			reply.json(http.StatusInternalServerError, map[string]any{
				"error":  "LLM request failed",
				"status": apiErr.Status,
				"detail": clampRunes(apiErr.Body, maxDetailRunes),
			})
		case s.cfg.AllowMock:
			reply.mock(req, ReasonNetworkTimeout)
		default:
			logging.Error("agent upstream failed", "error", err)
			reply.json(http.StatusInternalServerError, map[string]string{"error": "Server error", "detail": err.Error()})
		}
		return
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		if !s.cfg.AllowMock {
			reply.json(http.StatusInternalServerError, map[string]string{"error": "Empty LLM response"})
			return
		}
		reply.mock(req, ReasonEmptyResponse)
		return
	}

	obj, ok := extractJSON(content)
	if !ok {
		if !s.cfg.AllowMock {
			reply.json(http.StatusInternalServerError, map[string]string{
				"error": "Model did not return valid JSON",
				"raw":   clampRunes(content, maxDetailRunes),
			})
			return
		}
		reply.mock(req, ReasonInvalidJSON)
		return
	}

	if problems := agent.ModelSchema.Check(obj); len(problems) > 0 {
		logging.Warn("model returned invalid schema", "problems", problems)
		if !s.cfg.AllowMock {
			if len(problems) > maxSchemaProblems {
				problems = problems[:maxSchemaProblems]
			}
			reply.json(http.StatusInternalServerError, map[string]any{
				"error":  "Model returned invalid schema",
				"detail": problems,
				"raw":    obj,
			})
			return
		}
		reply.mock(req, ReasonInvalidSchema)
		return
	}

	obj["meta"] = agent.Meta{
		Mode:      "live",
		Provider:  brain.ProviderName(s.cfg.LLMBaseURL),
		BaseURL:   s.cfg.LLMBaseURL,
		Model:     s.cfg.LLMModel,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	reply.json(http.StatusOK, obj)
}

// extractJSON parses content as a JSON object. Models sometimes wrap the
// object in prose or a code fence, so the outermost braces are tried too.
func extractJSON(content string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil && obj != nil {
		return obj, true
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
