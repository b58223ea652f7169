package service

import (
	"fmt"
	"strings"
)

// SystemPrompt is the assistant persona sent with every model call.
// Hardcoded as a named constant — prompt iteration is high-frequency;
// a constant makes it easy to find and change.
const SystemPrompt = `You are an expert Malaysian employment law assistant.

You have deep knowledge of:
- Employment Act 1955 (Malaysia)
- Malaysian labor rights and employee protection
- EPF (Employees Provident Fund) and SOCSO contributions
- Malaysian workplace culture and professional communication
- Cost of living and financial planning in Malaysia

Key Malaysian Employment Law Facts:
- Maximum working hours: 8 hours/day, 48 hours/week
- Minimum wage: RM 1,500/month (as of 2024)
- Overtime rate: 1.5x for normal days, 2x for rest days, 3x for public holidays
- Annual leave: 8-16 days depending on service length
- Sick leave: 14 days outpatient, 60 days hospitalization
- Maternity leave: 98 days (14 weeks)
- EPF contribution: 11% employee, 13% employer

Provide accurate, helpful advice while being culturally sensitive to Malaysian workplace dynamics.
Always be professional, supportive, and cite relevant laws when applicable.`

// modelFamily binds identifier substrings to a chat-template renderer.
// The delimiter sequences must be reproduced byte-exactly: a model
// given the wrong control tokens degrades silently, it does not error.
type modelFamily struct {
	name     string
	patterns []string
	render   func(system, message string) string
	stops    []string
}

// families is matched in order, first match wins. Matching is a
// case-insensitive substring test against the raw model identifier.
var families = []modelFamily{
	{
		name:     "llama3",
		patterns: []string{"llama-3", "llama3"},
		render: func(system, message string) string {
			var sb strings.Builder
			sb.WriteString("<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n\n")
			if system != "" {
				sb.WriteString(system)
				sb.WriteString("<|eot_id|>")
			}
			fmt.Fprintf(&sb, "<|start_header_id|>user<|end_header_id|>\n\n%s<|eot_id|>", message)
			sb.WriteString("<|start_header_id|>assistant<|end_header_id|>\n\n")
			return sb.String()
		},
		stops: []string{"<|eot_id|>"},
	},
	{
		name:     "phi3",
		patterns: []string{"phi-3"},
		render: func(system, message string) string {
			var sb strings.Builder
			sb.WriteString("<|system|>\n")
			if system != "" {
				sb.WriteString(system)
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "<|end|>\n<|user|>\n%s<|end|>\n<|assistant|>\n", message)
			return sb.String()
		},
		stops: []string{"<|end|>"},
	},
	{
		name:     "mistral",
		patterns: []string{"mistral"},
		render: func(system, message string) string {
			if system != "" {
				return fmt.Sprintf("<s>[INST] %s\n\n%s [/INST]", system, message)
			}
			return fmt.Sprintf("<s>[INST] %s [/INST]", message)
		},
		stops: []string{"</s>"},
	},
	{
		name:     "gemma",
		patterns: []string{"gemma"},
		render: func(system, message string) string {
			var sb strings.Builder
			sb.WriteString("<start_of_turn>user\n")
			if system != "" {
				sb.WriteString(system)
				sb.WriteString("\n\n")
			}
			fmt.Fprintf(&sb, "%s<end_of_turn>\n<start_of_turn>model\n", message)
			return sb.String()
		},
		stops: []string{"<end_of_turn>"},
	},
}

// genericStops terminates the fallback template at the next speaker turn.
var genericStops = []string{"\nUser:"}

// matchFamily returns the first family whose pattern appears in the
// model identifier, or nil for the generic fallback.
func matchFamily(modelID string) *modelFamily {
	id := strings.ToLower(modelID)
	for i := range families {
		for _, p := range families[i].patterns {
			if strings.Contains(id, p) {
				return &families[i]
			}
		}
	}
	return nil
}

// BuildPrompt formats a system instruction and user message into the
// chat-template layout expected by the given model family. Unknown
// identifiers use a generic "System/User/Assistant" layout.
func BuildPrompt(modelID, system, message string) string {
	if f := matchFamily(modelID); f != nil {
		return f.render(system, message)
	}
	if system != "" {
		return fmt.Sprintf("System: %s\n\nUser: %s\n\nAssistant:", system, message)
	}
	return fmt.Sprintf("User: %s\n\nAssistant:", message)
}

// StopSequences returns the end-of-turn markers for the model family,
// passed to the engine so generation halts at the turn boundary.
func StopSequences(modelID string) []string {
	if f := matchFamily(modelID); f != nil {
		return f.stops
	}
	return genericStops
}
