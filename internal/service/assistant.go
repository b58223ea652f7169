package service

import (
	"context"
	"fmt"
	"io"
)

// ChatMaxTokens is the generation budget for one assistant turn.
const ChatMaxTokens = 1024

// Assistant composes the deterministic report formatters with the
// generation engine. It holds no conversation state: every call is a
// single turn, and the engine itself is stateless per call.
type Assistant struct {
	gen        Generator
	modelID    string
	system     string
	transcript io.Writer
}

// NewAssistant creates an assistant that formats prompts for modelID
// and writes the visible You/Assistant transcript to w. Pass
// io.Discard to silence the transcript (the HTTP handlers do).
func NewAssistant(gen Generator, modelID string, w io.Writer) *Assistant {
	if w == nil {
		w = io.Discard
	}
	return &Assistant{
		gen:        gen,
		modelID:    modelID,
		system:     SystemPrompt,
		transcript: w,
	}
}

// ModelID returns the model identifier used for prompt formatting.
func (a *Assistant) ModelID() string {
	return a.modelID
}

// Chat sends one free-form message through the prompt builder and the
// engine, echoing the exchange to the transcript writer.
func (a *Assistant) Chat(ctx context.Context, message string) (string, error) {
	fmt.Fprintf(a.transcript, "\n💬 You: %s\n", message)
	fmt.Fprintln(a.transcript, "🤖 Thinking...")

	prompt := BuildPrompt(a.modelID, a.system, message)
	reply, err := a.gen.Generate(ctx, prompt, ChatMaxTokens, StopSequences(a.modelID))
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	fmt.Fprintf(a.transcript, "🤖 Assistant: %s\n\n", reply)
	return reply, nil
}

// AskWorkingHours runs the compliance check for a weekly hour count and
// asks the model for advice grounded in that report.
func (a *Assistant) AskWorkingHours(ctx context.Context, hours float64) (string, error) {
	report := CheckWorkingHours(hours)

	message := fmt.Sprintf(`%s

User is working %g hours per week in Malaysia.

Provide professional advice on:
1. Whether this complies with Malaysian Employment Act 1955
2. What actions they can take if it's excessive
3. How to professionally discuss this with their employer
4. Their legal rights regarding overtime pay`, report, hours)

	return a.Chat(ctx, message)
}

// AskSalary computes the statutory deduction breakdown and asks the
// model for salary analysis.
func (a *Assistant) AskSalary(ctx context.Context, gross float64) (string, error) {
	breakdown := SalaryBreakdown(gross)

	message := fmt.Sprintf(`%s

Provide analysis for this RM %g salary in Malaysia:
1. Is this above minimum wage?
2. Is this competitive in the Malaysian job market?
3. Financial planning advice
4. How to professionally negotiate for better pay`, breakdown, gross)

	return a.Chat(ctx, message)
}

// AskExpenses builds the living-expense budget for a city and asks the
// model for financial advice.
func (a *Assistant) AskExpenses(ctx context.Context, city string, salary float64) (string, error) {
	budget := ExpenseBudget(city, salary)

	message := fmt.Sprintf(`%s

Provide financial advice for living in %s with RM %g salary:
1. Is this salary sufficient?
2. Budgeting tips for Malaysian context
3. Ways to increase savings
4. Cost-saving strategies`, budget, city, salary)

	return a.Chat(ctx, message)
}

// AskBossIssue asks the model for guidance on a free-form workplace
// issue.
func (a *Assistant) AskBossIssue(ctx context.Context, issue string) (string, error) {
	message := fmt.Sprintf(`A Malaysian employee needs advice on this workplace issue:

%s

Provide professional guidance on:
1. Assessment under Malaysian Employment Act 1955
2. Professional and diplomatic approach to address it
3. Escalation steps if needed (HR, Department of Labour)
4. Legal rights and protections
5. Cultural considerations for Malaysian workplace

Be supportive, practical, and cite relevant laws.`, issue)

	return a.Chat(ctx, message)
}

// EmploymentRights returns the static rights summary. No model call.
func (a *Assistant) EmploymentRights() string {
	return EmploymentRights()
}
