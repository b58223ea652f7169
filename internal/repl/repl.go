// Package repl implements the interactive menu loop of the assistant.
//
// The loop is a small state machine: the main menu dispatches on a
// single choice, numeric prompts collect one value, and free chat is a
// nested loop exited by sentinel words. No conversation history
// survives between turns or invocations.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kerjahub/mea-go/internal/service"
)

// Models selectable at startup. The identifier only drives prompt
// formatting; the engine process decides which weights are loaded.
var modelChoices = []struct {
	label string
	id    string
}{
	{"Phi-3 Mini (3.8B) - Recommended, fast & good quality", "microsoft/Phi-3-mini-4k-instruct"},
	{"TinyLlama (1.1B) - Fastest, lower quality", "TinyLlama/TinyLlama-1.1B-Chat-v1.0"},
	{"Mistral 7B (7B) - Better quality, needs more RAM", "mistralai/Mistral-7B-Instruct-v0.3"},
	{"Llama 3 8B (8B) - Best quality, needs GPU", "meta-llama/Meta-Llama-3-8B-Instruct"},
}

// chatSentinels exit free-chat mode back to the menu.
var chatSentinels = map[string]bool{
	"back": true,
	"menu": true,
	"exit": true,
}

// REPL runs the interactive menu against an assistant.
type REPL struct {
	assistant *service.Assistant
	in        *bufio.Scanner
	out       io.Writer
}

// New creates a REPL reading choices from in and printing to out.
func New(a *service.Assistant, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		assistant: a,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// PickModel shows the startup model menu and returns the chosen model
// identifier. Anything but 1-4 selects the default.
func PickModel(in io.Reader, out io.Writer) string {
	fmt.Fprintln(out, "\n📦 Available Models:")
	for i, m := range modelChoices {
		fmt.Fprintf(out, "  %d. %s\n", i+1, m.label)
	}
	fmt.Fprint(out, "\nSelect model (1-4, default=1): ")

	scanner := bufio.NewScanner(in)
	choice := ""
	if scanner.Scan() {
		choice = strings.TrimSpace(scanner.Text())
	}

	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(modelChoices) {
		return modelChoices[n-1].id
	}
	return modelChoices[0].id
}

// Run drives the menu until the user exits or input ends.
func (r *REPL) Run(ctx context.Context) error {
	for {
		r.printMenu()
		fmt.Fprint(r.out, "👉 Select option (1-7): ")

		choice, ok := r.readLine()
		if !ok {
			return nil // stdin closed
		}

		switch strings.TrimSpace(choice) {
		case "1":
			hours, err := r.readNumber("\n⏰ Enter hours worked per week: ")
			if err != nil {
				r.inputError(err)
				continue
			}
			r.ask(func() (string, error) { return r.assistant.AskWorkingHours(ctx, hours) })

		case "2":
			salary, err := r.readNumber("\n💰 Enter gross salary (RM): ")
			if err != nil {
				r.inputError(err)
				continue
			}
			r.ask(func() (string, error) { return r.assistant.AskSalary(ctx, salary) })

		case "3":
			fmt.Fprintln(r.out, "\n🏙️ Cities: Kuala Lumpur, Penang, Johor Bahru")
			fmt.Fprint(r.out, "Enter city: ")
			city, _ := r.readLine()
			if strings.TrimSpace(city) == "" {
				city = "Kuala Lumpur"
			}
			salary, err := r.readNumber("Enter your salary (RM): ")
			if err != nil {
				r.inputError(err)
				continue
			}
			r.ask(func() (string, error) { return r.assistant.AskExpenses(ctx, city, salary) })

		case "4":
			fmt.Fprintln(r.out, "\n"+r.assistant.EmploymentRights())

		case "5":
			fmt.Fprintln(r.out, "\n📝 Describe your issue with your boss/employer:")
			fmt.Fprint(r.out, "Issue: ")
			issue, _ := r.readLine()
			if strings.TrimSpace(issue) != "" {
				r.ask(func() (string, error) { return r.assistant.AskBossIssue(ctx, issue) })
			}

		case "6":
			r.freeChat(ctx)

		case "7":
			fmt.Fprintln(r.out, "\n👋 Thank you for using Malaysian Employment Assistant!")
			fmt.Fprintln(r.out, "Stay informed about your rights! 🇲🇾")
			return nil

		default:
			fmt.Fprintln(r.out, "\n❌ Invalid choice, please try again")
		}

		fmt.Fprint(r.out, "\nPress Enter to continue...")
		if _, ok := r.readLine(); !ok {
			return nil
		}
	}
}

// freeChat is the nested chat loop, exited by a sentinel word.
func (r *REPL) freeChat(ctx context.Context) {
	fmt.Fprintln(r.out, "\n💬 Free Chat Mode (type 'back' to return to menu)")
	for {
		fmt.Fprint(r.out, "\nYou: ")
		line, ok := r.readLine()
		if !ok {
			return
		}
		line = strings.TrimSpace(line)
		if chatSentinels[strings.ToLower(line)] {
			return
		}
		if line == "" {
			continue
		}
		if _, err := r.assistant.Chat(ctx, line); err != nil {
			fmt.Fprintf(r.out, "❌ %v\n", err)
		}
	}
}

func (r *REPL) printMenu() {
	fmt.Fprintln(r.out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(r.out, "🇲🇾 MALAYSIAN EMPLOYMENT ASSISTANT")
	fmt.Fprintln(r.out, strings.Repeat("=", 60))
	fmt.Fprintln(r.out, "\n📋 Main Menu:")
	fmt.Fprintln(r.out, "  1. Check working hours compliance")
	fmt.Fprintln(r.out, "  2. Calculate salary breakdown")
	fmt.Fprintln(r.out, "  3. Calculate living expenses budget")
	fmt.Fprintln(r.out, "  4. Get employment rights information")
	fmt.Fprintln(r.out, "  5. Ask about dealing with boss/employer")
	fmt.Fprintln(r.out, "  6. Free chat with assistant")
	fmt.Fprintln(r.out, "  7. Exit")
	fmt.Fprintln(r.out)
}

// ask runs a model-backed action. The assistant already echoes the
// transcript; only failures need printing here.
func (r *REPL) ask(fn func() (string, error)) {
	if _, err := fn(); err != nil {
		fmt.Fprintf(r.out, "❌ %v\n", err)
	}
}

func (r *REPL) inputError(err error) {
	fmt.Fprintf(r.out, "❌ %v\n", err)
	fmt.Fprint(r.out, "\nPress Enter to continue...")
	r.readLine()
}

// readLine returns the next input line, or ok=false at end of input.
func (r *REPL) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}

// readNumber prompts for and parses one non-negative number. A bad
// entry is reported to the caller instead of tearing down the loop.
func (r *REPL) readNumber(prompt string) (float64, error) {
	fmt.Fprint(r.out, prompt)
	line, ok := r.readLine()
	if !ok {
		return 0, errors.New("input closed")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("please enter a valid number (got %q)", strings.TrimSpace(line))
	}
	return f, nil
}
