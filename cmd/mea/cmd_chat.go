package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerjahub/mea-go/internal/config"
	"github.com/kerjahub/mea-go/internal/repl"
	"github.com/kerjahub/mea-go/internal/service"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat menu",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Println("\n🚀 Starting Malaysian Employment Assistant")
	fmt.Println(strings.Repeat("=", 60))

	modelID := modelFlag
	if modelID == "" {
		modelID = repl.PickModel(os.Stdin, os.Stdout)
	}

	engine := service.NewEngineClient(cfg.EngineURL, cfg.EngineTimeout())

	fmt.Printf("\n🔄 Connecting to engine at %s\n", cfg.EngineURL)
	if err := engine.Ping(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "\n❌ Engine check failed: %v\n", err)
		fmt.Fprintln(os.Stderr, "\n💡 Tip:")
		fmt.Fprintln(os.Stderr, "   - Make sure the llama.cpp server is running (llama-server -m model.gguf)")
		fmt.Fprintln(os.Stderr, "   - Large models take minutes to load on first start")
		fmt.Fprintln(os.Stderr, "   - Try a smaller or quantized model if you are short on RAM/VRAM")
		fmt.Fprintln(os.Stderr, "   - Set ENGINE_URL if the engine is not on http://127.0.0.1:8080")
		os.Exit(1)
	}
	fmt.Println("✅ Engine ready!")

	fmt.Println("\n🇲🇾 Initializing Malaysian Employment Assistant")
	fmt.Println(strings.Repeat("=", 60))

	assistant := service.NewAssistant(engine, modelID, os.Stdout)
	return repl.New(assistant, os.Stdin, os.Stdout).Run(context.Background())
}
