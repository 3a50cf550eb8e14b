package main

import (
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ringel-ai/admitchat/config"
	"github.com/ringel-ai/admitchat/internal/diag"
	"github.com/ringel-ai/admitchat/internal/kb"
	"github.com/ringel-ai/admitchat/internal/provider"
	"github.com/ringel-ai/admitchat/internal/runner"
	"github.com/ringel-ai/admitchat/session"
	"github.com/ringel-ai/admitchat/store"
	"github.com/ringel-ai/admitchat/tools"
	"github.com/ringel-ai/admitchat/tui"
)

func main() {
	// Basic env check (SDK also reads API key)
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Println("Missing ANTHROPIC_API_KEY; export it before running.")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	diag.Init(cfg.LogPath)

	lib, err := kb.Open(cfg.KnowledgeRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: knowledge base %q: %v\n", cfg.KnowledgeRoot, err)
		os.Exit(1)
	}

	model := provider.DefaultModel
	if cfg.Model != "" {
		model = anthropic.Model(cfg.Model)
	}

	client := provider.NewAnthropicClient()
	r := runner.New(client, model, config.SystemPrompt(time.Now()), tools.Registry(lib), cfg.TokenBudget)
	ctrl := session.New(store.New(cfg.StoragePath), r, config.WelcomeMessage)

	p := tea.NewProgram(tui.New(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
