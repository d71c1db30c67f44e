package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/config"
	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/rgehrsitz/finiquito/internal/store/sqlite"
	"github.com/rgehrsitz/finiquito/internal/tui"
)

const defaultDBPath = "finiquito.db"

func main() {
	if len(os.Args) > 3 {
		fmt.Println("Usage: finiquito-tui [roster.db] [lft-rules.yaml]")
		os.Exit(1)
	}

	dbPath := defaultDBPath
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	engine := calculation.NewCalculationEngine()
	if len(os.Args) > 2 {
		rules, err := config.NewInputParser().LoadRules(os.Args[2])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		engine = calculation.NewCalculationEngineWithRules(*rules)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	r, err := roster.Open(ctx, engine, store)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(ctx, r),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
