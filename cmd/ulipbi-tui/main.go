package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ulipbi/internal/config"
	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/rgehrsitz/ulipbi/internal/tui"
)

func main() {
	productFile := flag.String("product-config", "", "Path to product rules file (default: product.yaml if it exists)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: ulipbi-tui [--product-config product.yaml] <input-file>")
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	// Check if input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		fmt.Printf("Error: Input file not found: %s\n", inputPath)
		os.Exit(1)
	}

	rules := domain.DefaultProductRules()
	if *productFile == "" {
		if _, err := os.Stat("product.yaml"); err == nil {
			*productFile = "product.yaml"
		}
	}
	if *productFile != "" {
		loaded, err := config.NewInputParser().LoadProductRules(*productFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		rules = *loaded
	}

	p := tea.NewProgram(
		tui.NewModel(inputPath, rules),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
