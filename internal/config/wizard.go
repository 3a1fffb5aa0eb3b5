package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to forcetree! Let's configure your diagram.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Dataset.
	dataPrompt := promptui.Prompt{
		Label:    "Path to the tree JSON document",
		Default:  cfg.DataPath,
		Validate: nonEmpty,
	}
	dataPath, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data path: %w", err)
	}
	cfg.DataPath = dataPath
	if _, err := os.Stat(dataPath); err != nil {
		fmt.Printf("Note: %s does not exist yet; a starter tree will be written there.\n\n", dataPath)
	}

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Color mode.
	modePrompt := promptui.Select{
		Label: "Color nodes by",
		Items: []string{
			"aggregate - mean of leaf values under each node",
			"state     - collapsed / expanded / leaf",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("color mode: %w", err)
	}
	cfg.Color.Mode = []string{"aggregate", "state"}[modeIdx]

	// 4. Initial collapse.
	collapsePrompt := promptui.Select{
		Label: "Collapse branch roots when the diagram loads?",
		Items: []string{"no", "yes"},
	}
	collapseIdx, _, err := collapsePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("close all on load: %w", err)
	}
	cfg.View.CloseAllOnLoad = collapseIdx == 1

	// 5. Journal.
	journalPrompt := promptui.Prompt{
		Label:   "Interaction journal database (blank keeps it in memory)",
		Default: cfg.JournalPath,
	}
	journalPath, err := journalPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("journal path: %w", err)
	}
	cfg.JournalPath = strings.TrimSpace(journalPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}
