package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/edition-advisor/internal/viewport"
)

// validatePort accepts a TCP port number.
func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p <= 0 || p > 65535 {
		return errors.New("enter a port between 1 and 65535")
	}
	return nil
}

// validateNonEmpty rejects blank labels.
func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to edition-advisor! Let's configure the advisor.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Viewport profile.
	profilePrompt := promptui.Select{
		Label: "Select viewport profile",
		Items: []string{
			"explorer — zoom 0.3–3×, wide initial view",
			"compact  — zoom 0.5–2×, close initial view",
		},
	}
	profileIdx, _, err := profilePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("profile selection: %w", err)
	}
	cfg.ViewportProfile = []string{viewport.Explorer.Name, viewport.Compact.Name}[profileIdx]

	// 2. Whole-tree mode.
	modePrompt := promptui.Select{
		Label: "Initial view",
		Items: []string{"follow the current question", "show the whole tree"},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("view selection: %w", err)
	}
	cfg.FullTree = modeIdx == 1

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "Dashboard port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 4. Edge labels.
	yesPrompt := promptui.Prompt{Label: "Label for yes edges", Default: cfg.YesLabel, Validate: validateNonEmpty}
	if cfg.YesLabel, err = yesPrompt.Run(); err != nil {
		return nil, fmt.Errorf("yes label: %w", err)
	}
	noPrompt := promptui.Prompt{Label: "Label for no edges", Default: cfg.NoLabel, Validate: validateNonEmpty}
	if cfg.NoLabel, err = noPrompt.Run(); err != nil {
		return nil, fmt.Errorf("no label: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
