package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

const (
	ActionAnalyze       = "Analyze issue"
	ActionDeveloperInfo = "Developer info"
)

// Prompter defines interface for user interaction
type Prompter interface {
	RepoURL() (string, error)
	IssueNumber() (int, error)
	SelectAction() (string, error)
}

// DefaultPrompter reads answers from the terminal.
type DefaultPrompter struct {
	DefaultRepoURL string
}

func (p *DefaultPrompter) RepoURL() (string, error) {
	prompt := promptui.Prompt{
		Label:    "GitHub Repo URL",
		Default:  p.DefaultRepoURL,
		Validate: ValidateRepoURL,
	}
	out, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (p *DefaultPrompter) IssueNumber() (int, error) {
	prompt := promptui.Prompt{
		Label:    "Issue Number",
		Validate: ValidateIssueNumber,
	}
	out, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt failed: %w", err)
	}
	n, _ := strconv.Atoi(strings.TrimSpace(out))
	return n, nil
}

func (p *DefaultPrompter) SelectAction() (string, error) {
	prompt := promptui.Select{
		Label: "Action",
		Items: []string{ActionAnalyze, ActionDeveloperInfo},
	}
	_, action, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("action selection failed: %w", err)
	}
	return action, nil
}

// ValidateRepoURL accepts any http(s) URL; the service decides whether it names a GitHub repo.
func ValidateRepoURL(input string) error {
	s := strings.TrimSpace(input)
	if s == "" {
		return errors.New("repository URL is required")
	}
	if !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "http://") {
		return errors.New("repository URL must start with http:// or https://")
	}
	return nil
}

func ValidateIssueNumber(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return errors.New("issue number must be an integer")
	}
	if n <= 0 {
		return errors.New("issue number must be greater than 0")
	}
	return nil
}
