package ui

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/common"
)

// Prompter answers interactive questions
type Prompter interface {
	Confirm(message string, defaultYes bool) (bool, error)
	Input(message, defaultValue string) (string, error)
	// Select returns the index of the chosen option
	Select(message string, options []string, defaultOption string) (int, error)
}

// SurveyPrompter asks questions on the terminal
type SurveyPrompter struct{}

// Confirm asks a yes/no question
func (SurveyPrompter) Confirm(message string, defaultYes bool) (bool, error) {
	var result bool
	p := &survey.Confirm{
		Message: message,
		Default: defaultYes,
	}

	err := survey.AskOne(p, &result)
	return result, err
}

// Input asks for a line of text
func (SurveyPrompter) Input(message, defaultValue string) (string, error) {
	var result string
	p := &survey.Input{
		Message: message,
		Default: defaultValue,
	}

	err := survey.AskOne(p, &result)
	return result, err
}

// Select asks the user to pick one of options
func (SurveyPrompter) Select(message string, options []string, defaultOption string) (int, error) {
	var selected int
	p := &survey.Select{
		Message: message,
		Options: options,
	}
	if defaultOption != "" {
		p.Default = defaultOption
	}

	// survey writes the chosen index when the target is an int
	if err := survey.AskOne(p, &selected); err != nil {
		return -1, err
	}
	return selected, nil
}

// IsInterrupt reports whether err comes from the user pressing Ctrl-C at a prompt
func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr)
}

// PromptYesNo prompts the user for a yes/no answer
func (u *UI) PromptYesNo(prompt string, defaultYes bool) (bool, error) {
	return u.prompter.Confirm(prompt, defaultYes)
}

// PromptInput prompts the user for text input
func (u *UI) PromptInput(prompt, defaultValue string) (string, error) {
	return u.prompter.Input(prompt, defaultValue)
}

// PromptInputRequired prompts until a non-blank value is entered
func (u *UI) PromptInputRequired(prompt string) (string, error) {
	for {
		result, err := u.prompter.Input(prompt, "")
		if err != nil {
			return "", err
		}
		if err := common.ValidateNotEmpty(result); err == nil {
			return result, nil
		}
		u.Error("A value is required")
	}
}

// PromptSelect prompts the user to select from a list
func (u *UI) PromptSelect(prompt string, options []string, defaultOption string) (int, error) {
	idx, err := u.prompter.Select(prompt, options, defaultOption)
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(options) {
		return -1, errors.Errorf("selected option %d out of range", idx)
	}
	return idx, nil
}

// Pause waits for the user to press Enter
func (u *UI) Pause() error {
	_, err := u.prompter.Input("Press Enter to continue...", "")
	return err
}
