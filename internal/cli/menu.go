package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/ui"
)

// ErrExit is returned when the user chooses to exit the menu
var ErrExit = errors.Base("exit")

// Menu provides an interactive menu interface
type Menu struct {
	app *AppContext
}

// NewMenu creates a new Menu instance
func NewMenu(app *AppContext) *Menu {
	return &Menu{app: app}
}

// clearScreen clears the terminal screen using ANSI escape codes
func (m *Menu) clearScreen() {
	if color.NoColor {
		return
	}
	fmt.Fprint(m.app.UI.Writer(), "\033[2J\033[H")
}

// Show displays the main menu and handles user input until the user exits.
// Ctrl-C at any prompt, or cancellation of ctx, is returned to the caller.
func (m *Menu) Show(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.clearScreen()
		m.displayMenu()

		choice, err := m.app.UI.PromptInput("Enter your choice", "")
		if err != nil {
			return err
		}

		choice = strings.ToUpper(strings.TrimSpace(choice))

		if err := m.handleChoice(ctx, choice); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			if ui.IsInterrupt(err) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return err
			}
			m.app.UI.Error(err.Error())
			m.app.UI.Print("")
			if err := m.app.UI.Pause(); err != nil {
				return err
			}
		}
	}
}

// displayMenu displays the main menu
func (m *Menu) displayMenu() {
	u := m.app.UI

	u.Header("filelab")
	u.Info("Read, modify and inspect text files safely.")
	u.Print("")

	u.Separator()
	u.Info("Options:")
	u.Separator()
	u.Print("")

	for _, opt := range []struct{ key, label string }{
		{"T", "Transform a file (read, modify, write)"},
		{"I", "Inspect a file (validate, check access, report)"},
		{"C", "Show configuration"},
		{"H", "Help"},
		{"X", "Exit"},
	} {
		u.Printf("  [%s] %s", opt.key, opt.label)
	}
	u.Print("")
}

// handleChoice processes the user's menu choice
func (m *Menu) handleChoice(ctx context.Context, choice string) error {
	switch choice {
	case "T":
		return m.runWorkflow("Transform", func() error { return m.app.Transformer().Run(ctx) })
	case "I":
		return m.runWorkflow("Inspect", func() error { return m.app.Inspector().Run(ctx) })
	case "C":
		return m.showConfig()
	case "H":
		return m.showHelp()
	case "X":
		return ErrExit
	default:
		return errors.Errorf("invalid choice: %s", choice)
	}
}

func (m *Menu) runWorkflow(name string, run func() error) error {
	m.clearScreen()
	if err := run(); err != nil {
		return errors.Errorf("%s: %w", strings.ToLower(name), err)
	}

	m.app.UI.Print("")
	return m.app.UI.Pause()
}

func (m *Menu) showConfig() error {
	m.clearScreen()
	m.app.UI.Header("Configuration")

	if err := ShowConfig(m.app); err != nil {
		return err
	}

	m.app.UI.Print("")
	return m.app.UI.Pause()
}

// showHelp displays help information
func (m *Menu) showHelp() error {
	m.clearScreen()
	m.app.UI.Header("Help")

	help := `
filelab - Help

TRANSFORM [T]:

  Reads a text file, applies one modification and writes the result to
  another file:
    - Convert to uppercase
    - Convert to lowercase
    - Capitalize each word
    - Reverse line order
  An existing destination is only overwritten after you confirm.

INSPECT [I]:

  Validates a filename (no < > : " / \ | ? *, must have an allowed
  extension), checks that it can be read and reports its size,
  modification time and line, word and character counts. Transient read
  errors are retried (RETRY_MAX_ATTEMPTS, RETRY_DELAY_MS).

CONFIGURATION:

  filelab config show             # Show effective settings
  filelab config get KEY          # Print one setting
  filelab config set KEY VALUE    # Change a setting
  filelab config unset KEY        # Restore a setting's default
  filelab config path             # Print the configuration file path

COMMAND-LINE MODE:

  filelab transform               # Run the transformer once
  filelab inspect                 # Run the inspector once
  filelab --debug ...             # Enable debug logging

Press Ctrl-C at any prompt to cancel.
`

	m.app.UI.Print(help)
	return m.app.UI.Pause()
}
