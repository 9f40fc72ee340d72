package steps

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/common"
	"github.com/zoro11031/filelab/internal/config"
	"github.com/zoro11031/filelab/internal/fileio"
	"github.com/zoro11031/filelab/internal/system"
	"github.com/zoro11031/filelab/internal/transform"
	"github.com/zoro11031/filelab/internal/ui"
)

// Transformer reads a file, modifies its content and writes the result to a
// new file
type Transformer struct {
	fs     system.FileSystemManager
	config *config.Config
	ui     *ui.UI
}

// NewTransformer creates a new Transformer instance
func NewTransformer(fs system.FileSystemManager, cfg *config.Config, ui *ui.UI) *Transformer {
	return &Transformer{
		fs:     fs,
		config: cfg,
		ui:     ui,
	}
}

// Run executes one read, modify, write cycle. File errors are reported to the
// user; only prompt failures (including Ctrl-C) are returned.
func (t *Transformer) Run(ctx context.Context) error {
	t.ui.Header("File Read & Write")

	source, content, err := t.promptSource(ctx)
	if err != nil {
		return err
	}
	if source == "" {
		t.ui.Info("Operation cancelled.")
		return nil
	}

	mode, err := t.promptMode()
	if err != nil {
		return err
	}

	return t.writeResult(ctx, source, content, mode)
}

// promptSource asks for a file until one can be read. An empty path means the
// user gave up.
func (t *Transformer) promptSource(ctx context.Context) (string, string, error) {
	logger := zerolog.Ctx(ctx)

	for {
		raw, err := t.ui.PromptInputRequired("Enter the name of the file to read")
		if err != nil {
			return "", "", errors.Errorf("failed to prompt for source file: %w", err)
		}
		path := ParsePathInput(raw)

		content, err := fileio.ReadText(t.fs, path)
		if err == nil {
			logger.Debug().Str("path", path).Int("bytes", len(content)).Msg("source read")
			return path, content, nil
		}
		if !isFileError(err) {
			return "", "", err
		}

		logger.Debug().Err(err).Str("path", path).Msg("source read failed")
		t.ui.Error(common.Message(err))

		again, err := t.ui.PromptYesNo("Try another file?", true)
		if err != nil {
			return "", "", errors.Errorf("failed to prompt: %w", err)
		}
		if !again {
			return "", "", nil
		}
	}
}

func modeLabel(m transform.Mode) string {
	return fmt.Sprintf("%s (%s)", m.Description(), m)
}

func (t *Transformer) defaultMode() transform.Mode {
	raw := t.config.GetOrDefault(config.KeyDefaultMode, transform.ModeUpper.String())
	mode, err := transform.ParseMode(raw)
	if err != nil {
		t.ui.Warningf("Ignoring %s: %v", config.KeyDefaultMode, err)
		return transform.ModeUpper
	}
	return mode
}

func (t *Transformer) promptMode() (transform.Mode, error) {
	modes := transform.Modes()
	options := make([]string, len(modes))
	for i, m := range modes {
		options[i] = modeLabel(m)
	}

	idx, err := t.ui.PromptSelect("Choose a modification type", options, modeLabel(t.defaultMode()))
	if err != nil {
		return 0, errors.Errorf("failed to prompt for modification type: %w", err)
	}
	return modes[idx], nil
}

func (t *Transformer) confirmOverwrite(path string) (bool, error) {
	return t.ui.PromptYesNo(fmt.Sprintf("File '%s' already exists. Overwrite?", path), false)
}

func (t *Transformer) writeResult(ctx context.Context, source, content string, mode transform.Mode) error {
	logger := zerolog.Ctx(ctx)
	modified := transform.Apply(content, mode)

	for {
		raw, err := t.ui.PromptInputRequired("Enter the name of the file to write the modified content to")
		if err != nil {
			return errors.Errorf("failed to prompt for destination file: %w", err)
		}

		req := transform.Request{Source: source, Destination: ParsePathInput(raw), Mode: mode}
		if err := req.Validate(); err != nil {
			t.ui.Error(err.Error())
			continue
		}

		outcome, err := fileio.WriteWithGuard(t.fs, req.Destination, modified, t.confirmOverwrite)
		if err != nil {
			if !isFileError(err) {
				return err
			}
			logger.Debug().Err(err).Str("path", req.Destination).Msg("write failed")
			t.ui.Error(common.Message(err))

			again, err := t.ui.PromptYesNo("Try another destination?", true)
			if err != nil {
				return errors.Errorf("failed to prompt: %w", err)
			}
			if !again {
				t.ui.Info("Operation cancelled.")
				return nil
			}
			continue
		}

		if outcome == fileio.Aborted {
			t.ui.Info("Operation cancelled.")
			return nil
		}

		chars := utf8.RuneCountInString(content)
		logger.Info().
			Str("source", req.Source).
			Str("destination", req.Destination).
			Stringer("mode", req.Mode).
			Int("chars", chars).
			Msg("file transformed")

		t.ui.Successf("Successfully wrote modified content to '%s'.", req.Destination)
		t.ui.Infof("Modified %d characters using '%s' modification.", chars, req.Mode)
		return nil
	}
}

func isFileError(err error) bool {
	var fe *common.FileError
	return errors.As(err, &fe)
}
