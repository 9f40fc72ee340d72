package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/common"
	"github.com/zoro11031/filelab/internal/config"
	"github.com/zoro11031/filelab/internal/fileio"
	"github.com/zoro11031/filelab/internal/system"
	"github.com/zoro11031/filelab/internal/ui"
)

// modTimeLayout is how modification times are shown in reports
const modTimeLayout = "2006-01-02 15:04:05"

// Inspector validates a filename, checks that the file can be read and reports
// its metadata and content statistics
type Inspector struct {
	fs     system.FileSystemManager
	config *config.Config
	ui     *ui.UI
}

// NewInspector creates a new Inspector instance
func NewInspector(fs system.FileSystemManager, cfg *config.Config, ui *ui.UI) *Inspector {
	return &Inspector{
		fs:     fs,
		config: cfg,
		ui:     ui,
	}
}

// RetryPolicyFromConfig builds the read retry policy from RETRY_MAX_ATTEMPTS and
// RETRY_DELAY_MS
func RetryPolicyFromConfig(cfg *config.Config) (fileio.RetryPolicy, error) {
	policy := fileio.DefaultRetryPolicy()

	attempts, err := cfg.GetInt(config.KeyRetryMaxAttempts)
	if err != nil {
		return policy, err
	}
	delayMS, err := cfg.GetInt(config.KeyRetryDelayMS)
	if err != nil {
		return policy, err
	}

	policy.MaxAttempts = attempts
	policy.Delay = time.Duration(delayMS) * time.Millisecond
	if err := policy.Validate(); err != nil {
		return fileio.DefaultRetryPolicy(), err
	}
	return policy, nil
}

// Run executes one inspection. File errors are reported to the user; only
// prompt failures (including Ctrl-C) are returned.
func (i *Inspector) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	i.ui.Header("File Inspector")

	path, err := i.promptFile(ctx)
	if err != nil {
		return err
	}
	if path == "" {
		i.ui.Info("Exiting inspector.")
		return nil
	}

	policy, err := RetryPolicyFromConfig(i.config)
	if err != nil {
		i.ui.Warningf("Invalid retry settings, using defaults: %v", err)
	}
	maxAttempts := policy.MaxAttempts
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		i.ui.Warningf("Error reading file (attempt %d/%d): %v", attempt, maxAttempts, err)
		i.ui.Infof("Retrying in %s...", wait)
	}

	report, content, err := fileio.Inspect(ctx, i.fs, path, policy)
	if err != nil {
		if !isFileError(err) {
			return err
		}
		logger.Debug().Err(err).Str("path", path).Msg("inspection failed")
		i.ui.Errorf("File reading error: %s", common.Message(err))
		return nil
	}

	if err := i.showReport(report); err != nil {
		return err
	}

	show, err := i.ui.PromptYesNo("Would you like to see the file content?", false)
	if err != nil {
		return errors.Errorf("failed to prompt: %w", err)
	}
	if show {
		i.showContent(content)
	}
	return nil
}

// promptFile asks for a filename until it is valid and readable. An empty
// result means the user declined to try another file.
func (i *Inspector) promptFile(ctx context.Context) (string, error) {
	logger := zerolog.Ctx(ctx)
	patterns := i.config.GetList(config.KeyAllowedPatterns)

	for {
		raw, err := i.ui.PromptInput("Enter the name of a file to read", "")
		if err != nil {
			return "", errors.Errorf("failed to prompt for file name: %w", err)
		}
		name := ParsePathInput(raw)

		if err := common.ValidateFilename(name, patterns); err != nil {
			if !isFileError(err) {
				return "", err
			}
			i.ui.Error(common.Message(err))
			continue
		}

		err = fileio.CheckAccess(i.fs, name, system.AccessRead)
		if err == nil {
			return name, nil
		}
		if !isFileError(err) {
			return "", err
		}

		logger.Debug().Err(err).Str("path", name).Msg("access check failed")
		i.ui.Error(common.Message(err))

		again, err := i.ui.PromptYesNo("Try another file?", true)
		if err != nil {
			return "", errors.Errorf("failed to prompt: %w", err)
		}
		if !again {
			return "", nil
		}
	}
}

func (i *Inspector) showReport(r *fileio.FileReport) error {
	i.ui.Step("File Information")

	rows := [][]string{
		{"Property", "Value"},
		{"Filename", r.Name},
		{"Size", fmt.Sprintf("%s (%d bytes)", r.HumanSize(), r.SizeBytes)},
		{"Last modified", r.ModifiedAt.Local().Format(modTimeLayout)},
		{"Full path", r.AbsPath},
		{"Content type", r.MimeType},
		{"Lines", strconv.Itoa(r.LineCount)},
		{"Words", strconv.Itoa(r.WordCount)},
		{"Characters", strconv.Itoa(r.CharCount)},
		{"Read attempts", strconv.Itoa(r.Attempts)},
	}
	if err := i.ui.Table(rows); err != nil {
		return errors.Errorf("failed to render report: %w", err)
	}

	i.ui.Printf("Read time: %.4f seconds", r.ReadDuration.Seconds())
	return nil
}

func (i *Inspector) showContent(content string) {
	limit, err := i.config.GetInt(config.KeyPreviewLimit)
	if err != nil {
		i.ui.Warningf("Invalid %s, showing the full content: %v", config.KeyPreviewLimit, err)
		limit = 0
	}

	preview, truncated := fileio.Preview(content, limit)

	i.ui.Print("--- File Content Start ---")
	if truncated {
		i.ui.Print(preview + "...")
		i.ui.Print("[Content truncated]")
	} else {
		i.ui.Print(preview)
	}
	i.ui.Print("--- File Content End ---")
}
