package cli

import (
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/config"
)

// ShowConfig prints the effective configuration and where each value comes from
func ShowConfig(a *AppContext) error {
	a.UI.Infof("Configuration file: %s (%s)", a.Config.FilePath(), a.Config.Format())

	effective := a.Config.Effective()
	keys := make([]string, 0, len(effective))
	for k := range effective {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := [][]string{{"Key", "Value", "Source"}}
	for _, k := range keys {
		source := "default"
		if a.Config.Exists(k) {
			source = "file"
		}
		rows = append(rows, []string{k, effective[k], source})
	}
	return a.UI.Table(rows)
}

// SetConfig validates and stores a known configuration value
func SetConfig(a *AppContext, key, value string) error {
	if err := config.ValidateValue(key, value); err != nil {
		return err
	}
	if err := a.Config.Set(key, value); err != nil {
		return errors.Errorf("failed to save %s: %w", key, err)
	}
	a.UI.Successf("%s set to %s", key, value)
	return nil
}

// GetConfig prints the effective value of a known key. Values that are not
// set in the file are reported as defaults.
func GetConfig(a *AppContext, key string) error {
	if !config.IsKnown(key) {
		return errors.Errorf("unknown config key: %s", key)
	}

	value, err := a.Config.Get(key)
	if err != nil {
		a.UI.Bold(config.Defaults[key])
		a.UI.Info("(default)")
		return nil
	}
	a.UI.Bold(value)
	return nil
}

// UnsetConfig removes a key from the configuration file so its default applies again
func UnsetConfig(a *AppContext, key string) error {
	if !config.IsKnown(key) {
		return errors.Errorf("unknown config key: %s", key)
	}
	if err := a.Config.Delete(key); err != nil {
		return errors.Errorf("failed to remove %s: %w", key, err)
	}
	a.UI.Successf("%s reset to default (%s)", key, config.Defaults[key])
	return nil
}
