package config

import (
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
)

// Validate checks the decoded configuration for values the pipeline cannot work with.
func Validate(cfg *Config) error {
	c := cfg.Content
	switch {
	case strings.TrimSpace(c.CoreFile) == "":
		return invalid("content.core_file", "must not be empty")
	case strings.ContainsAny(c.CoreFile, `/\`):
		return invalid("content.core_file", "must be a bare filename")
	case !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2:
		return invalid("content.extension", fmt.Sprintf("%q must start with a dot", c.Extension))
	case c.SettingsDir == c.ExpansionsDir:
		return invalid("content.expansions_dir", "must differ from content.settings_dir")
	}
	if _, err := orderNames.NormalizeWithError(string(c.Order)); err != nil {
		return invalid("content.order", err.Error())
	}
	if strings.ContainsAny(cfg.Site.IndexFile, `/\`) {
		return invalid("site.index_file", "must be a bare filename")
	}
	return nil
}

func invalid(field, msg string) error {
	return ferrors.ConfigError("invalid configuration: "+field+" "+msg).
		WithContext("field", field).Build()
}
