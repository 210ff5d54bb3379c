package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// Struct tags cover the declarative part; rules that cannot be expressed
// in tags (locale syntax, badger path requirements) follow.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return validateCustomRules(cfg)
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	for i, locale := range cfg.Locales {
		if locale == "" || strings.ContainsAny(locale, "/ \t") {
			return fmt.Errorf("locales[%d]: invalid locale identifier %q", i, locale)
		}
	}

	if cfg.Cache.Type == "badger" {
		path, _ := cfg.Cache.Badger["path"].(string)
		inMemory, _ := cfg.Cache.Badger["in_memory"].(bool)
		if path == "" && !inMemory {
			return fmt.Errorf("cache.badger: a database path is required")
		}
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
