package appconfig

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ReservedAppName is the template's own package name and cannot be reused.
const ReservedAppName = "nawah_app"

var (
	appNameRegex  = regexp.MustCompile(`^[a-z][a-z0-9_]+$`)
	apiLevelRegex = regexp.MustCompile(`^[0-9]\.[0-9]{1,2}$`)
	envVarRegex   = regexp.MustCompile(`^\$__env\.[A-Za-z_]+$`)
	dataNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
	localeRegex   = regexp.MustCompile(`^[a-z]{2}_[A-Z]{2}$`)
	emailRegex    = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// ValidateAppName checks an app name against the name grammar.
func ValidateAppName(name string) error {
	if name == ReservedAppName {
		return fmt.Errorf("name can't be '%s'", ReservedAppName)
	}
	if !appNameRegex.MatchString(name) {
		return errors.New("name should have only small letters, numbers, and underscores, and start with a letter")
	}
	return nil
}

// ValidateAPILevel checks an API level such as "1.0" or "2.15".
func ValidateAPILevel(level string) error {
	if !apiLevelRegex.MatchString(level) {
		return fmt.Errorf("API level %q is invalid, expected MAJOR.MINOR such as 1.0", level)
	}
	return nil
}

// ValidateDataServer accepts any non-blank connection string.
func ValidateDataServer(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("data server connection string can't be blank")
	}
	return nil
}

// ValidateEnv accepts an environment name or an env variable reference.
func ValidateEnv(value string) error {
	if slices.Contains(EnvironmentNames(), value) || envVarRegex.MatchString(value) {
		return nil
	}
	return fmt.Errorf("'env' can only be one of %s, or a valid env variable such as $__env.ENV",
		strings.Join(EnvironmentNames(), ", "))
}

// ValidateDataName checks a database name.
func ValidateDataName(value string) error {
	if !dataNameRegex.MatchString(value) {
		return errors.New("'data_name' can't have special characters other than underscores and hyphens")
	}
	return nil
}

// ParseLocales splits a comma-separated list of language_COUNTRY tokens.
func ParseLocales(value string) ([]string, error) {
	parts := strings.Split(value, ",")
	locales := make([]string, 0, len(parts))
	for _, p := range parts {
		locale := strings.TrimSpace(p)
		if !localeRegex.MatchString(locale) {
			return nil, fmt.Errorf("locale %q is not in language_COUNTRY format, e.g. en_AE", locale)
		}
		locales = append(locales, locale)
	}
	return locales, nil
}

// JoinLocales renders locales the way the app template expects them
// inside a quoted list literal.
func JoinLocales(locales []string) string {
	return strings.Join(locales, "', '")
}

// ValidateLocale checks that locale is one of locales.
func ValidateLocale(locale string, locales []string) error {
	if !slices.Contains(locales, locale) {
		return fmt.Errorf("'locale' can only be one of the locales defined in 'locales': %s",
			strings.Join(locales, ", "))
	}
	return nil
}

// ValidateEmail checks the minimal user@host.tld shape.
func ValidateEmail(value string) error {
	if !emailRegex.MatchString(value) {
		return errors.New("value is not a valid email address")
	}
	return nil
}
