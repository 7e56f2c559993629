package appconfig

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

// Default values used by the defaulted configuration mode and as prompt defaults.
const (
	DefaultEnv        = "$__env.ENV"
	DefaultDataName   = "nawah_data"
	DefaultAdminEmail = "admin@app.nawah.localhost"

	AdminPasswordLength   = 18
	AnonTokenSuffixLength = 24
)

// DefaultLocales are the locales apps are created with.
var DefaultLocales = []string{"ar_AE", "en_AE"}

const (
	letters     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits      = "0123456789"
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// passwordReplacer strips characters that would terminate the quoted
// string literal the password is substituted into.
var passwordReplacer = strings.NewReplacer("'", "^", "\\", "/")

// Defaults returns a snapshot with every field set to its default. The admin
// password and anonymous token suffix are drawn from r; nil means crypto/rand.
func Defaults(r io.Reader) (Snapshot, error) {
	s, err := randomFields(r)
	if err != nil {
		return Snapshot{}, err
	}

	for _, env := range Environments {
		*s.dataServerField(env.Name) = Field{Token: DataServerToken(env.Name), Value: env.DefaultDataServer}
	}
	s.Env = Field{Token: TokenEnv, Value: DefaultEnv}
	s.DataName = Field{Token: TokenDataName, Value: DefaultDataName}
	s.Locales = Field{Token: TokenLocales, Value: JoinLocales(DefaultLocales)}
	s.Locale = Field{Token: TokenLocale, Value: DefaultLocales[0]}
	s.AdminEmail = Field{Token: TokenAdminEmail, Value: DefaultAdminEmail}

	return s, nil
}

// randomFields returns a snapshot with only the generated secrets set.
func randomFields(r io.Reader) (Snapshot, error) {
	if r == nil {
		r = rand.Reader
	}

	password, err := randomString(r, letters+digits+punctuation, AdminPasswordLength)
	if err != nil {
		return Snapshot{}, fmt.Errorf("generating admin password: %w", err)
	}
	suffix, err := randomString(r, digits, AnonTokenSuffixLength)
	if err != nil {
		return Snapshot{}, fmt.Errorf("generating anon token suffix: %w", err)
	}

	return Snapshot{
		AdminPassword:   Field{Token: TokenAdminPassword, Value: passwordReplacer.Replace(password)},
		AnonTokenSuffix: Field{Token: TokenAnonTokenSuffix, Value: suffix},
	}, nil
}

// randomString draws n characters uniformly from alphabet using rejection
// sampling over single bytes. alphabet must be shorter than 256 bytes.
func randomString(r io.Reader, alphabet string, n int) (string, error) {
	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, 1)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		if int(buf[0]) >= limit {
			continue
		}
		out = append(out, alphabet[int(buf[0])%len(alphabet)])
	}
	return string(out), nil
}

// DefaultSource yields the defaulted snapshot. It satisfies the same
// Collect contract as Collector.
type DefaultSource struct {
	// Rand seeds the generated secrets; nil means crypto/rand.
	Rand io.Reader
}

// Collect returns Defaults(s.Rand).
func (s DefaultSource) Collect(_ context.Context) (Snapshot, error) {
	return Defaults(s.Rand)
}
