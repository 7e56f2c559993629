package appconfig

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Question describes one configuration prompt.
type Question struct {
	// Name is the snapshot field being collected.
	Name string

	// Title is the question shown to the operator.
	Title string

	// Description explains the default.
	Description string

	// Default is applied when the answer is empty.
	Default string

	// Validate checks a non-empty answer.
	Validate func(string) error
}

// Prompter reads one raw answer for a question. An empty answer selects the
// default. Implementations may validate inline but are not required to.
type Prompter interface {
	Ask(ctx context.Context, q Question) (string, error)
}

// Collector gathers a Snapshot interactively.
type Collector struct {
	prompter Prompter
	logger   *log.Logger
	rand     io.Reader
}

// NewCollector creates a collector. rand seeds the generated secrets; nil
// means crypto/rand.
func NewCollector(prompter Prompter, logger *log.Logger, rand io.Reader) *Collector {
	return &Collector{prompter: prompter, logger: logger, rand: rand}
}

// Collect prompts for every operator-supplied field. Invalid answers are
// reported and the question repeated; only a prompter error ends the loop early.
func (c *Collector) Collect(ctx context.Context) (Snapshot, error) {
	s, err := randomFields(c.rand)
	if err != nil {
		return Snapshot{}, err
	}

	c.logger.Info("'envs' provides environment-specific configuration; a 'data_server' is required for each environment",
		"environments", EnvironmentNames())

	for _, env := range Environments {
		name := env.Name + ":data_server"
		v, err := c.ask(ctx, Question{
			Name:        name,
			Title:       fmt.Sprintf("What would be the value for 'data_server' for environment '%s'?", env.Name),
			Description: "The connection string to connect to your MongoDB host",
			Default:     env.DefaultDataServer,
			Validate:    ValidateDataServer,
		})
		if err != nil {
			return Snapshot{}, err
		}
		*s.dataServerField(env.Name) = Field{Token: DataServerToken(env.Name), Value: v}
	}

	v, err := c.ask(ctx, Question{
		Name:        NameEnv,
		Title:       "What would be the value for 'env'?",
		Description: "Default environment used when launching the app",
		Default:     DefaultEnv,
		Validate:    ValidateEnv,
	})
	if err != nil {
		return Snapshot{}, err
	}
	s.Env = Field{Token: TokenEnv, Value: v}

	v, err = c.ask(ctx, Question{
		Name:        NameDataName,
		Title:       "What would be the value for 'data_name'?",
		Description: "Database name to be created on 'data_server'",
		Default:     DefaultDataName,
		Validate:    ValidateDataName,
	})
	if err != nil {
		return Snapshot{}, err
	}
	s.DataName = Field{Token: TokenDataName, Value: v}

	defaultLocales := strings.Join(DefaultLocales, ", ")
	v, err = c.ask(ctx, Question{
		Name:        NameLocales,
		Title:       "What would be the value for 'locales'?",
		Description: "Comma-separated, language_COUNTRY-formatted localisations of your app",
		Default:     defaultLocales,
		Validate: func(s string) error {
			_, err := ParseLocales(s)
			return err
		},
	})
	if err != nil {
		return Snapshot{}, err
	}
	locales, err := ParseLocales(v)
	if err != nil {
		return Snapshot{}, err
	}
	s.Locales = Field{Token: TokenLocales, Value: JoinLocales(locales)}

	v, err = c.ask(ctx, Question{
		Name:        NameLocale,
		Title:       "What would be the value for 'locale'?",
		Description: "Default localisation of your app, one of 'locales'",
		Default:     locales[0],
		Validate: func(s string) error {
			return ValidateLocale(s, locales)
		},
	})
	if err != nil {
		return Snapshot{}, err
	}
	s.Locale = Field{Token: TokenLocale, Value: v}

	v, err = c.ask(ctx, Question{
		Name:        NameAdminEmail,
		Title:       "What would be the value for 'admin_doc'.'email'?",
		Description: "Email of the app's admin user",
		Default:     DefaultAdminEmail,
		Validate:    ValidateEmail,
	})
	if err != nil {
		return Snapshot{}, err
	}
	s.AdminEmail = Field{Token: TokenAdminEmail, Value: v}

	return s, nil
}

func (c *Collector) ask(ctx context.Context, q Question) (string, error) {
	for {
		answer, err := c.prompter.Ask(ctx, q)
		if err != nil {
			return "", fmt.Errorf("collecting '%s': %w", q.Name, err)
		}

		if answer == "" {
			c.logger.Info("Setting config attr to default", "field", q.Name, "value", q.Default)
			return q.Default, nil
		}

		if err := q.Validate(answer); err != nil {
			c.logger.Error("Invalid value", "field", q.Name, "error", err)
			continue
		}

		c.logger.Info("Setting config attr", "field", q.Name, "value", answer)
		return answer, nil
	}
}
