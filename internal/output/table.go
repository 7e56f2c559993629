package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ConfigTable lists app config attributes with the template placeholder each
// one replaces and the value it will be given.
type ConfigTable struct {
	rows [][]string
}

// NewConfigTable returns an empty ConfigTable.
func NewConfigTable() *ConfigTable {
	return &ConfigTable{}
}

// Add appends an attribute. An empty value is shown as a dim dash.
func (t *ConfigTable) Add(attribute, placeholder, value string) *ConfigTable {
	if value == "" {
		value = StyleDim.Render("-")
	}
	t.rows = append(t.rows, []string{attribute, placeholder, value})
	return t
}

const (
	colAttribute = iota
	colPlaceholder
)

var (
	configHeaderStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	configAttributeStyle   = StyleNoun.Padding(0, 1)
	configPlaceholderStyle = StyleDim.Padding(0, 1)
	configValueStyle       = lipgloss.NewStyle().Padding(0, 1)
)

// String renders the table.
func (t *ConfigTable) String() string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorDimGray)).
		BorderRow(false).
		Headers("ATTRIBUTE", "PLACEHOLDER", "VALUE").
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return configHeaderStyle
			case col == colAttribute:
				return configAttributeStyle
			case col == colPlaceholder:
				return configPlaceholderStyle
			default:
				return configValueStyle
			}
		}).
		String()
}
