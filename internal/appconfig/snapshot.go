// Package appconfig collects the configuration values substituted into a new
// app's entry file.
package appconfig

import (
	"encoding/json"
	"fmt"
)

// Placeholder tokens embedded in the app template.
const (
	TokenAdminPassword   = "__ADMIN_PASSWORD__"
	TokenAnonTokenSuffix = "__ANON_TOKEN_SUFFIX__"
	TokenEnv             = "__ENV__"
	TokenDataName        = "__DATA_NAME__"
	TokenLocales         = "__LOCALES__"
	TokenLocale          = "__LOCALE__"
	TokenAdminEmail      = "__ADMIN_DOC_EMAIL__"
)

// Field pairs a placeholder token with its resolved value. It encodes as a
// two-element JSON array: [token, value].
type Field struct {
	Token string
	Value string
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{f.Token, f.Value})
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("expected [token, value] pair, got %d elements", len(pair))
	}
	f.Token, f.Value = pair[0], pair[1]
	return nil
}

// Snapshot is the full set of resolved configuration values for one app.
// Field order is substitution order.
type Snapshot struct {
	AdminPassword       Field `json:"admin_password"`
	AnonTokenSuffix     Field `json:"anon_token_suffix"`
	DevLocalDataServer  Field `json:"dev_local:data_server"`
	DevServerDataServer Field `json:"dev_server:data_server"`
	ProdDataServer      Field `json:"prod:data_server"`
	Env                 Field `json:"env"`
	DataName            Field `json:"data_name"`
	Locales             Field `json:"locales"`
	Locale              Field `json:"locale"`
	AdminEmail          Field `json:"admin_doc:email"`
}

// NamedField is a snapshot field together with its symbolic name.
type NamedField struct {
	Name  string
	Field Field
}

// Field names as they appear in the checkpoint file.
const (
	NameAdminPassword       = "admin_password"
	NameAnonTokenSuffix     = "anon_token_suffix"
	NameDevLocalDataServer  = "dev_local:data_server"
	NameDevServerDataServer = "dev_server:data_server"
	NameProdDataServer      = "prod:data_server"
	NameEnv                 = "env"
	NameDataName            = "data_name"
	NameLocales             = "locales"
	NameLocale              = "locale"
	NameAdminEmail          = "admin_doc:email"
)

// Fields returns every field in substitution order.
func (s Snapshot) Fields() []NamedField {
	return []NamedField{
		{NameAdminPassword, s.AdminPassword},
		{NameAnonTokenSuffix, s.AnonTokenSuffix},
		{NameDevLocalDataServer, s.DevLocalDataServer},
		{NameDevServerDataServer, s.DevServerDataServer},
		{NameProdDataServer, s.ProdDataServer},
		{NameEnv, s.Env},
		{NameDataName, s.DataName},
		{NameLocales, s.Locales},
		{NameLocale, s.Locale},
		{NameAdminEmail, s.AdminEmail},
	}
}

// FieldNames returns the symbolic names of all fields in order.
func FieldNames() []string {
	fields := Snapshot{}.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Validate reports the first field missing its token or value.
func (s Snapshot) Validate() error {
	for _, f := range s.Fields() {
		if f.Field.Token == "" {
			return fmt.Errorf("config field %q: missing placeholder token", f.Name)
		}
		if f.Field.Value == "" {
			return fmt.Errorf("config field %q: missing value", f.Name)
		}
	}
	return nil
}
