package models

import "time"

// Config represents the application configuration.
type Config struct {
	// App registration and sign-in settings
	Auth AuthConfig `json:"auth" yaml:"auth"`

	// Drive enumeration settings
	Drive DriveConfig `json:"drive" yaml:"drive"`

	// Mailbox settings
	Mail MailConfig `json:"mail" yaml:"mail"`

	// Public-IP change notifier settings
	IPWatch IPWatchConfig `json:"ipwatch" yaml:"ipwatch"`
}

// AuthConfig identifies the Azure AD app registration used for the
// device-code sign-in.
type AuthConfig struct {
	ClientID string `json:"client_id" yaml:"client_id"`
	// TenantID defaults to "common" (any work/school or personal account).
	TenantID string   `json:"tenant_id" yaml:"tenant_id"`
	Scopes   []string `json:"scopes"    yaml:"scopes"`
}

type DriveConfig struct {
	// DriveID selects a specific drive; empty means the signed-in user's
	// default drive.
	DriveID string `json:"drive_id" yaml:"drive_id"`

	// SkipFailedSubtrees continues an inventory past folders whose listing
	// fails instead of aborting the whole walk.
	SkipFailedSubtrees bool `json:"skip_failed_subtrees" yaml:"skip_failed_subtrees"`
}

type MailConfig struct {
	// DefaultSince bounds inbox listings ("7d", "2006-01-02", "last week").
	DefaultSince string `json:"default_since" yaml:"default_since"`
	DefaultLimit int    `json:"default_limit" yaml:"default_limit"`
}

type IPWatchConfig struct {
	// LookupURL is the public-IP echo service. Both JSON ({"ip": ...}) and
	// plain-text responses are accepted.
	LookupURL string        `json:"lookup_url" yaml:"lookup_url"`
	Interval  time.Duration `json:"interval"   yaml:"interval"`
	Recipient string        `json:"recipient"  yaml:"recipient"`
	// StateFile holds the last observed address; empty resolves to a file
	// in the config directory.
	StateFile string `json:"state_file" yaml:"state_file"`
}
