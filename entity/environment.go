package entity

type Variant string

const (
	VariantSingle       Variant = "single"
	VariantSubdirectory Variant = "subdirectory"
	VariantSubdomain    Variant = "subdomain"
	VariantDevelopment  Variant = "dev"
)

// RuntimeVersions are the supported PHP versions, newest first.
var RuntimeVersions = []string{"7.3", "7.2", "7.1", "7.0", "5.6"}

const DefaultRuntimeVersion = "7.3"

type AdminCredentials struct {
	Title    string
	Username string
	Password string
	Email    string
}

// EnvironmentSpec is what the operator asked for in `airlocal create`.
type EnvironmentSpec struct {
	PrimaryHost        string
	ExtraHosts         []string
	MediaProxyURL      string
	RuntimeVersion     string
	SearchEnabled      bool
	ApplicationEnabled bool
	ApplicationVariant Variant
	WipeDefaultContent bool
	Admin              *AdminCredentials
}

func (s *EnvironmentSpec) ProxyEnabled() bool {
	return s.MediaProxyURL != ""
}

func (s *EnvironmentSpec) IsDevelopment() bool {
	return s.ApplicationVariant == VariantDevelopment
}

// EnvironmentRecord is persisted in <path>/.config.json once provisioning
// succeeds. Only Hosts is written; Slug and Path come from its location.
type EnvironmentRecord struct {
	Slug  string   `json:"-"`
	Path  string   `json:"-"`
	Hosts []string `json:"envHosts"`
	// Incomplete marks a directory left by a failed create, which has no
	// .config.json.
	Incomplete bool `json:"-"`
}

func (r *EnvironmentRecord) PrimaryHost() string {
	if len(r.Hosts) == 0 {
		return ""
	}
	return r.Hosts[0]
}
