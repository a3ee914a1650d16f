package constants

// Version is overridden at build time with -ldflags "-X".
var Version = "source"

const (
	// Shared across every environment on the host.
	NetworkName     = "airlocaldocker"
	CacheVolumeName = "airlocalCache"

	// The global stack: database, proxy, mail catcher and DNS.
	GlobalProject = "airlocal"
	GlobalDir     = "global"
	NetworkSubnet = "10.0.0.0/16"
	DNSAddress    = "10.0.0.2"
	ProxyAddress  = "10.0.0.3"

	TopologyFileName = "docker-compose.yml"
	RecordFileName   = ".config.json"
	LockFileSuffix   = ".lock"

	HostsHelper = "airlocal-hosts"

	ReleaseOwner = "45air"
	ReleaseRepo  = "airlocal"
)

// GlobalPorts are published on the host by the global stack.
var GlobalPorts = []int{80, 443, 3306, 1025, 1080}
