package topology

import (
	"github.com/45air/airlocal/constants"
)

const (
	ProxyService    = "gateway"
	DatabaseService = "mysql"
	MailService     = "mailcatcher"
	DNSService      = "dns"

	DatabaseDataVolume = "mysqlData"
)

// LocalDomains are answered by the global DNS service with the address of
// the proxy, so containers reach every environment by its hostname.
var LocalDomains = []string{"test", "local", "localhost", "docker"}

// GlobalOptions are the settings the shared stack depends on.
type GlobalOptions struct {
	DatabaseContainer string
	RootPassword      string
}

// BuildGlobal describes the stack every environment relies on: the MySQL
// server, the reverse proxy reading VIRTUAL_HOST, the mail catcher and the
// DNS server at constants.DNSAddress.
func BuildGlobal(opts GlobalOptions) *Document {
	doc := NewDocument()
	shared := []string{constants.NetworkName}

	doc.AddService(ProxyService, &Service{
		Image:         "jwilder/nginx-proxy:latest",
		ContainerName: "airlocal-gateway",
		Restart:       "unless-stopped",
		Ports:         []string{"80:80", "443:443"},
		Volumes:       []string{"/var/run/docker.sock:/tmp/docker.sock:ro"},
		Networks:      shared,
		Addresses:     map[string]string{constants.NetworkName: constants.ProxyAddress},
	})
	doc.AddService(DatabaseService, &Service{
		Image:         "mysql:5.7",
		ContainerName: opts.DatabaseContainer,
		Restart:       "unless-stopped",
		Ports:         []string{"3306:3306"},
		Volumes:       []string{DatabaseDataVolume + ":/var/lib/mysql"},
		Networks:      shared,
		Environment: []EnvVar{
			{Name: "MYSQL_ROOT_PASSWORD", Value: opts.RootPassword},
		},
	})
	doc.AddService(MailService, &Service{
		Image:         "schickling/mailcatcher:latest",
		ContainerName: "airlocal-mail",
		Restart:       "unless-stopped",
		Ports:         []string{"1025:1025", "1080:1080"},
		Networks:      shared,
	})

	command := []string{"--log-facility=-", "--server=8.8.8.8"}
	for _, domain := range LocalDomains {
		command = append(command, "--address=/"+domain+"/"+constants.ProxyAddress)
	}
	doc.AddService(DNSService, &Service{
		Image:         "andyshinn/dnsmasq:latest",
		ContainerName: "airlocal-dns",
		Command:       command,
		Restart:       "unless-stopped",
		CapAdd:        []string{"NET_ADMIN"},
		Networks:      shared,
		Addresses:     map[string]string{constants.NetworkName: constants.DNSAddress},
	})

	doc.AddNetwork(constants.NetworkName, &Resource{External: true, Name: constants.NetworkName})
	doc.AddVolume(DatabaseDataVolume, &Resource{})
	return doc
}
