package topology_test

import (
	"testing"

	"github.com/45air/airlocal/entity"
	airerrors "github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/topology"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type composeService struct {
	Image       string            `yaml:"image"`
	Expose      []string          `yaml:"expose"`
	Volumes     []string          `yaml:"volumes"`
	DependsOn   []string          `yaml:"depends_on"`
	Networks    []string          `yaml:"networks"`
	Environment map[string]string `yaml:"environment"`
}

type composeFile struct {
	Version  string                            `yaml:"version"`
	Services map[string]composeService         `yaml:"services"`
	Networks map[string]map[string]interface{} `yaml:"networks"`
	Volumes  map[string]map[string]interface{} `yaml:"volumes"`
}

func baseSpec() *entity.EnvironmentSpec {
	return &entity.EnvironmentSpec{
		PrimaryHost:    "docker.test",
		RuntimeVersion: "7.3",
	}
}

func render(t *testing.T, spec *entity.EnvironmentSpec) (*topology.Document, composeFile) {
	doc, err := topology.Build(spec)
	require.NoError(t, err)
	require.NoError(t, topology.Validate(doc))

	out, err := doc.Marshal()
	require.NoError(t, err)

	var parsed composeFile
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	return doc, parsed
}

func TestBuildMinimalEnvironment(t *testing.T) {
	doc, parsed := render(t, baseSpec())

	require.Equal(t, "3", parsed.Version)
	require.Equal(t, []string{"redis", "nginx", "phpfpm"}, doc.ServiceNames())
	require.Len(t, parsed.Services, 3)
	require.NotContains(t, parsed.Services, "elasticsearch")

	nginx := parsed.Services["nginx"]
	require.Equal(t, "docker.test,*.docker.test", nginx.Environment["VIRTUAL_HOST"])
	require.Equal(t, []string{"80", "443"}, nginx.Expose)
	require.Equal(t, "45air/phpfpm:7.3", parsed.Services["phpfpm"].Image)
	require.Equal(t, []string{"redis"}, parsed.Services["phpfpm"].DependsOn)

	require.Equal(t, []string{"airlocaldocker"}, doc.NetworkNames())
	require.Equal(t, []string{"airlocalCache"}, doc.VolumeNames())
	require.Equal(t, map[string]interface{}{"name": "airlocaldocker"}, parsed.Networks["airlocaldocker"]["external"])
}

func TestBuildWithExtraHostsAndSearch(t *testing.T) {
	spec := baseSpec()
	spec.ExtraHosts = []string{"docker2.test"}
	spec.SearchEnabled = true

	doc, parsed := render(t, spec)

	require.Equal(t, []string{"redis", "nginx", "phpfpm", "elasticsearch"}, doc.ServiceNames())
	require.Equal(t, "docker.test,docker2.test,*.docker.test,*.docker2.test", parsed.Services["nginx"].Environment["VIRTUAL_HOST"])
	require.Equal(t, []string{"redis", "elasticsearch"}, parsed.Services["phpfpm"].DependsOn)
	require.Equal(t, []string{"airlocalCache", "elasticsearchData"}, doc.VolumeNames())
	require.False(t, doc.Volume("elasticsearchData").External)
	require.Contains(t, parsed.Volumes, "elasticsearchData")
}

var variantTest = []struct {
	name      string
	variant   entity.Variant
	routing   string
	cliConfig string
}{
	{name: "Single site", variant: entity.VariantSingle, routing: "default.conf", cliConfig: "wp-cli.local.yml"},
	{name: "Subdirectory multisite", variant: entity.VariantSubdirectory, routing: "default.conf", cliConfig: "wp-cli.local.yml"},
	{name: "Subdomain multisite", variant: entity.VariantSubdomain, routing: "default.conf", cliConfig: "wp-cli.local.yml"},
	{name: "Core development", variant: entity.VariantDevelopment, routing: "develop.conf", cliConfig: "wp-cli.develop.yml"},
}

func TestBuildSelectsConfigByVariant(t *testing.T) {
	for _, tt := range variantTest {
		t.Run(tt.name, func(t *testing.T) {
			spec := baseSpec()
			spec.ApplicationEnabled = true
			spec.ApplicationVariant = tt.variant

			doc, parsed := render(t, spec)

			require.Equal(t, tt.routing, doc.RoutingConfig)
			require.Contains(t, parsed.Services["nginx"].Volumes, "./config/nginx/"+tt.routing+":/etc/nginx/conf.d/default.conf:cached")
			require.Contains(t, parsed.Services["phpfpm"].Volumes, "./config/php-fpm/"+tt.cliConfig+":/var/www/.wp-cli/config.yml:cached")
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	spec := baseSpec()
	spec.ExtraHosts = []string{"b.test", "a.test"}
	spec.SearchEnabled = true

	first, err := topology.Build(spec)
	require.NoError(t, err)
	second, err := topology.Build(spec)
	require.NoError(t, err)

	a, err := first.Marshal()
	require.NoError(t, err)
	b, err := second.Marshal()
	require.NoError(t, err)
	require.Equal(t, string(a), string(b))
}

func TestBuildKeepsFragmentOrderInOutput(t *testing.T) {
	spec := baseSpec()
	spec.SearchEnabled = true
	doc, err := topology.Build(spec)
	require.NoError(t, err)
	out, err := doc.Marshal()
	require.NoError(t, err)

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal(out, &root))
	top := root.Content[0]

	keys := []string{}
	for i := 0; i < len(top.Content); i += 2 {
		keys = append(keys, top.Content[i].Value)
	}
	require.Equal(t, []string{"version", "services", "networks", "volumes"}, keys)

	services := top.Content[3]
	serviceKeys := []string{}
	for i := 0; i < len(services.Content); i += 2 {
		serviceKeys = append(serviceKeys, services.Content[i].Value)
	}
	require.Equal(t, []string{"redis", "nginx", "phpfpm", "elasticsearch"}, serviceKeys)
}

func TestBuildRejectsUnsupportedRuntime(t *testing.T) {
	spec := baseSpec()
	spec.RuntimeVersion = "8.9"

	_, err := topology.Build(spec)
	var cfgErr *airerrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "8.9", cfgErr.Value)
}

func TestBuildRejectsUnknownVariant(t *testing.T) {
	spec := baseSpec()
	spec.ApplicationEnabled = true
	spec.ApplicationVariant = "network"

	_, err := topology.Build(spec)
	var cfgErr *airerrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

var allHostsTest = []struct {
	name    string
	primary string
	extra   []string
	out     []string
}{
	{name: "No extra hosts", primary: "docker.test", extra: nil, out: []string{"docker.test"}},
	{name: "Primary repeated in extras", primary: "docker.test", extra: []string{"docker.test", "a.test"}, out: []string{"docker.test", "a.test"}},
	{name: "Duplicate extras keep first occurrence", primary: "docker.test", extra: []string{"b.test", "a.test", "b.test"}, out: []string{"docker.test", "b.test", "a.test"}},
}

func TestAllHosts(t *testing.T) {
	for _, tt := range allHostsTest {
		t.Run(tt.name, func(t *testing.T) {
			hosts := topology.AllHosts(&entity.EnvironmentSpec{PrimaryHost: tt.primary, ExtraHosts: tt.extra})
			require.Equal(t, tt.out, hosts)

			stars := topology.StarHosts(hosts)
			require.Len(t, stars, len(hosts))
			for i := range hosts {
				require.Equal(t, "*."+hosts[i], stars[i])
			}
		})
	}
}

func TestValidateRejectsDanglingDependency(t *testing.T) {
	doc := topology.NewDocument()
	doc.AddService("phpfpm", &topology.Service{Image: "45air/phpfpm:7.3", DependsOn: []string{"mysql"}})

	require.Error(t, topology.Validate(doc))
}

func TestValidateRejectsServiceWithoutImage(t *testing.T) {
	doc := topology.NewDocument()
	doc.AddService("nginx", &topology.Service{})

	require.Error(t, topology.Validate(doc))
}
