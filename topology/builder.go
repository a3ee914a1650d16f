// Package topology compiles an environment spec into the compose document
// that describes its services, networks and volumes.
package topology

import (
	"strings"

	"github.com/45air/airlocal/constants"
	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/errors"
)

const (
	WebService    = "nginx"
	CacheService  = "redis"
	AppService    = "phpfpm"
	SearchService = "elasticsearch"

	SearchDataVolume = "elasticsearchData"

	DefaultRoutingConfig     = "default.conf"
	DevelopmentRoutingConfig = "develop.conf"

	webRoot = "./wordpress:/var/www/web:cached"
)

// fragment mutates the document for one feature of the spec.
type fragment func(*Document, *entity.EnvironmentSpec, []string)

// Fragments are applied in this order on every build.
var fragments = []fragment{
	baseFragment,
	webFragment,
	appFragment,
	searchFragment,
	networkFragment,
	volumeFragment,
}

// Build is a pure function of spec: it performs no I/O and equal specs give
// byte-identical documents.
func Build(spec *entity.EnvironmentSpec) (*Document, error) {
	if !supportedRuntime(spec.RuntimeVersion) {
		return nil, &errors.ConfigurationError{Field: "PHP version", Value: spec.RuntimeVersion}
	}
	if spec.ApplicationEnabled && !supportedVariant(spec.ApplicationVariant) {
		return nil, &errors.ConfigurationError{Field: "WordPress installation type", Value: string(spec.ApplicationVariant)}
	}

	hosts := AllHosts(spec)
	doc := NewDocument()
	for _, apply := range fragments {
		apply(doc, spec, hosts)
	}
	return doc, nil
}

// AllHosts is the primary host followed by the extra hosts, without
// duplicates, in first-occurrence order.
func AllHosts(spec *entity.EnvironmentSpec) []string {
	seen := map[string]bool{}
	hosts := []string{}
	for _, h := range append([]string{spec.PrimaryHost}, spec.ExtraHosts...) {
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		hosts = append(hosts, h)
	}
	return hosts
}

// StarHosts returns the wildcard form of every host.
func StarHosts(hosts []string) []string {
	stars := make([]string, len(hosts))
	for i, h := range hosts {
		stars[i] = "*." + h
	}
	return stars
}

// VirtualHost is the routing value of the web tier.
func VirtualHost(hosts []string) string {
	return strings.Join(append(append([]string{}, hosts...), StarHosts(hosts)...), ",")
}

func RoutingConfigFor(spec *entity.EnvironmentSpec) string {
	if spec.IsDevelopment() {
		return DevelopmentRoutingConfig
	}
	return DefaultRoutingConfig
}

func baseFragment(doc *Document, spec *entity.EnvironmentSpec, hosts []string) {
	doc.AddService(CacheService, &Service{
		Image: "redis:latest",
	})
	doc.AddService(WebService, &Service{
		Image:     "45air/nginx:latest",
		Expose:    []string{"80", "443"},
		Volumes:   []string{webRoot},
		DependsOn: []string{AppService},
		Networks:  []string{"default", constants.NetworkName},
		Environment: []EnvVar{
			{Name: "CERT_NAME", Value: "localhost"},
			{Name: "HTTPS_METHOD", Value: "noredirect"},
		},
	})
}

func webFragment(doc *Document, spec *entity.EnvironmentSpec, hosts []string) {
	web := doc.Service(WebService)
	web.SetEnv("VIRTUAL_HOST", VirtualHost(hosts))

	doc.RoutingConfig = RoutingConfigFor(spec)
	web.Volumes = append(web.Volumes, "./config/nginx/"+doc.RoutingConfig+":/etc/nginx/conf.d/default.conf:cached")
}

func appFragment(doc *Document, spec *entity.EnvironmentSpec, hosts []string) {
	cliConfig := "wp-cli.local.yml"
	if spec.IsDevelopment() {
		cliConfig = "wp-cli.develop.yml"
	}

	doc.AddService(AppService, &Service{
		Image: "45air/phpfpm:" + spec.RuntimeVersion,
		Volumes: []string{
			webRoot,
			"./config/php-fpm/php.ini:/usr/local/etc/php/php.ini:cached",
			"./config/php-fpm/docker-php-ext-xdebug.ini:/usr/local/etc/php/conf.d/docker-php-ext-xdebug.ini:cached",
			constants.CacheVolumeName + ":/var/www/.wp-cli/cache:cached",
			"~/.ssh:/root/.ssh:cached",
			"./config/php-fpm/" + cliConfig + ":/var/www/.wp-cli/config.yml:cached",
		},
		DependsOn: []string{CacheService},
		Networks:  []string{"default", constants.NetworkName},
		DNS:       []string{constants.DNSAddress},
	})
}

func searchFragment(doc *Document, spec *entity.EnvironmentSpec, hosts []string) {
	if !spec.SearchEnabled {
		return
	}

	app := doc.Service(AppService)
	app.DependsOn = append(app.DependsOn, SearchService)

	doc.AddService(SearchService, &Service{
		Image:  "docker.elastic.co/elasticsearch/elasticsearch:5.6.5",
		Expose: []string{"9200"},
		Volumes: []string{
			"./config/elasticsearch/elasticsearch.yml:/usr/share/elasticsearch/config/elasticsearch.yml:cached",
			"./config/elasticsearch/plugins:/usr/share/elasticsearch/plugins:cached",
			SearchDataVolume + ":/usr/share/elasticsearch/data:delegated",
		},
		Environment: []EnvVar{
			{Name: "ES_JAVA_OPTS", Value: "-Xms750m -Xmx750m"},
		},
	})
}

func networkFragment(doc *Document, spec *entity.EnvironmentSpec, hosts []string) {
	doc.AddNetwork(constants.NetworkName, &Resource{External: true, Name: constants.NetworkName})
}

func volumeFragment(doc *Document, spec *entity.EnvironmentSpec, hosts []string) {
	doc.AddVolume(constants.CacheVolumeName, &Resource{External: true, Name: constants.CacheVolumeName})
	if spec.SearchEnabled {
		doc.AddVolume(SearchDataVolume, &Resource{})
	}
}

func supportedRuntime(version string) bool {
	for _, v := range entity.RuntimeVersions {
		if v == version {
			return true
		}
	}
	return false
}

func supportedVariant(v entity.Variant) bool {
	switch v {
	case entity.VariantSingle, entity.VariantSubdirectory, entity.VariantSubdomain, entity.VariantDevelopment:
		return true
	}
	return false
}
