package template

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
)

const (
	tryProxyMarker = "#{TRY_PROXY}"
	proxyURLMarker = "#{PROXY_URL}"
)

// NginxConfigPath is where the selected routing file lives once copied.
func NginxConfigPath(envPath, name string) string {
	return filepath.Join(envPath, ConfigDir, "nginx", name)
}

// RewriteProxy routes missing static assets to proxyURL.
func RewriteProxy(conf, proxyURL string) string {
	location := fmt.Sprintf(`location @production {
        resolver 8.8.8.8;
        proxy_pass %s/$uri;
    }`, proxyURL)

	conf = strings.ReplaceAll(conf, tryProxyMarker, "try_files $uri @production;")
	return strings.Replace(conf, proxyURLMarker, location, 1)
}

// ApplyProxy rewrites the routing file at path in place.
func ApplyProxy(path, proxyURL string) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read nginx configuration file: %w", err)
	}
	if err := ioutil.WriteFile(path, []byte(RewriteProxy(string(b), proxyURL)), 0644); err != nil {
		return fmt.Errorf("failed to write nginx configuration file: %w", err)
	}
	return nil
}
