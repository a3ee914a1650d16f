package gateway

import (
	"fmt"
	"strings"

	"github.com/pkg/browser"
)

func (g *Gateway) OpenInBrowser(host string, url string) error {
	if strings.Contains(url, "%s") {
		url = fmt.Sprintf(url, host)
	}
	return browser.OpenURL(url)
}
