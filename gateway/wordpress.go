package gateway

import (
	"context"

	"github.com/45air/airlocal/entity"
)

const (
	appService        = "phpfpm"
	developRepository = "https://github.com/WordPress/wordpress-develop.git"
)

// WordPress runs the installer steps inside the application container.
type WordPress struct {
	compose *Compose
	slug    string
	host    string
}

func (g *Gateway) WordPress(dir, slug, host string) *WordPress {
	return &WordPress{compose: g.Compose(dir, slug), slug: slug, host: host}
}

func (w *WordPress) wp(ctx context.Context, args ...string) error {
	return w.compose.Exec(ctx, appService, append([]string{"wp"}, args...)...)
}

// Download fetches the latest packaged release.
func (w *WordPress) Download(ctx context.Context) error {
	return w.wp(ctx, "core", "download", "--force")
}

// DownloadDevelop checks out the core development repository.
func (w *WordPress) DownloadDevelop(ctx context.Context) error {
	return w.compose.Exec(ctx, appService, "git", "clone", "--depth", "1", developRepository, ".")
}

func (w *WordPress) Configure(ctx context.Context) error {
	return w.wp(ctx, "config", "create",
		"--dbname="+w.slug,
		"--dbuser="+DatabaseUser(w.slug),
		"--dbpass="+DatabasePassword,
		"--dbhost="+DatabaseHost,
		"--force",
	)
}

func (w *WordPress) Install(ctx context.Context, variant entity.Variant, admin *entity.AdminCredentials) error {
	args := []string{"core", "install"}
	switch variant {
	case entity.VariantSubdirectory:
		args = []string{"core", "multisite-install"}
	case entity.VariantSubdomain:
		args = []string{"core", "multisite-install", "--subdomains"}
	}

	args = append(args,
		"--url=http://"+w.host,
		"--title="+admin.Title,
		"--admin_user="+admin.Username,
		"--admin_password="+admin.Password,
		"--admin_email="+admin.Email,
		"--skip-email",
	)
	return w.wp(ctx, args...)
}

func (w *WordPress) SetRewrites(ctx context.Context) error {
	return w.wp(ctx, "rewrite", "structure", "/%postname%/", "--hard")
}

// EmptyContent removes the sample posts and bundled plugins.
func (w *WordPress) EmptyContent(ctx context.Context) error {
	if err := w.wp(ctx, "site", "empty", "--yes"); err != nil {
		return err
	}
	return w.wp(ctx, "plugin", "delete", "hello", "akismet")
}
