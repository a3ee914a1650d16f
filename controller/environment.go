package controller

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/45air/airlocal/configs"
	"github.com/45air/airlocal/constants"
	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/hostname"
)

// GetEnvironment loads the record of the environment serving host.
func (c *Controller) GetEnvironment(host string) (*entity.EnvironmentRecord, error) {
	path, _, err := c.EnvironmentPath(host)
	if err != nil {
		return nil, err
	}
	record, err := entity.ReadRecord(path)
	if os.IsNotExist(err) {
		return nil, errors.EnvironmentNotFound
	}
	return record, err
}

// FindEnvironment is GetEnvironment for cleanup. A directory left behind by
// a failed create has no record yet, so one is derived from host.
func (c *Controller) FindEnvironment(host string) (*entity.EnvironmentRecord, error) {
	record, err := c.GetEnvironment(host)
	if err != errors.EnvironmentNotFound {
		return record, err
	}

	path, slug, err := c.EnvironmentPath(host)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && !info.IsDir()) {
		return nil, errors.EnvironmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity.EnvironmentRecord{
		Slug:       slug,
		Path:       path,
		Hosts:      []string{hostname.Normalize(host)},
		Incomplete: true,
	}, nil
}

// ListEnvironments returns every environment directory under sitesPath.
// Directories without a record are listed as incomplete.
func (c *Controller) ListEnvironments() ([]*entity.EnvironmentRecord, error) {
	sitesDir, err := c.cfg.SitesDirectory()
	if err != nil {
		return nil, err
	}
	entries, err := ioutil.ReadDir(sitesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	records := []*entity.EnvironmentRecord{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(sitesDir, entry.Name())
		record, err := entity.ReadRecord(path)
		if os.IsNotExist(err) {
			record = &entity.EnvironmentRecord{Slug: entry.Name(), Path: path, Incomplete: true}
		} else if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *Controller) StartEnvironment(ctx context.Context, host string) error {
	record, err := c.GetEnvironment(host)
	if err != nil {
		return err
	}
	c.warnPortConflicts(ctx)
	if err := c.startShared(ctx); err != nil {
		return err
	}
	return c.backend.Services(record.Path, record.Slug).Up(ctx)
}

func (c *Controller) StopEnvironment(ctx context.Context, host string) error {
	record, err := c.GetEnvironment(host)
	if err != nil {
		return err
	}
	return c.backend.Services(record.Path, record.Slug).Stop(ctx)
}

// DeleteEnvironment tears the environment down and removes its directory.
// Only the directory removal is fatal; everything else is best effort so a
// half-provisioned environment can still be cleaned up. Hosts entries of an
// incomplete environment are left alone: they are added after the database
// and services, so a failed create has almost never written them.
func (c *Controller) DeleteEnvironment(ctx context.Context, record *entity.EnvironmentRecord) ([]*errors.AdvisoryWarning, error) {
	warnings := []*errors.AdvisoryWarning{}
	warn := func(phase, hint string, err error) {
		if err == nil {
			return
		}
		w := &errors.AdvisoryWarning{Phase: phase, Hint: hint, Err: err}
		warnings = append(warnings, w)
		c.reporter.Warn(w)
	}

	c.reporter.Step("Stopping and removing containers...")
	warn("environment stop", "Containers may still be running.", c.backend.Services(record.Path, record.Slug).Down(ctx))

	c.reporter.Step("Dropping database...")
	container, err := c.cfg.GetString(configs.DBContainer)
	if err == nil {
		var password string
		password, err = c.cfg.GetString(configs.DBRootPassword)
		if err == nil {
			err = c.backend.Database(container, password).Drop(ctx, record.Slug)
		}
	}
	warn("database", "The database was not removed.", err)

	if record.Incomplete {
		c.reporter.Info("No environment record was found, hosts file entries are left untouched.")
	}
	manage, err := c.cfg.GetBool(configs.ManageHosts)
	if err == nil && manage && !record.Incomplete && len(record.Hosts) > 0 {
		c.reporter.Step("Removing entries from hosts file")
		err = c.backend.RemoveHosts(ctx, record.Hosts)
	}
	warn("hosts file", "You may need to remove the /etc/hosts entries manually.", err)

	c.reporter.Step("Removing files...")
	if err := os.RemoveAll(record.Path); err != nil {
		return warnings, &errors.InfrastructureError{Phase: "remove files", Err: err}
	}
	return warnings, nil
}

// ClearCache recreates the shared cache volume.
func (c *Controller) ClearCache(ctx context.Context) error {
	if err := c.backend.RemoveVolume(ctx, constants.CacheVolumeName); err != nil {
		return err
	}
	return c.backend.EnsureVolume(ctx, constants.CacheVolumeName)
}

func (c *Controller) CheckDocker(ctx context.Context) error {
	if err := c.backend.Ping(ctx); err != nil {
		return errors.DockerNotRunning
	}
	return nil
}

func (c *Controller) OpenInBrowser(host, url string) error {
	return c.backend.OpenInBrowser(host, url)
}

func (c *Controller) GetLatestVersion(ctx context.Context) (string, error) {
	return c.backend.GetLatestVersion(ctx)
}
