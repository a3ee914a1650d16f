package controller

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/45air/airlocal/configs"
	"github.com/45air/airlocal/constants"
	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/hostname"
	"github.com/45air/airlocal/template"
	"github.com/45air/airlocal/topology"
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeAdvisory
	OutcomeFatal
)

// PhaseResult tells the pipeline driver whether to continue.
type PhaseResult struct {
	Outcome Outcome
	Err     error
	// Hint is shown to the operator with advisory failures.
	Hint string
}

func ok() PhaseResult {
	return PhaseResult{Outcome: OutcomeOK}
}

func fatal(err error) PhaseResult {
	if err == nil {
		return ok()
	}
	return PhaseResult{Outcome: OutcomeFatal, Err: err}
}

func advisory(err error, hint string) PhaseResult {
	if err == nil {
		return ok()
	}
	return PhaseResult{Outcome: OutcomeAdvisory, Err: err, Hint: hint}
}

type phase struct {
	name    string
	message string
	run     func(ctx context.Context, p *provisioning) PhaseResult
}

// provisioning is the state handed from one phase to the next.
type provisioning struct {
	spec     *entity.EnvironmentSpec
	slug     string
	sitesDir string
	path     string
	hosts    []string
	doc      *topology.Document
	lockPath string
	record   *entity.EnvironmentRecord
}

func (p *provisioning) release() {
	if p.lockPath != "" {
		os.Remove(p.lockPath)
	}
}

// ProvisionResult is returned for a successfully provisioned environment.
type ProvisionResult struct {
	Record   *entity.EnvironmentRecord
	Warnings []*errors.AdvisoryWarning
	Notes    []string
}

func (c *Controller) phases() []phase {
	return []phase{
		{name: "pre-flight check", run: c.preflight},
		{name: "port check", run: c.checkPorts},
		{name: "shared infrastructure", message: "Starting global services...", run: c.bootstrap},
		{name: "workspace", message: "Copying required files...", run: c.materialize},
		{name: "compose file", message: "Generating docker-compose.yml file...", run: c.writeDocument},
		{name: "media proxy", run: c.configureProxy},
		{name: "database", message: "Creating database", run: c.createDatabase},
		{name: "environment start", message: "Starting environment...", run: c.activate},
		{name: "WordPress install", run: c.installApplication},
		{name: "hosts file", run: c.registerHosts},
		{name: "environment record", run: c.persistRecord},
	}
}

// Provision runs every phase in order. A fatal phase stops the run and
// leaves whatever was created on disk; advisory failures are collected in
// the result.
func (c *Controller) Provision(ctx context.Context, spec *entity.EnvironmentSpec) (*ProvisionResult, error) {
	p := &provisioning{spec: spec}
	defer p.release()

	result := &ProvisionResult{}
	for _, ph := range c.phases() {
		if ph.message != "" {
			c.reporter.Step(ph.message)
		}

		res := ph.run(ctx, p)
		switch res.Outcome {
		case OutcomeAdvisory:
			warning := &errors.AdvisoryWarning{Phase: ph.name, Hint: res.Hint, Err: res.Err}
			result.Warnings = append(result.Warnings, warning)
			c.reporter.Warn(warning)
		case OutcomeFatal:
			return nil, classify(ph.name, res.Err)
		}
	}

	result.Record = p.record
	if spec.ApplicationEnabled && spec.ApplicationVariant == entity.VariantSubdomain {
		result.Notes = append(result.Notes, "Note: Subdomain multisites require any additional subdomains to be added manually to your hosts file!")
	}
	return result, nil
}

// classify keeps the typed errors callers branch on and wraps the rest.
func classify(phaseName string, err error) error {
	var duplicate *errors.DuplicateEnvironmentError
	var config *errors.ConfigurationError
	var validation *errors.ValidationError
	if stderrors.As(err, &duplicate) || stderrors.As(err, &config) || stderrors.As(err, &validation) {
		return err
	}
	return &errors.InfrastructureError{Phase: phaseName, Err: err}
}

// EnvironmentPath is where the environment for host lives.
func (c *Controller) EnvironmentPath(host string) (string, string, error) {
	sitesDir, err := c.cfg.SitesDirectory()
	if err != nil {
		return "", "", err
	}
	slug := hostname.Slug(hostname.Normalize(host))
	return filepath.Join(sitesDir, slug), slug, nil
}

func (c *Controller) preflight(ctx context.Context, p *provisioning) PhaseResult {
	path, slug, err := c.EnvironmentPath(p.spec.PrimaryHost)
	if err != nil {
		return fatal(err)
	}
	if slug == "" {
		return fatal(&errors.ValidationError{Field: "hostname", Message: fmt.Sprintf("%q cannot be used as an environment name", p.spec.PrimaryHost)})
	}
	p.slug, p.path, p.sitesDir = slug, path, filepath.Dir(path)

	if _, err := os.Stat(path); err == nil {
		dup := &errors.DuplicateEnvironmentError{Host: p.spec.PrimaryHost, Path: path}
		if record, err := entity.ReadRecord(path); err == nil {
			dup.ExistingHost = record.PrimaryHost()
		}
		return fatal(dup)
	} else if !os.IsNotExist(err) {
		return fatal(err)
	}

	if err := os.MkdirAll(p.sitesDir, 0755); err != nil {
		return fatal(err)
	}
	lockPath := filepath.Join(p.sitesDir, "."+slug+constants.LockFileSuffix)
	if err := acquireLock(lockPath); err != nil {
		if os.IsExist(err) {
			return fatal(&errors.DuplicateEnvironmentError{Host: p.spec.PrimaryHost, Path: lockPath, InProgress: true})
		}
		return fatal(err)
	}
	p.lockPath = lockPath

	p.hosts = topology.AllHosts(p.spec)
	return ok()
}

func (c *Controller) checkPorts(ctx context.Context, p *provisioning) PhaseResult {
	return advisory(c.portConflicts(ctx), portsHint)
}

func (c *Controller) bootstrap(ctx context.Context, p *provisioning) PhaseResult {
	return fatal(c.startShared(ctx))
}

func (c *Controller) materialize(ctx context.Context, p *provisioning) PhaseResult {
	source, err := c.cfg.GetString(configs.TemplatePath)
	if err != nil {
		return fatal(err)
	}
	if source != "" {
		source = configs.ResolveHome(source)
	}
	return fatal(template.Materialize(p.path, source))
}

func (c *Controller) writeDocument(ctx context.Context, p *provisioning) PhaseResult {
	doc, err := topology.Build(p.spec)
	if err != nil {
		return fatal(err)
	}
	if err := topology.Validate(doc); err != nil {
		return fatal(err)
	}
	out, err := doc.Marshal()
	if err != nil {
		return fatal(err)
	}
	p.doc = doc
	return fatal(ioutil.WriteFile(filepath.Join(p.path, constants.TopologyFileName), out, 0644))
}

func (c *Controller) configureProxy(ctx context.Context, p *provisioning) PhaseResult {
	if !p.spec.ProxyEnabled() {
		return ok()
	}
	c.reporter.Step("Writing proxy configuration...")

	path := template.NginxConfigPath(p.path, p.doc.RoutingConfig)
	if err := template.ApplyProxy(path, p.spec.MediaProxyURL); err != nil {
		return advisory(err, "Your media proxy has not been set.")
	}
	c.reporter.Step("Proxy configured")
	return ok()
}

func (c *Controller) createDatabase(ctx context.Context, p *provisioning) PhaseResult {
	container, err := c.cfg.GetString(configs.DBContainer)
	if err != nil {
		return fatal(err)
	}
	password, err := c.cfg.GetString(configs.DBRootPassword)
	if err != nil {
		return fatal(err)
	}

	db := c.backend.Database(container, password)
	if err := db.Wait(ctx); err != nil {
		return fatal(err)
	}
	if err := db.Create(ctx, p.slug); err != nil {
		return fatal(err)
	}
	return fatal(db.AssignPrivileges(ctx, p.slug))
}

func (c *Controller) activate(ctx context.Context, p *provisioning) PhaseResult {
	return fatal(c.backend.Services(p.path, p.slug).Up(ctx))
}

func (c *Controller) installApplication(ctx context.Context, p *provisioning) PhaseResult {
	spec := p.spec
	if !spec.ApplicationEnabled {
		return ok()
	}
	if spec.Admin == nil {
		return fatal(&errors.ConfigurationError{Field: "admin credentials", Value: ""})
	}

	wp := c.backend.Installer(p.path, p.slug, spec.PrimaryHost)

	c.reporter.Step("Downloading WordPress...")
	download := wp.Download
	if spec.IsDevelopment() {
		download = wp.DownloadDevelop
	}

	steps := []func(context.Context) error{
		download,
		wp.Configure,
		func(ctx context.Context) error {
			c.reporter.Step("Installing WordPress...")
			return wp.Install(ctx, spec.ApplicationVariant, spec.Admin)
		},
		wp.SetRewrites,
	}
	if spec.WipeDefaultContent {
		steps = append(steps, wp.EmptyContent)
	}

	for _, step := range steps {
		if err := step(ctx); err != nil {
			return fatal(err)
		}
	}
	return ok()
}

func (c *Controller) registerHosts(ctx context.Context, p *provisioning) PhaseResult {
	const hint = "Something went wrong adding host file entries. You may need to add the /etc/hosts entries manually."

	manage, err := c.cfg.GetBool(configs.ManageHosts)
	if err != nil {
		return advisory(err, hint)
	}
	if !manage {
		return ok()
	}

	c.reporter.Step("Adding entry to hosts file")
	return advisory(c.backend.AddHosts(ctx, p.hosts), hint)
}

func (c *Controller) persistRecord(ctx context.Context, p *provisioning) PhaseResult {
	record := &entity.EnvironmentRecord{
		Slug:  p.slug,
		Path:  p.path,
		Hosts: p.hosts,
	}
	if err := entity.WriteRecord(record); err != nil {
		return fatal(err)
	}
	p.record = record
	return ok()
}
