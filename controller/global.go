package controller

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/45air/airlocal/configs"
	"github.com/45air/airlocal/constants"
	"github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/topology"
)

const portsHint = "You have ports in use already that will conflict with airlocal."

// GlobalDirectory holds the compose file of the shared stack, next to the
// configuration file.
func (c *Controller) GlobalDirectory() string {
	return filepath.Join(filepath.Dir(c.cfg.Path()), constants.GlobalDir)
}

// portConflicts names the host ports of the global stack that something
// else already holds. A running stack holds them itself and is not checked.
func (c *Controller) portConflicts(ctx context.Context) error {
	container, err := c.cfg.GetString(configs.DBContainer)
	if err != nil {
		return err
	}
	running, err := c.backend.ContainerRunning(ctx, container)
	if err != nil {
		return err
	}
	if running {
		return nil
	}

	busy := c.backend.PortsInUse(constants.GlobalPorts)
	if len(busy) == 0 {
		return nil
	}
	ports := make([]string, len(busy))
	for i, p := range busy {
		ports[i] = strconv.Itoa(p)
	}
	return fmt.Errorf("ports %s are already in use", strings.Join(ports, ", "))
}

func (c *Controller) warnPortConflicts(ctx context.Context) {
	if err := c.portConflicts(ctx); err != nil {
		c.reporter.Warn(&errors.AdvisoryWarning{Phase: "port check", Hint: portsHint, Err: err})
	}
}

// startShared makes sure everything environments have in common is up: the
// network, the cache volume and the global compose stack.
func (c *Controller) startShared(ctx context.Context) error {
	if err := c.backend.EnsureNetwork(ctx, constants.NetworkName); err != nil {
		return err
	}
	if err := c.backend.EnsureVolume(ctx, constants.CacheVolumeName); err != nil {
		return err
	}

	container, err := c.cfg.GetString(configs.DBContainer)
	if err != nil {
		return err
	}
	password, err := c.cfg.GetString(configs.DBRootPassword)
	if err != nil {
		return err
	}
	doc := topology.BuildGlobal(topology.GlobalOptions{DatabaseContainer: container, RootPassword: password})
	if err := topology.Validate(doc); err != nil {
		return err
	}
	out, err := doc.Marshal()
	if err != nil {
		return err
	}

	dir := c.GlobalDirectory()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := ioutil.WriteFile(filepath.Join(dir, constants.TopologyFileName), out, 0644); err != nil {
		return err
	}
	return c.backend.Services(dir, constants.GlobalProject).Up(ctx)
}
