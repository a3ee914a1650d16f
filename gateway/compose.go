package gateway

import (
	"context"
	"path/filepath"

	"github.com/45air/airlocal/constants"
)

// Compose drives `docker compose` for one environment directory.
type Compose struct {
	gtwy    *Gateway
	dir     string
	project string
}

func (g *Gateway) Compose(dir, project string) *Compose {
	return &Compose{gtwy: g, dir: dir, project: project}
}

func (c *Compose) args(sub ...string) []string {
	base := []string{"compose", "-p", c.project, "-f", filepath.Join(c.dir, constants.TopologyFileName)}
	return append(base, sub...)
}

func (c *Compose) Up(ctx context.Context) error {
	return c.gtwy.runner.Run(ctx, c.dir, false, "docker", c.args("up", "-d")...)
}

func (c *Compose) Stop(ctx context.Context) error {
	return c.gtwy.runner.Run(ctx, c.dir, false, "docker", c.args("stop")...)
}

// Down removes containers and the environment's own volumes.
func (c *Compose) Down(ctx context.Context) error {
	return c.gtwy.runner.Run(ctx, c.dir, false, "docker", c.args("down", "-v")...)
}

// Exec runs a command in a service without allocating a TTY.
func (c *Compose) Exec(ctx context.Context, service string, cmd ...string) error {
	args := append([]string{"exec", "-T", "--user", "www-data", service}, cmd...)
	return c.gtwy.runner.Run(ctx, c.dir, false, "docker", c.args(args...)...)
}
