package gateway

import (
	"context"
	"runtime"

	"github.com/45air/airlocal/constants"
)

// AddHosts registers hosts in the system hosts file through the privileged
// helper. sudo may prompt the operator for a password.
func (g *Gateway) AddHosts(ctx context.Context, hosts []string) error {
	return g.hosts(ctx, "add", hosts)
}

func (g *Gateway) RemoveHosts(ctx context.Context, hosts []string) error {
	return g.hosts(ctx, "remove", hosts)
}

func (g *Gateway) hosts(ctx context.Context, action string, hosts []string) error {
	args := append([]string{constants.HostsHelper, action}, hosts...)
	if runtime.GOOS == "windows" {
		return g.runner.Run(ctx, "", true, args[0], args[1:]...)
	}
	return g.runner.Run(ctx, "", true, "sudo", args...)
}
