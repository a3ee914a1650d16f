package controller

import (
	"context"

	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/gateway"
)

type Services interface {
	Up(ctx context.Context) error
	Stop(ctx context.Context) error
	Down(ctx context.Context) error
}

type Installer interface {
	Download(ctx context.Context) error
	DownloadDevelop(ctx context.Context) error
	Configure(ctx context.Context) error
	Install(ctx context.Context, variant entity.Variant, admin *entity.AdminCredentials) error
	SetRewrites(ctx context.Context) error
	EmptyContent(ctx context.Context) error
}

type Database interface {
	Wait(ctx context.Context) error
	Create(ctx context.Context, slug string) error
	AssignPrivileges(ctx context.Context, slug string) error
	Drop(ctx context.Context, slug string) error
}

// Backend is everything outside the process the controller talks to.
type Backend interface {
	Ping(ctx context.Context) error
	EnsureNetwork(ctx context.Context, name string) error
	EnsureVolume(ctx context.Context, name string) error
	RemoveVolume(ctx context.Context, name string) error
	ContainerRunning(ctx context.Context, name string) (bool, error)
	PortsInUse(ports []int) []int
	Database(container, rootPassword string) Database
	Services(dir, slug string) Services
	Installer(dir, slug, host string) Installer
	AddHosts(ctx context.Context, hosts []string) error
	RemoveHosts(ctx context.Context, hosts []string) error
	OpenInBrowser(host, url string) error
	GetLatestVersion(ctx context.Context) (string, error)
}

type gatewayBackend struct {
	*gateway.Gateway
}

func newGatewayBackend(g *gateway.Gateway) Backend {
	return gatewayBackend{Gateway: g}
}

func (b gatewayBackend) Database(container, rootPassword string) Database {
	return b.Gateway.Database(container, rootPassword)
}

func (b gatewayBackend) Services(dir, slug string) Services {
	return b.Gateway.Compose(dir, slug)
}

func (b gatewayBackend) Installer(dir, slug, host string) Installer {
	return b.Gateway.WordPress(dir, slug, host)
}
