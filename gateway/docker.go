package gateway

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/45air/airlocal/constants"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/pkg/errors"
)

// dockerAPI is the part of the engine client airlocal uses.
type dockerAPI interface {
	Ping(ctx context.Context) (types.Ping, error)
	NetworkInspect(ctx context.Context, networkID string, options types.NetworkInspectOptions) (types.NetworkResource, error)
	NetworkCreate(ctx context.Context, name string, options types.NetworkCreate) (types.NetworkCreateResponse, error)
	ContainerInspect(ctx context.Context, container string) (types.ContainerJSON, error)
	VolumeInspect(ctx context.Context, volumeID string) (volume.Volume, error)
	VolumeCreate(ctx context.Context, options volume.CreateOptions) (volume.Volume, error)
	VolumeRemove(ctx context.Context, volumeID string, force bool) error
	ContainerExecCreate(ctx context.Context, container string, config types.ExecConfig) (types.IDResponse, error)
	ContainerExecAttach(ctx context.Context, execID string, config types.ExecStartCheck) (types.HijackedResponse, error)
	ContainerExecInspect(ctx context.Context, execID string) (types.ContainerExecInspect, error)
}

// Ping validates connectivity to the Docker daemon.
func (g *Gateway) Ping(ctx context.Context) error {
	cli, err := g.dockerClient()
	if err != nil {
		return err
	}
	ping, err := cli.Ping(ctx)
	if err != nil {
		return errors.Wrap(err, "docker ping")
	}
	if ping.APIVersion == "" {
		return fmt.Errorf("docker ping returned empty API version")
	}
	return nil
}

// EnsureNetwork creates the shared bridge network unless it exists. The
// subnet is fixed so the global stack can pin the DNS and proxy addresses.
func (g *Gateway) EnsureNetwork(ctx context.Context, name string) error {
	cli, err := g.dockerClient()
	if err != nil {
		return err
	}
	_, err = cli.NetworkInspect(ctx, name, types.NetworkInspectOptions{})
	if err == nil {
		return nil
	}
	if !errdefs.IsNotFound(err) {
		return errors.Wrapf(err, "inspect network %s", name)
	}

	_, err = cli.NetworkCreate(ctx, name, types.NetworkCreate{
		Driver: "bridge",
		IPAM: &network.IPAM{
			Config: []network.IPAMConfig{{Subnet: constants.NetworkSubnet}},
		},
	})
	if err != nil && !errdefs.IsConflict(err) {
		return errors.Wrapf(err, "create network %s", name)
	}
	return nil
}

// EnsureVolume creates a named volume unless it exists.
func (g *Gateway) EnsureVolume(ctx context.Context, name string) error {
	cli, err := g.dockerClient()
	if err != nil {
		return err
	}
	_, err = cli.VolumeInspect(ctx, name)
	if err == nil {
		return nil
	}
	if !errdefs.IsNotFound(err) {
		return errors.Wrapf(err, "inspect volume %s", name)
	}

	_, err = cli.VolumeCreate(ctx, volume.CreateOptions{Name: name})
	if err != nil && !errdefs.IsConflict(err) {
		return errors.Wrapf(err, "create volume %s", name)
	}
	return nil
}

// ContainerRunning reports whether the named container exists and is up.
func (g *Gateway) ContainerRunning(ctx context.Context, name string) (bool, error) {
	cli, err := g.dockerClient()
	if err != nil {
		return false, err
	}
	info, err := cli.ContainerInspect(ctx, name)
	if errdefs.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "inspect container %s", name)
	}
	return info.ContainerJSONBase != nil && info.State != nil && info.State.Running, nil
}

func (g *Gateway) RemoveVolume(ctx context.Context, name string) error {
	cli, err := g.dockerClient()
	if err != nil {
		return err
	}
	if err := cli.VolumeRemove(ctx, name, true); err != nil && !errdefs.IsNotFound(err) {
		return errors.Wrapf(err, "remove volume %s", name)
	}
	return nil
}

// ExecSQL runs statement with the mysql client inside container.
func (g *Gateway) ExecSQL(ctx context.Context, container, rootPassword, statement string) error {
	cli, err := g.dockerClient()
	if err != nil {
		return err
	}

	created, err := cli.ContainerExecCreate(ctx, container, types.ExecConfig{
		Cmd:          []string{"mysql", "-uroot", "-p" + rootPassword, "-e", statement},
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		if errdefs.IsNotFound(err) {
			return fmt.Errorf("database container %s is not running", container)
		}
		return errors.Wrap(err, "create exec instance")
	}

	resp, err := cli.ContainerExecAttach(ctx, created.ID, types.ExecStartCheck{})
	if err != nil {
		return errors.Wrap(err, "start exec")
	}
	defer resp.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, resp.Reader); err != nil {
		return errors.Wrap(err, "read exec output")
	}

	inspect, err := cli.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return errors.Wrap(err, "inspect exec")
	}
	if inspect.ExitCode != 0 {
		return fmt.Errorf("mysql exited with code %d: %s", inspect.ExitCode, strings.TrimSpace(stderr.String()))
	}
	return nil
}
