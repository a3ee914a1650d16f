package gateway

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/docker/docker/client"
	"github.com/pkg/errors"
)

// CommandRunner runs an external program to completion. Interactive commands
// get the operator's terminal.
type CommandRunner interface {
	Run(ctx context.Context, dir string, interactive bool, name string, args ...string) error
}

type execRunner struct {
	out io.Writer
}

func (r execRunner) Run(ctx context.Context, dir string, interactive bool, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.out
	cmd.Stderr = r.out
	if interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s %s", name, firstArg(args))
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

type Gateway struct {
	runner CommandRunner
	docker dockerAPI
	out    io.Writer
}

func New() *Gateway {
	return &Gateway{
		runner: execRunner{out: os.Stdout},
		out:    os.Stdout,
	}
}

// NewWithRunner is used where commands must be captured instead of run.
func NewWithRunner(runner CommandRunner, docker dockerAPI) *Gateway {
	return &Gateway{
		runner: runner,
		docker: docker,
		out:    io.Discard,
	}
}

// dockerClient connects lazily; commands that never touch the engine API do
// not need a daemon.
func (g *Gateway) dockerClient() (dockerAPI, error) {
	if g.docker != nil {
		return g.docker, nil
	}
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.Wrap(err, "create docker client")
	}
	g.docker = cli
	return cli, nil
}

func (g *Gateway) Close() error {
	if closer, ok := g.docker.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
