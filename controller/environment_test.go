package controller_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/45air/airlocal/configs"
	"github.com/45air/airlocal/entity"
	airerrors "github.com/45air/airlocal/errors"
	"github.com/stretchr/testify/require"
)

func seedEnvironment(t *testing.T, fx *fixture, hosts ...string) *entity.EnvironmentRecord {
	path := filepath.Join(fx.sites, filepath.Base(hosts[0]))
	require.NoError(t, os.MkdirAll(path, 0755))
	record := &entity.EnvironmentRecord{Path: path, Hosts: hosts}
	require.NoError(t, entity.WriteRecord(record))
	record, err := entity.ReadRecord(path)
	require.NoError(t, err)
	return record
}

func TestGetEnvironmentNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.ctrl.GetEnvironment("missing.test")
	require.Equal(t, airerrors.EnvironmentNotFound, err)
}

func TestListEnvironments(t *testing.T) {
	fx := newFixture(t)

	records, err := fx.ctrl.ListEnvironments()
	require.NoError(t, err)
	require.Empty(t, records)

	_, err = fx.ctrl.Provision(context.Background(), minimalSpec())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(fx.sites, "scratch"), 0755))

	records, err = fx.ctrl.ListEnvironments()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "docker.test", records[0].PrimaryHost())
	require.Equal(t, "docker-test", records[0].Slug)
	require.False(t, records[0].Incomplete)

	// A directory without a record is what a failed create leaves behind.
	require.Equal(t, "scratch", records[1].Slug)
	require.True(t, records[1].Incomplete)
}

func TestStartEnvironmentEnsuresSharedInfrastructure(t *testing.T) {
	fx := newFixture(t)
	seedEnvironment(t, fx, "docker-test")

	require.NoError(t, fx.ctrl.StartEnvironment(context.Background(), "docker.test"))
	require.Equal(t, []string{
		"running:airlocal-db",
		"ports",
		"network:airlocaldocker",
		"volume:airlocalCache",
		"up airlocal",
		"up docker-test",
	}, fx.backend.calls)
	require.Empty(t, fx.reporter.warnings)
}

func TestStartEnvironmentWarnsAboutPortConflicts(t *testing.T) {
	fx := newFixture(t)
	seedEnvironment(t, fx, "docker-test")
	fx.backend.busy = []int{80, 3306}

	require.NoError(t, fx.ctrl.StartEnvironment(context.Background(), "docker.test"))
	require.Len(t, fx.reporter.warnings, 1)
	require.Equal(t, "port check", fx.reporter.warnings[0].Phase)
	require.Contains(t, fx.reporter.warnings[0].Error(), "ports 80, 3306 are already in use")
	require.Contains(t, fx.backend.calls, "up docker-test")
}

func TestStartEnvironmentSkipsPortCheckWhenStackIsRunning(t *testing.T) {
	fx := newFixture(t)
	seedEnvironment(t, fx, "docker-test")
	fx.backend.busy = []int{80, 3306}
	fx.backend.running["airlocal-db"] = true

	require.NoError(t, fx.ctrl.StartEnvironment(context.Background(), "docker.test"))
	require.Empty(t, fx.reporter.warnings)
	require.NotContains(t, fx.backend.calls, "ports")
}

func TestStopEnvironment(t *testing.T) {
	fx := newFixture(t)
	seedEnvironment(t, fx, "docker-test")

	require.NoError(t, fx.ctrl.StopEnvironment(context.Background(), "http://docker.test/"))
	require.Equal(t, []string{"stop docker-test"}, fx.backend.calls)
}

func TestDeleteEnvironment(t *testing.T) {
	fx := newFixture(t)
	record := seedEnvironment(t, fx, "docker-test", "docker2.test")

	warnings, err := fx.ctrl.DeleteEnvironment(context.Background(), record)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, []string{
		"down docker-test",
		"db:drop docker-test",
		"hosts:remove docker-test docker2.test",
	}, fx.backend.calls)

	_, err = os.Stat(record.Path)
	require.True(t, os.IsNotExist(err))
}

func TestDeleteEnvironmentIsBestEffort(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.store.Set(configs.ManageHosts, false))
	record := seedEnvironment(t, fx, "docker-test")
	fx.backend.failures["down docker-test"] = errors.New("no such project")
	fx.backend.failures["db:drop docker-test"] = errors.New("container not running")

	warnings, err := fx.ctrl.DeleteEnvironment(context.Background(), record)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	require.Equal(t, "environment stop", warnings[0].Phase)
	require.Equal(t, "database", warnings[1].Phase)
	require.NotContains(t, fx.backend.calls, "hosts:remove docker-test")

	_, err = os.Stat(record.Path)
	require.True(t, os.IsNotExist(err))
}

func TestClearCache(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.ctrl.ClearCache(context.Background()))
	require.Equal(t, []string{"rm-volume:airlocalCache", "volume:airlocalCache"}, fx.backend.calls)
}

func TestCheckDocker(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.ctrl.CheckDocker(context.Background()))

	fx.backend.failures["ping"] = errors.New("connection refused")
	require.Equal(t, airerrors.DockerNotRunning, fx.ctrl.CheckDocker(context.Background()))
}

func TestDeleteEnvironmentAfterFailedCreate(t *testing.T) {
	fx := newFixture(t)
	fx.backend.failures["db:create docker-test"] = errors.New("mysql exited with code 1")

	_, err := fx.ctrl.Provision(context.Background(), minimalSpec())
	require.Error(t, err)

	_, err = fx.ctrl.GetEnvironment("docker.test")
	require.Equal(t, airerrors.EnvironmentNotFound, err)

	record, err := fx.ctrl.FindEnvironment("docker.test")
	require.NoError(t, err)
	require.True(t, record.Incomplete)
	require.Equal(t, "docker-test", record.Slug)
	require.Equal(t, filepath.Join(fx.sites, "docker-test"), record.Path)

	fx.backend.calls = nil
	warnings, err := fx.ctrl.DeleteEnvironment(context.Background(), record)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, []string{"down docker-test", "db:drop docker-test"}, fx.backend.calls)
	require.Len(t, fx.reporter.infos, 1)

	_, err = os.Stat(record.Path)
	require.True(t, os.IsNotExist(err))

	// The host can be provisioned again once the leftovers are gone.
	delete(fx.backend.failures, "db:create docker-test")
	_, err = fx.ctrl.Provision(context.Background(), minimalSpec())
	require.NoError(t, err)
}

func TestFindEnvironmentWithoutDirectory(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.ctrl.FindEnvironment("missing.test")
	require.Equal(t, airerrors.EnvironmentNotFound, err)
}
