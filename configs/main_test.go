package configs_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/45air/airlocal/configs"
	"github.com/stretchr/testify/require"
)

func TestGetFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".airlocal", "config.json")
	store := configs.NewWithPath(path)

	manage, err := store.GetBool(configs.ManageHosts)
	require.NoError(t, err)
	require.True(t, manage)

	container, err := store.GetString(configs.DBContainer)
	require.NoError(t, err)
	require.Equal(t, "airlocal-db", container)

	// Reading never creates the file.
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestSetPersistsWholeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".airlocal", "config.json")
	store := configs.NewWithPath(path)

	require.NoError(t, store.Set(configs.SitesPath, "/srv/sites"))
	require.NoError(t, store.Set(configs.ManageHosts, false))

	raw, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"sitesPath":"/srv/sites","manageHosts":false}`, string(raw))

	reloaded := configs.NewWithPath(path)
	sites, err := reloaded.SitesDirectory()
	require.NoError(t, err)
	require.Equal(t, "/srv/sites", sites)

	manage, err := reloaded.GetBool(configs.ManageHosts)
	require.NoError(t, err)
	require.False(t, manage)
}

func TestExistingFileIsLoadedOnFirstAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{"sitesPath":"/a","custom":"x"}`), 0644))

	store := configs.NewWithPath(path)
	require.NoError(t, store.Set(configs.ManageHosts, false))

	raw, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"sitesPath":"/a","custom":"x","manageHosts":false}`, string(raw))

	all, err := store.All()
	require.NoError(t, err)
	require.Equal(t, "x", all["custom"])
	require.Equal(t, "false", all[configs.ManageHosts])
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("AIRLOCAL_SITESPATH", "/tmp/override")

	store := configs.NewWithPath(filepath.Join(t.TempDir(), "config.json"))
	sites, err := store.GetString(configs.SitesPath)
	require.NoError(t, err)
	require.Equal(t, "/tmp/override", sites)
}

func TestParseValue(t *testing.T) {
	require.Equal(t, true, configs.ParseValue("true"))
	require.Equal(t, false, configs.ParseValue("no"))
	require.Equal(t, 3306, configs.ParseValue("3306"))
	require.Equal(t, "~/sites", configs.ParseValue("~/sites"))
}
