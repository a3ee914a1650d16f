package configs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	SitesPath      = "sitesPath"
	ManageHosts    = "manageHosts"
	TemplatePath   = "templatePath"
	DBContainer    = "dbContainer"
	DBRootPassword = "dbRootPassword"
)

// Store is the per-user airlocal configuration. It is read lazily on the
// first Get or Set and fully rewritten on every Set; a single writer at a time
// is assumed.
type Store struct {
	viper      *viper.Viper
	configPath string
	values     map[string]interface{}
	loaded     bool
}

func ConfigDirectory() string {
	return filepath.Join(homeDir(), ".airlocal")
}

// Defaults is the table consulted for keys the operator never set.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		SitesPath:      filepath.Join(homeDir(), "airlocal-sites"),
		ManageHosts:    true,
		TemplatePath:   "",
		DBContainer:    "airlocal-db",
		DBRootPassword: "password",
	}
}

func New() *Store {
	return NewWithPath(filepath.Join(ConfigDirectory(), "config.json"))
}

func NewWithPath(configPath string) *Store {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("airlocal")
	v.AutomaticEnv()
	for k, d := range Defaults() {
		v.SetDefault(k, d)
	}

	return &Store{
		viper:      v,
		configPath: configPath,
	}
}

func (s *Store) Path() string {
	return s.configPath
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	values := map[string]interface{}{}
	b, err := ioutil.ReadFile(s.configPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "read config")
	}
	if len(bytes.TrimSpace(b)) > 0 {
		if err := json.Unmarshal(b, &values); err != nil {
			return errors.Wrapf(err, "parse %s", s.configPath)
		}
		if err := s.viper.ReadConfig(bytes.NewReader(b)); err != nil {
			return errors.Wrapf(err, "parse %s", s.configPath)
		}
	}

	s.values = values
	s.loaded = true
	return nil
}

func (s *Store) CreatePathIfNotExist(path string) error {
	dir := filepath.Dir(path)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, os.ModePerm)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) write() error {
	err := s.CreatePathIfNotExist(s.configPath)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(s.configPath, b, 0644)
}

func (s *Store) Get(key string) (interface{}, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return s.viper.Get(key), nil
}

func (s *Store) GetString(key string) (string, error) {
	if err := s.load(); err != nil {
		return "", err
	}
	return s.viper.GetString(key), nil
}

func (s *Store) GetBool(key string) (bool, error) {
	if err := s.load(); err != nil {
		return false, err
	}
	return s.viper.GetBool(key), nil
}

// Set stores value under key and persists the whole configuration.
func (s *Store) Set(key string, value interface{}) error {
	if err := s.load(); err != nil {
		return err
	}

	s.values[key] = value
	s.viper.Set(key, value)

	return s.write()
}

// SitesDirectory is the sitesPath setting with a leading ~ expanded.
func (s *Store) SitesDirectory() (string, error) {
	p, err := s.GetString(SitesPath)
	if err != nil {
		return "", err
	}
	return ResolveHome(p), nil
}

// All returns every known key with its effective value, for display.
func (s *Store) All() (map[string]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}

	keys := []string{}
	for k := range Defaults() {
		keys = append(keys, k)
	}
	for k := range s.values {
		if _, ok := Defaults()[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = fmt.Sprint(s.viper.Get(k))
	}
	return out, nil
}

// ParseValue converts command line input to the JSON type it represents.
func ParseValue(raw string) interface{} {
	switch strings.ToLower(raw) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}

func ResolveHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), strings.TrimPrefix(p, "~"))
	}
	return p
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}
