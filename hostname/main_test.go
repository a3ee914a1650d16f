package hostname_test

import (
	"testing"

	airerrors "github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/hostname"
	"github.com/stretchr/testify/require"
)

var normalizeTest = []struct {
	name string
	in   string
	out  string
}{
	{name: "Bare hostname is unchanged", in: "docker.test", out: "docker.test"},
	{name: "Scheme is stripped", in: "http://docker.test", out: "docker.test"},
	{name: "Scheme is case-insensitive", in: "HTTPS://docker.test", out: "docker.test"},
	{name: "Path is dropped", in: "https://docker.test/wp-admin/index.php", out: "docker.test"},
	{name: "Whitespace is removed", in: "  docker .test\t", out: "docker.test"},
	{name: "Empty input stays empty", in: "", out: ""},
	{name: "Only a scheme", in: "http://", out: ""},
}

var proxyTest = []struct {
	name string
	in   string
	out  string
}{
	{name: "Scheme is added", in: "example.com", out: "http://example.com"},
	{name: "Trailing slash is removed", in: "https://example.com/", out: "https://example.com"},
	{name: "Existing scheme is kept", in: "HTTP://example.com", out: "HTTP://example.com"},
	{name: "Short values are left alone", in: "abc", out: "abc"},
	{name: "Several trailing slashes", in: "example.com/uploads//", out: "http://example.com/uploads"},
}

var slugTest = []struct {
	name string
	in   string
	out  string
}{
	{name: "Dots become hyphens", in: "docker.test", out: "docker-test"},
	{name: "Uppercase is lowered", in: "My.Site.TEST", out: "my-site-test"},
	{name: "Subdomains are kept apart", in: "a.b.test", out: "a-b-test"},
}

func TestNormalize(t *testing.T) {
	for _, tt := range normalizeTest {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.out, hostname.Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"docker.test",
		"http://http://docker.test",
		" https://docker.test/path ",
		"HTTP://HTTPS://x",
		"a b/c d",
	}
	for _, tt := range normalizeTest {
		inputs = append(inputs, tt.in)
	}
	for _, in := range inputs {
		once := hostname.Normalize(in)
		require.Equal(t, once, hostname.Normalize(once), "input %q", in)
	}
}

func TestNormalizeProxyURL(t *testing.T) {
	for _, tt := range proxyTest {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.out, hostname.NormalizeProxyURL(tt.in))
		})
	}
}

func TestSlug(t *testing.T) {
	for _, tt := range slugTest {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.out, hostname.Slug(tt.in))
		})
	}
}

func TestSplit(t *testing.T) {
	require.Equal(t, []string{"docker1.test", "docker2.test"}, hostname.Split(" http://docker1.test   docker2.test/ "))
	require.Empty(t, hostname.Split("   "))
}

func TestDefaultProxy(t *testing.T) {
	require.Equal(t, "http://docker.com", hostname.DefaultProxy("docker.test"))
	require.Equal(t, "http://example.org", hostname.DefaultProxy("example.org"))
}

func TestValidateNotEmpty(t *testing.T) {
	require.NoError(t, hostname.ValidateNotEmpty("docker.test"))

	err := hostname.ValidateNotEmpty("   ")
	var validation *airerrors.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "This field is required", validation.Message)
}
