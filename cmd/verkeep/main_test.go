package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)

	return code, out.String(), errOut.String()
}

func lines(s string) []string {
	return strings.Fields(s)
}

const tags = "1.0.0\n1.0.1\n\n1.1.0\n  2.0.0  \nlatest\n1.1.0-rc.1\n"

func TestRun_Defaults(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, tags)
	require.Equal(t, exitOK, code)
	assert.Equal(t, []string{"2.0.0", "1.1.0", "1.0.1"}, lines(out))
}

func TestRun_FlagsOverrideDefaults(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want []string
	}{
		{"latest", []string{"--depth", "latest"}, []string{"2.0.0"}},
		{"ascending", []string{"-D", "major", "-S", "asc"}, []string{"1.1.0", "2.0.0"}},
		{"invert", []string{"--depth", "latest", "--invert"}, []string{"1.1.0", "1.0.1", "1.0.0"}},
		{"canonical", []string{"-D", "latest", "-c"}, []string{"v2.0.0"}},
		{"limit", []string{"-D", "patch", "-n", "2"}, []string{"2.0.0", "1.1.0"}},
		{
			"prereleases",
			[]string{"--release-only=false", "-D", "patch"},
			[]string{"2.0.0", "1.1.0", "1.1.0-rc.1", "1.0.1", "1.0.0"},
		},
		{"keep invalid", []string{"-D", "latest", "--release-only=false", "-k"}, []string{"2.0.0", "latest"}},
		{"range", []string{"-D", "patch", "--min", "1.0", "--max", "1.1", "-X"}, []string{"1.0.1", "1.0.0"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			code, out, errOut := runCLI(t, tags, tc.args...)
			require.Equal(t, exitOK, code, errOut)
			assert.Equal(t, tc.want, lines(out))
		})
	}
}

func TestRun_KeepFlags(t *testing.T) {
	t.Parallel()

	in := "2.1.0\n2.0.1\n2.0.0\n1.0.0\n"

	// start from the minor preset: latest patch per minor
	code, out, _ := runCLI(t, in, "--keep-major", "1", "--keep-minor", "2")
	require.Equal(t, exitOK, code)
	assert.Equal(t, []string{"2.1.0", "2.0.1"}, lines(out))

	code, out, _ = runCLI(t, in, "-D", "custom", "--keep-major", "-1", "--keep-minor", "1", "--keep-patch", "1")
	require.Equal(t, exitOK, code)
	assert.Equal(t, []string{"2.1.0", "1.0.0"}, lines(out))
}

func TestRun_ShowInvalid(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, tags, "--show-invalid", "-L", "warn")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, `"msg":"invalid version"`)
	assert.Contains(t, errOut, `"input":"latest"`)

	code, _, errOut = runCLI(t, tags, "-L", "warn")
	require.Equal(t, exitOK, code)
	assert.Empty(t, errOut)
}

func TestRun_Config(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "verkeep.yaml")
	cfg := "policy: strict\nkeep: {major: 2, minor: 1, patch: 1}\nsort: asc\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	in := "1.0.0\n1.1.0\n2.0.0\n2.1.0\n3.0.0\n"

	code, out, errOut := runCLI(t, in, "-C", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, []string{"2.1.0", "3.0.0"}, lines(out))

	code, out, _ = runCLI(t, in, "-C", path, "--sort", "desc", "--keep-major", "3")
	require.Equal(t, exitOK, code)
	assert.Equal(t, []string{"3.0.0", "2.1.0", "1.1.0"}, lines(out))
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cases := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"--bogus"}, exitFlags},
		{"bad choice", []string{"--depth", "forever"}, exitFlags},
		{"bad include", []string{"--include", "("}, exitIO},
		{"bad exclude", []string{"-e", "[a-"}, exitIO},
		{"custom without keep", []string{"-D", "custom"}, exitIO},
		{"keep conflicts with depth", []string{"-D", "major", "--keep-major", "1"}, exitIO},
		{"bad range", []string{"--min", "not-a-version"}, exitIO},
		{"missing config", []string{"-C", missing}, exitIO},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			code, out, errOut := runCLI(t, tags, tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Empty(t, out)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, "", "--help")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "verkeep")
	assert.Contains(t, out, "--keep-prev-minor")
}
