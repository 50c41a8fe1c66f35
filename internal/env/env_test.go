package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDotenv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDotenv(t, "# comment\n\nGRAVITY_TEST_A=1\nGRAVITY_TEST_B = \"quoted value\"\nGRAVITY_TEST_C='single'\nnot a pair\n=novalue\n")
	t.Setenv("GRAVITY_TEST_A", "")
	t.Setenv("GRAVITY_TEST_B", "")
	t.Setenv("GRAVITY_TEST_C", "")

	applied, err := Load(path, "GRAVITY_")
	require.NoError(t, err)
	assert.Equal(t, []string{"GRAVITY_TEST_A", "GRAVITY_TEST_B", "GRAVITY_TEST_C"}, applied)
	assert.Equal(t, "1", os.Getenv("GRAVITY_TEST_A"))
	assert.Equal(t, "quoted value", os.Getenv("GRAVITY_TEST_B"))
	assert.Equal(t, "single", os.Getenv("GRAVITY_TEST_C"))
}

func TestLoadSkipsOtherPrefixes(t *testing.T) {
	path := writeDotenv(t, "OTHER_TEST_KEY=x\nGRAVITY_TEST_D=2\n")
	t.Setenv("OTHER_TEST_KEY", "")
	t.Setenv("GRAVITY_TEST_D", "")

	applied, err := Load(path, "GRAVITY_")
	require.NoError(t, err)
	assert.Equal(t, []string{"GRAVITY_TEST_D"}, applied)
	assert.Empty(t, os.Getenv("OTHER_TEST_KEY"))
}

func TestLoadEnvironmentWins(t *testing.T) {
	path := writeDotenv(t, "GRAVITY_TEST_E=from-file\nGRAVITY_TEST_F=from-file\n")
	t.Setenv("GRAVITY_TEST_E", "from-shell")
	t.Setenv("GRAVITY_TEST_F", "")

	applied, err := Load(path, "GRAVITY_")
	require.NoError(t, err)
	assert.Equal(t, []string{"GRAVITY_TEST_F"}, applied)
	assert.Equal(t, "from-shell", os.Getenv("GRAVITY_TEST_E"))
	assert.Equal(t, "from-file", os.Getenv("GRAVITY_TEST_F"))
}

func TestLoadMissingFile(t *testing.T) {
	applied, err := Load(filepath.Join(t.TempDir(), "nope.env"), "")
	assert.NoError(t, err)
	assert.Empty(t, applied)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line       string
		key, value string
		ok         bool
	}{
		{"A=1", "A", "1", true},
		{"  A = \"x y\" ", "A", "x y", true},
		{"A='mixed\"", "A", "'mixed\"", true},
		{"A=", "A", "", true},
		{"# A=1", "", "", false},
		{"=1", "", "", false},
		{"novalue", "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := parseLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.key, key, tt.line)
		assert.Equal(t, tt.value, value, tt.line)
	}
}

func TestTypedLookups(t *testing.T) {
	t.Setenv("GRAVITY_TEST_INT", "42")
	t.Setenv("GRAVITY_TEST_U64", "18446744073709551615")
	t.Setenv("GRAVITY_TEST_F", " 6.674 ")
	t.Setenv("GRAVITY_TEST_BOOL", "true")
	t.Setenv("GRAVITY_TEST_STR", "#ffffff")
	t.Setenv("GRAVITY_TEST_EMPTY", "")

	n := 1
	require.NoError(t, Int("GRAVITY_TEST_INT", &n))
	assert.Equal(t, 42, n)

	var u uint64
	require.NoError(t, Uint64("GRAVITY_TEST_U64", &u))
	assert.Equal(t, uint64(18446744073709551615), u)

	var f float32
	require.NoError(t, Float32("GRAVITY_TEST_F", &f))
	assert.InDelta(t, 6.674, f, 1e-6)

	var b bool
	require.NoError(t, Bool("GRAVITY_TEST_BOOL", &b))
	assert.True(t, b)

	s := "default"
	String("GRAVITY_TEST_STR", &s)
	assert.Equal(t, "#ffffff", s)

	keep := 7
	require.NoError(t, Int("GRAVITY_TEST_EMPTY", &keep))
	require.NoError(t, Int("GRAVITY_TEST_UNSET_XYZ", &keep))
	assert.Equal(t, 7, keep)
}

func TestTypedLookupErrors(t *testing.T) {
	t.Setenv("GRAVITY_TEST_BAD", "abc")
	var n int
	var f float32
	var b bool
	var u uint64
	assert.ErrorContains(t, Int("GRAVITY_TEST_BAD", &n), "GRAVITY_TEST_BAD")
	assert.Error(t, Float32("GRAVITY_TEST_BAD", &f))
	assert.Error(t, Bool("GRAVITY_TEST_BAD", &b))
	assert.Error(t, Uint64("GRAVITY_TEST_BAD", &u))
	assert.Zero(t, n)
}
