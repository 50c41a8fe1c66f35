package settings

import (
	"os"
	"path/filepath"
	"testing"

	"gravity/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Zero(t, s.MaxFrameTime, "raw frame delta by default")
	cfg, err := s.Physics()
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultConfig(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravity.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 250\nseed: 9\nshell: true\nambient: \"#ffffff\"\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, s.Count)
	assert.Equal(t, uint64(9), s.Seed)
	assert.True(t, s.Shell)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.AmbientColor())
	assert.Equal(t, Default().G, s.G)
	assert.Equal(t, Default().RadiusMax, s.RadiusMax)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravity.toml")
	require.NoError(t, os.WriteFile(path, []byte("count = 12\ng = 1.5\nlight_fraction = 0.5\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Count)
	assert.InDelta(t, 1.5, s.G, 1e-6)
	assert.InDelta(t, 0.5, s.LightFraction, 1e-6)
	assert.Equal(t, Default().Density, s.Density)
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: [oops"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "settings: parse")
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := Default()
			want.Count = 77
			want.Seed = 123
			want.ShowFPS = true
			require.NoError(t, want.Save(path))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("GRAVITY_SEED=31\n"), 0644))
	t.Setenv("GRAVITY_SEED", "")
	t.Setenv("GRAVITY_COUNT", "5")
	t.Setenv("GRAVITY_SHELL", "true")
	t.Setenv("GRAVITY_AMBIENT", "#000")

	s := Default()
	applied, err := s.ApplyEnv(dotenv)
	require.NoError(t, err)
	assert.Equal(t, []string{"GRAVITY_SEED"}, applied)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, uint64(31), s.Seed)
	assert.True(t, s.Shell)
	assert.Equal(t, mgl32.Vec3{}, s.AmbientColor())
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("GRAVITY_COUNT", "many")
	s := Default()
	_, err := s.ApplyEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "GRAVITY_COUNT")
}

func TestApplyEnvShellBeatsDotenv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("GRAVITY_COUNT=9\nGRAVITY_FOV=60\nHOME_TEST_OTHER=1\n"), 0644))
	t.Setenv("GRAVITY_COUNT", "4")
	t.Setenv("GRAVITY_FOV", "")
	t.Setenv("HOME_TEST_OTHER", "")

	s := Default()
	applied, err := s.ApplyEnv(dotenv)
	require.NoError(t, err)
	assert.Equal(t, []string{"GRAVITY_FOV"}, applied)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, float32(60), s.FOV)
	assert.Empty(t, os.Getenv("HOME_TEST_OTHER"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"zero count", func(s *Settings) { s.Count = 0 }, "count"},
		{"zero density", func(s *Settings) { s.Density = 0 }, "density"},
		{"zero sun scale", func(s *Settings) { s.SunScale = 0 }, "sun_scale"},
		{"negative sd", func(s *Settings) { s.VelocitySD = -1 }, "velocity_sd"},
		{"radius order", func(s *Settings) { s.RadiusMin = 5; s.RadiusMax = 5 }, "radius_min"},
		{"zero radius", func(s *Settings) { s.RadiusMin = 0 }, "radius_min"},
		{"light fraction", func(s *Settings) { s.LightFraction = 1.5 }, "light_fraction"},
		{"ambient", func(s *Settings) { s.Ambient = "blue" }, "ambient"},
		{"window", func(s *Settings) { s.Width = 0 }, "window"},
		{"fov", func(s *Settings) { s.FOV = 180 }, "fov"},
		{"frame cap", func(s *Settings) { s.MaxFrameTime = -0.1 }, "max_frame_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			_, err = s.Physics()
			assert.Error(t, err)
		})
	}
}

func TestValidateJoinsProblems(t *testing.T) {
	s := Default()
	s.Count = 0
	s.Density = -1
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
	assert.Contains(t, err.Error(), "density")
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1a1a24")
	require.NoError(t, err)
	assert.InDelta(t, float32(0x1a)/255, c[0], 1e-6)
	assert.InDelta(t, float32(0x24)/255, c[2], 1e-6)

	c, err = ParseHexColor("#f00")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c)

	// Same forms as the overlay stylesheet: alpha accepted and ignored, # required.
	c, err = ParseHexColor("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c)
	_, err = ParseHexColor("f00")
	assert.Error(t, err)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#gggggg")
	assert.Error(t, err)
}
