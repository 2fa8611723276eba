package configs

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Load_Without_File_Applies_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := Load("")
	req.NoError(err)

	req.Equal("0.0.0.0", cfg.HTTP.Host)
	req.Equal(uint16(8080), cfg.HTTP.Port)
	req.Equal(10*time.Second, cfg.HTTP.ReadTimeout)
	req.Equal(30*time.Second, cfg.HTTP.WriteTimeout)
	req.Equal([]string{"*"}, cfg.HTTP.AllowedOrigins)

	req.Equal("0.0.0.0", cfg.Broker.Host)
	req.Equal(uint16(8081), cfg.Broker.Port)
	req.Equal("ws://localhost:8081/ws", cfg.Broker.URL)

	req.Equal("mongodb://localhost:27017", cfg.Mongo.URI)
	req.Equal("brgy_admin", cfg.Mongo.Database)
}

func Test_Load_Env_Overrides_Win(t *testing.T) {
	req := require.New(t)

	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "5")
	t.Setenv("BROKER_URL", "ws://broker.internal:8081/ws")
	t.Setenv("MONGODB_DATABASE", "brgy_admin_test")

	cfg, err := Load("")
	req.NoError(err)

	req.Equal(uint16(9090), cfg.HTTP.Port)
	req.Equal(5*time.Second, cfg.HTTP.ReadTimeout)
	req.Equal("ws://broker.internal:8081/ws", cfg.Broker.URL)
	req.Equal("brgy_admin_test", cfg.Mongo.Database)
}

func Test_Load_Reads_Yaml_And_Fills_Missing_Keys(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http:
  port: 3000
broker:
  url: ws://localhost:4000/ws
mongo:
  database: brgy_staging
`
	req.NoError(os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	req.NoError(err)

	req.Equal(uint16(3000), cfg.HTTP.Port)
	req.Equal("ws://localhost:4000/ws", cfg.Broker.URL)
	req.Equal("brgy_staging", cfg.Mongo.Database)

	// Keys the file omits still come from defaults.
	req.Equal("0.0.0.0", cfg.HTTP.Host)
	req.Equal(uint16(8081), cfg.Broker.Port)
	req.Equal("mongodb://localhost:27017", cfg.Mongo.URI)
}

func Test_Load_Missing_File_Is_An_Error(t *testing.T) {
	req := require.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	req.Error(err)
}

func Test_ConfigPath_Flag_Wins(t *testing.T) {
	req := require.New(t)

	t.Setenv("BRGY_ADMIN_CONFIG", "/from/env.yaml")

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	path := resolveConfigPath(fs, []string{"--config=/from/flag.yaml"})
	req.Equal("/from/flag.yaml", path)
}

func Test_ConfigPath_Falls_Back_To_Env(t *testing.T) {
	req := require.New(t)

	t.Setenv("BRGY_ADMIN_CONFIG", "/from/env.yaml")

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	path := resolveConfigPath(fs, nil)
	req.Equal("/from/env.yaml", path)
}

func Test_ConfigPath_Discovers_Local_File(t *testing.T) {
	req := require.New(t)

	t.Setenv("BRGY_ADMIN_CONFIG", "")

	dir := t.TempDir()
	req.NoError(os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("http:\n  port: 3000\n"), 0o600))
	wd, err := os.Getwd()
	req.NoError(err)
	req.NoError(os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	path := resolveConfigPath(fs, nil)
	req.Equal("./config.yaml", path)
}
