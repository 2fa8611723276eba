package configs

import (
	"flag"
	"os"

	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file location: the --config flag,
// then the BRGY_ADMIN_CONFIG env var, then the usual places. An empty result
// is fine: Load falls back to built-in defaults.
func DetermineConfigPath() string {
	return resolveConfigPath(flag.CommandLine, os.Args[1:])
}

func resolveConfigPath(fs *flag.FlagSet, args []string) string {
	var configPath string

	fs.StringVar(&configPath, "config", "", "path to config file")
	_ = fs.Parse(args)

	if configPath == "" {
		configPath = env.GetString("BRGY_ADMIN_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/brgy-admin/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
