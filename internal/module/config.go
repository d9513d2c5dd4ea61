package module

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional project-root marker SPEC_FULL.md §4
// names alongside the environment-variable configuration: a
// `tesserac.yaml` file that pins the standard-library location and
// adds extra module search paths without requiring TESSERAC_STDLIB /
// TESSERAC_PATH to be set in the shell.
const ConfigFileName = "tesserac.yaml"

// ProjectConfig is tesserac.yaml's schema. Every field is optional; an
// absent or unparsable file simply leaves the environment-derived
// defaults in NewResolver untouched.
type ProjectConfig struct {
	StdlibPath  string   `yaml:"stdlib_path"`
	SearchPaths []string `yaml:"search_paths"`
}

// loadProjectConfig reads tesserac.yaml from projectRoot, returning a
// zero ProjectConfig (not an error) if the file is absent: the marker
// is optional, per findProjectRoot treating its mere existence as
// enough to anchor a project root even with no body.
func loadProjectConfig(projectRoot string) (ProjectConfig, error) {
	var cfg ProjectConfig
	data, err := os.ReadFile(filepath.Join(projectRoot, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
