package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/peergen/errors"
)

const initHeader = `# peergen configuration
#
# model.path                - protocol metamodel JSON file
# model.version_constraint  - semver range the model version must satisfy ("" accepts any)
# output.dir                - directory the generated artifacts are written to
# output.types_module       - module name of the shared types artifact
# output.attribution        - tool name in the generated-file header
# log.json                  - structured JSON logs instead of console output

`

// WriteDefault writes a commented default config file. An existing file is
// only overwritten when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Newf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	defaults := map[string]interface{}{
		"model": map[string]interface{}{
			"path":               "metaModel.json",
			"version_constraint": "",
		},
		"output": map[string]interface{}{
			"dir":          "generated",
			"types_module": "protocol",
			"attribution":  "peergen",
		},
		"log": map[string]interface{}{
			"json": false,
		},
	}

	body, err := toml.Marshal(defaults)
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	content := append([]byte(initHeader), body...)
	if err := os.WriteFile(path, content, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	return nil
}
