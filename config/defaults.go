package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/peergen/version"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Model defaults
	v.SetDefault("model.path", "metaModel.json")
	v.SetDefault("model.version_constraint", "") // any version

	// Output defaults
	v.SetDefault("output.dir", "generated")
	v.SetDefault("output.types_module", "protocol")
	v.SetDefault("output.attribution", version.Attribution())

	// Log defaults
	v.SetDefault("log.json", false)
}
