// Package config defines the format-agnostic declaration model for components
// and chains, along with the Loader interfaces for reading it from files.
//
// The `config.Model` holds declarations exactly as written: ids and
// references are still strings. Turning it into a validated ChainsModel is
// the job of the model package. Concrete file formats (HCL, YAML) are
// provided in separate packages and combined with MultiLoader.
package config
