// Package config manages host-level settings stored at ~/.amytools/config.yaml
// and AMYTOOLS_* environment variables: the vault root, logging, and the
// interval used by the extension's recurring timer.
package config
