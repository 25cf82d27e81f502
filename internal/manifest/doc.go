// Package manifest handles parsing and validation of extension manifests
// (id, name, version, minAppVersion, ...). Manifests are YAML documents
// validated against an embedded JSON schema, and checked for compatibility
// with the running host version using semver.
package manifest
