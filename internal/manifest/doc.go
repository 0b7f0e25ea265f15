// Package manifest reads project manifest files and extracts version
// information from them.
//
// A manifest is a structured document (YAML, TOML or JSON, chosen by file
// extension) that describes the project being released. The only contract
// sockbot relies on is that the manifest exposes a dotted field path (for
// example "package.version") resolving to a semantic version string.
package manifest
