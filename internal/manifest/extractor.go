package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the manifest file sockbot looks for when none is specified.
const DefaultPath = "sockbot.yaml"

// DefaultVersionField is the dotted field path holding the project version.
const DefaultVersionField = "package.version"

// Extract reads the manifest at path and returns the string value at the
// dotted field path. It fails if the file is missing or malformed, if the
// field path does not resolve, or if the resolved value is not a scalar
// string. Extract has no side effects beyond reading the file.
func Extract(path, fieldPath string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", newExtractError(path, fieldPath, "manifest file not found",
				"run the command from the project root, or pass --manifest", err)
		}
		return "", newExtractError(path, fieldPath, "failed to read manifest", "", err)
	}

	doc, err := decode(path, data)
	if err != nil {
		return "", err
	}

	value, err := resolve(path, doc, fieldPath)
	if err != nil {
		return "", err
	}

	return value, nil
}

// ExtractVersion extracts the field at fieldPath and validates that it is a
// well-formed semantic version (e.g. "1.2.3"). The returned string is exactly
// the value present in the manifest, without any "v" prefix added.
func ExtractVersion(path, fieldPath string) (string, error) {
	version, err := Extract(path, fieldPath)
	if err != nil {
		return "", err
	}

	if _, err := semver.StrictNewVersion(version); err != nil {
		return "", newExtractError(path, fieldPath,
			fmt.Sprintf("%q is not a valid semantic version", version),
			"the version must look like MAJOR.MINOR.PATCH, e.g. 1.2.3", err)
	}

	return version, nil
}

// decode parses the manifest bytes into a generic document based on the file
// extension. YAML is the default for unrecognized extensions.
func decode(path string, data []byte) (map[string]any, error) {
	doc := map[string]any{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, newExtractError(path, "", "malformed TOML manifest", "", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, newExtractError(path, "", "malformed JSON manifest", "", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, newExtractError(path, "", "malformed YAML manifest", "", err)
		}
	}

	return doc, nil
}

// resolve walks the dotted field path through nested tables and returns the
// scalar string at the leaf.
func resolve(path string, doc map[string]any, fieldPath string) (string, error) {
	if strings.TrimSpace(fieldPath) == "" {
		return "", newExtractError(path, fieldPath, "empty field path", "", nil)
	}

	segments := strings.Split(fieldPath, ".")
	var current any = doc

	for i, segment := range segments {
		table, ok := current.(map[string]any)
		if !ok {
			resolved := strings.Join(segments[:i], ".")
			return "", newExtractError(path, fieldPath,
				fmt.Sprintf("%q does not contain nested fields", resolved), "", nil)
		}

		next, ok := table[segment]
		if !ok {
			return "", newExtractError(path, fieldPath,
				fmt.Sprintf("field %q not found", segment),
				fmt.Sprintf("add %s to the manifest", fieldPath), nil)
		}
		current = next
	}

	value, ok := current.(string)
	if !ok {
		return "", newExtractError(path, fieldPath,
			fmt.Sprintf("field is %T, expected a string", current),
			"quote the value so it is parsed as a string", nil)
	}

	if strings.TrimSpace(value) == "" {
		return "", newExtractError(path, fieldPath, "field is empty", "", nil)
	}

	return value, nil
}
