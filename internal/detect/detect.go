// Package detect inspects a project's dependency manifests to determine
// which styling frameworks it uses. The two booleans it produces feed the
// token-health pillar of the health score. Detection is pure file
// inspection; no subprocesses are spawned.
package detect

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Result represents the detected styling context of a project.
type Result struct {
	// HasUtilityFramework is true for utility-class frameworks that ship
	// an implicit design scale (Tailwind and friends).
	HasUtilityFramework bool

	// HasDesignSystemLibrary is true for component libraries that carry
	// their own tokens (MUI, Chakra, and friends).
	HasDesignSystemLibrary bool

	// Frameworks lists the detected package names, sorted.
	Frameworks []string
}

// utilityFrameworks ship atomic utility classes backed by a design scale.
var utilityFrameworks = map[string]bool{
	"tailwindcss":  true,
	"@unocss/core": true,
	"unocss":       true,
	"windicss":     true,
	"@twind/core":  true,
	"tachyons":     true,
}

// designSystemLibraries are component libraries with their own token sets.
var designSystemLibraries = map[string]bool{
	"@mui/material":     true,
	"@material-ui/core": true,
	"@chakra-ui/react":  true,
	"antd":              true,
	"@mantine/core":     true,
	"@radix-ui/themes":  true,
	"@shopify/polaris":  true,
	"react-bootstrap":   true,
	"bootstrap":         true,
	"vuetify":           true,
	"@carbon/react":     true,
	"styled-system":     true,
}

// tailwindConfigs are files whose presence implies Tailwind even when the
// manifest is missing or incomplete (e.g. monorepo roots).
var tailwindConfigs = []string{
	"tailwind.config.js",
	"tailwind.config.cjs",
	"tailwind.config.mjs",
	"tailwind.config.ts",
}

// Detect inspects the project rooted at root. A missing or unreadable
// package.json is not an error; detection simply reports nothing found.
func Detect(root string) Result {
	result := Result{}
	found := make(map[string]bool)

	for name := range readDependencies(filepath.Join(root, "package.json")) {
		switch {
		case utilityFrameworks[name]:
			result.HasUtilityFramework = true
			found[name] = true
		case designSystemLibraries[name]:
			result.HasDesignSystemLibrary = true
			found[name] = true
		}
	}

	if !result.HasUtilityFramework {
		for _, cfg := range tailwindConfigs {
			if _, err := os.Stat(filepath.Join(root, cfg)); err == nil {
				result.HasUtilityFramework = true
				found["tailwindcss"] = true
				break
			}
		}
	}

	for name := range found {
		result.Frameworks = append(result.Frameworks, name)
	}
	sort.Strings(result.Frameworks)

	return result
}

// packageManifest is the subset of package.json detection cares about.
type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// readDependencies merges dependencies and devDependencies from a
// package.json, returning nil when the file is absent or malformed.
func readDependencies(path string) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}

	deps := make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name, version := range manifest.Dependencies {
		deps[name] = version
	}
	for name, version := range manifest.DevDependencies {
		deps[name] = version
	}
	return deps
}
