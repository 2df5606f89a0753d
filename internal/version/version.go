package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the t4f release, overridden at build time with -ldflags.
var Version = "0.1.0"

// Current schema version for config.toml. Bump it when making breaking changes.
//
// CHECKLIST when bumping:
//  1. Update the constant below
//  2. Add entry to MinT4FVersion (tested by TestMinT4FVersionCompleteness)
//  3. Teach store.ConfigStore to upgrade the previous schema
const CurrentConfigVersion = 1

// ConfigSchemaPrefix prefixes the t4f_schema value in config files.
const ConfigSchemaPrefix = "config/"

// MinT4FVersion maps schema identifiers to the minimum t4f version that reads them.
// Used to provide helpful upgrade messages when encountering newer schemas.
var MinT4FVersion = map[string]string{
	"config/1": "0.1.0",
}

// FormatConfigSchema creates a config schema string from a version number.
// Example: FormatConfigSchema(1) returns "config/1"
func FormatConfigSchema(v int) string {
	return fmt.Sprintf("%s%d", ConfigSchemaPrefix, v)
}

// ParseConfigVersion extracts the version number from a config schema string.
func ParseConfigVersion(schema string) (int, error) {
	if !strings.HasPrefix(schema, ConfigSchemaPrefix) {
		return 0, fmt.Errorf("invalid config schema format: %q (expected %sN)", schema, ConfigSchemaPrefix)
	}
	versionStr := strings.TrimPrefix(schema, ConfigSchemaPrefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid config schema version: %q", versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid config schema version: %d (must be >= 1)", v)
	}
	return v, nil
}

// CurrentConfigSchema returns the current config schema string.
func CurrentConfigSchema() string {
	return FormatConfigSchema(CurrentConfigVersion)
}
