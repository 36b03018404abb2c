// Package multitool provides the version information for multitool.
package multitool

// Version is the current version of multitool.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
