// ABOUTME: Version and product identification constants
// ABOUTME: Reported at startup and used as the sound server client name
package version

import "fmt"

const (
	// Version is the release version
	Version = "0.1.0"

	// Product is the program name
	Product = "resonate-tone"

	// Manufacturer identifies the publisher
	Manufacturer = "Resonate"
)

// String returns the product, version and publisher for startup logs
func String() string {
	return fmt.Sprintf("%s %s (%s)", Product, Version, Manufacturer)
}
