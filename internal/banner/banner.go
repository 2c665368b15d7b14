// Package banner renders the startup banner written to stderr.
package banner

import "fmt"

const art = `
       _ _
  __ _| (_) __ _ _ __
 / _' | | |/ _' | '_ \
| (_| | | | (_| | | | |
 \__,_|_|_|\__, |_| |_|
           |___/
`

// Banner returns the banner followed by the version line.
func Banner(version string) string {
	return fmt.Sprintf("%s  word aligner %s\n\n", art, version)
}
