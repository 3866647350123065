package autocomplete

import "runtime"

// Platform describes what the running operating system supports.
type Platform struct {
	// Installable is true when completion scripts can be placed in the
	// shells' conventional directories.
	Installable bool
}

// DetectPlatform resolves the capabilities of the running OS.
func DetectPlatform() Platform {
	return platformFor(runtime.GOOS)
}

func platformFor(goos string) Platform {
	switch goos {
	case "windows", "plan9", "js", "wasip1":
		return Platform{}
	default:
		return Platform{Installable: true}
	}
}
