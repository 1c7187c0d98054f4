package go_machinetalk

import (
	"fmt"
	"runtime"
)

var version string

func VersionNumberString() string {
	if len(version) > 0 {
		return version
	}

	return "dev"
}

func VersionString() string {
	return fmt.Sprintf("go-machinetalk %s", VersionNumberString())
}

func SystemInfoString() string {
	return fmt.Sprintf("%s; Go %s (%s %s)", VersionString(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
