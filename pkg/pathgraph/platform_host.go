// +build !windows,!darwin

package pathgraph

import "github.com/pathtree/pathgraph/pkg/pathgraph/platform"

// defaultHostProfile selects the platform profile matching the host this
// code was built for, providing New's default when WithPlatform is not
// supplied. This file covers Linux and other non-Darwin POSIX targets; see
// platform_host_darwin.go and platform_host_windows.go for the other two.
var defaultHostProfile platform.Profile = platform.POSIX{}
