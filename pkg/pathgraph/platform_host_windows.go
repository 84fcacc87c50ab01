// +build windows

package pathgraph

import "github.com/pathtree/pathgraph/pkg/pathgraph/platform"

var defaultHostProfile platform.Profile = platform.Windows{}
