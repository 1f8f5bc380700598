package svn

import (
	"flag"
	"fmt"
	"strings"
)

// Verbose enables tracing of every entry and revision the library handles.
var Verbose = flag.Bool("verbose", false, "enable verbose output")

func log(format string, args ...any) {
	if Verbose != nil && *Verbose {
		s := fmt.Sprintf("-- "+format, args...)
		s = strings.ReplaceAll(s, "\r", "<cr>")
		s = strings.ReplaceAll(s, "\n", "<lf>")
		fmt.Println(s)
	}
}
