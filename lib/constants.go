package svn

const (
	// DefaultPrefixLength is the number of leading characters of each log
	// path that name the repository root, e.g. "/lstrait2/".
	DefaultPrefixLength = 10

	// DefaultGroupToken marks the top-level directories that represent one
	// unit of work.
	DefaultGroupToken = "Assignment"

	// Element and attribute names used by `svn list --xml` and
	// `svn log -v --xml`.
	listEntryElement = "entry"
	logEntryElement  = "logentry"
)
