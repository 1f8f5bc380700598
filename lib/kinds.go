package svn

import "fmt"

// NodeKind says whether a listing entry or a logged path is a directory or
// a file. Entries svn lists under any other kind have no NodeKind and are
// skipped.
type NodeKind *string

// NodeAction is what a commit did to a logged path. Logs written without
// -v carry no actions and leave it nil.
type NodeAction *string

func newLabel(label string) *string {
	return &label
}

var (
	NodeKindDir  NodeKind = newLabel("dir")
	NodeKindFile NodeKind = newLabel("file")
)

var (
	NodeActionAdd     NodeAction = newLabel("add")
	NodeActionChange  NodeAction = newLabel("chg")
	NodeActionDelete  NodeAction = newLabel("del")
	NodeActionReplace NodeAction = newLabel("rep")
)

// NodeKinds maps the `kind` attribute of list and log xml.
var NodeKinds = map[string]NodeKind{
	"dir":  NodeKindDir,
	"file": NodeKindFile,
}

// NodeActions maps the single-letter `action` attribute of log xml.
var NodeActions = map[string]NodeAction{
	"A": NodeActionAdd,
	"M": NodeActionChange,
	"D": NodeActionDelete,
	"R": NodeActionReplace,
}

func GetNodeKind(kind string) (NodeKind, error) {
	return lookupLabel(NodeKinds, kind, ErrUnknownNodeKind)
}

func GetNodeAction(action string) (NodeAction, error) {
	return lookupLabel(NodeActions, action, ErrUnknownNodeAction)
}

func lookupLabel[L ~*string](labels map[string]L, key string, unknown error) (L, error) {
	if label, ok := labels[key]; ok {
		return label, nil
	}
	var none L
	return none, fmt.Errorf("%w: %q", unknown, key)
}
