package model

import "fmt"

// SourceInitializeParams carries the local parent directory under which a
// working copy is cloned.
type SourceInitializeParams struct {
	ParentPath string `json:"parent_path"`
}

// Path returns the full path the working copy for name will live at.
func (p SourceInitializeParams) Path(name string) string {
	return fmt.Sprintf("%s/%s", p.ParentPath, name)
}

// InitializedSource is the absolute local path to a working copy. The
// invariant that the directory exists and is a valid working copy of the
// associated repo is maintained by the Source Driver, not by this type.
type InitializedSource struct {
	Path string `json:"path"`
}
