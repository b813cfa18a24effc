package workflow

import (
	"fmt"
	"strings"
)

// InvalidMotionError reports a motion identifier outside the preset table.
type InvalidMotionError struct {
	Motion string
}

func (e *InvalidMotionError) Error() string {
	return fmt.Sprintf("unknown motion %q (choose one of: %s)", e.Motion, strings.Join(Motions(), ", "))
}

// MissingNodeError reports a targeted node role absent from the base graph.
// This means the template is incompatible with the configured node ids, not
// that the user did anything wrong.
type MissingNodeError struct {
	Role string
	ID   int
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("base workflow has no %s node (id %d): incompatible template", e.Role, e.ID)
}
