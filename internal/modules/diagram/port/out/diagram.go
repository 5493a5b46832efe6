package out

import "depflow/internal/modules/diagram/domain"

// ChangeListener is told about the visible nodes and edges after every
// change to the open diagram.
type ChangeListener interface {
	Changed(nodes []domain.Node, edges []domain.Edge)
}
