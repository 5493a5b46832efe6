package out

import (
	"go.uber.org/zap"

	"depflow/internal/modules/diagram/domain"
	diagramout "depflow/internal/modules/diagram/port/out"
)

type LogChangeListener struct {
	logger *zap.Logger
}

func NewLogChangeListener(logger *zap.Logger) diagramout.ChangeListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return LogChangeListener{logger: logger}
}

func (l LogChangeListener) Changed(nodes []domain.Node, edges []domain.Edge) {
	ids := make([]string, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.ID)
	}
	l.logger.Debug("visible subset changed",
		zap.Strings("nodes", ids),
		zap.Int("edges", len(edges)))
}
