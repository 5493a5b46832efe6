package service

import (
	"fmt"

	"go.uber.org/zap"

	"depflow/internal/modules/diagram/domain"
	diagramout "depflow/internal/modules/diagram/port/out"
	apperrors "depflow/internal/platform/errors"
)

// Origin names where the open diagram came from. A zero SentenceID means
// the text was supplied directly.
type Origin struct {
	SentenceID int
	Sentence   string
}

// DiagramService owns the open diagram. It is not safe for concurrent use;
// callers mutate it from a single goroutine.
type DiagramService struct {
	listener diagramout.ChangeListener
	logger   *zap.Logger
	subset   *domain.Subset
	origin   Origin
}

func NewDiagramService(listener diagramout.ChangeListener, logger *zap.Logger) *DiagramService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiagramService{listener: listener, logger: logger}
}

// Open parses text and replaces whatever diagram was open before.
func (s *DiagramService) Open(text string, origin Origin) domain.FullIndex {
	index := domain.Parse(text)
	s.origin = origin
	s.subset = domain.NewSubset(index, s.changed)

	if index.Empty() {
		s.logger.Warn("graph data has no root line; nothing to render",
			zap.Int("sentence_id", origin.SentenceID),
			zap.Int("records", len(index.Records)))
		return index
	}
	if len(index.Dangling) > 0 {
		s.logger.Warn("nodes with unknown heads are not connected",
			zap.Int("sentence_id", origin.SentenceID),
			zap.Strings("ids", index.Dangling))
	}
	s.logger.Info("diagram opened",
		zap.Int("sentence_id", origin.SentenceID),
		zap.String("root", index.RootID),
		zap.Int("nodes", len(index.Order)),
		zap.Int("edges", len(index.Edges)))
	return index
}

func (s *DiagramService) Current() (*domain.Subset, Origin, error) {
	if s.subset == nil {
		return nil, Origin{}, apperrors.ErrNoDiagram
	}
	return s.subset, s.origin, nil
}

// Toggle is the node click. Unknown or childless nodes leave the diagram
// unchanged and report false.
func (s *DiagramService) Toggle(id string) (bool, error) {
	subset, _, err := s.Current()
	if err != nil {
		return false, err
	}
	changed := subset.Toggle(id)
	s.logger.Debug("node toggled",
		zap.String("id", id),
		zap.Bool("changed", changed),
		zap.Bool("expanded", subset.IsExpanded(id)))
	return changed, nil
}

func (s *DiagramService) Expand(id string) (bool, error) {
	subset, _, err := s.Current()
	if err != nil {
		return false, err
	}
	return subset.Expand(id), nil
}

func (s *DiagramService) Collapse(id string) (bool, error) {
	subset, _, err := s.Current()
	if err != nil {
		return false, err
	}
	return subset.Collapse(id), nil
}

func (s *DiagramService) ExpandAll() (bool, error) {
	subset, _, err := s.Current()
	if err != nil {
		return false, err
	}
	return subset.ExpandAll(), nil
}

// Reset shows only the root of the open diagram again.
func (s *DiagramService) Reset() error {
	subset, _, err := s.Current()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	subset.Reset(subset.Index())
	return nil
}

func (s *DiagramService) changed(nodes []domain.Node, edges []domain.Edge) {
	if s.listener != nil {
		s.listener.Changed(nodes, edges)
	}
}
