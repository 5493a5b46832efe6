package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"depflow/internal/modules/sentence/domain"
	sentenceout "depflow/internal/modules/sentence/port/out"
	apperrors "depflow/internal/platform/errors"
	"depflow/internal/platform/markdown"
)

type VaultSentenceStore struct {
	workspacePath string
}

func NewVaultSentenceStore(workspacePath string) sentenceout.SentenceStore {
	return &VaultSentenceStore{workspacePath: workspacePath}
}

type noteMeta struct {
	SchemaVersion int               `yaml:"schema_version"`
	ID            int               `yaml:"id"`
	Sentence      string            `yaml:"sentence"`
	Questions     []domain.Question `yaml:"questions,omitempty"`
	AddedAt       string            `yaml:"added_at"`
}

func (s *VaultSentenceStore) dir() string {
	return filepath.Join(s.workspacePath, "sentences")
}

func (s *VaultSentenceStore) Save(_ context.Context, sentence domain.Sentence) (string, error) {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return "", fmt.Errorf("create sentences directory: %w", err)
	}
	path := filepath.Join(s.dir(), fmt.Sprintf("%04d-%s.md", sentence.ID, sentence.Slug))

	stale, err := filepath.Glob(filepath.Join(s.dir(), fmt.Sprintf("%04d-*.md", sentence.ID)))
	if err != nil {
		return "", fmt.Errorf("glob sentence notes: %w", err)
	}
	for _, old := range stale {
		if old == path {
			continue
		}
		if err := os.Remove(old); err != nil {
			return "", fmt.Errorf("remove stale note: %w", err)
		}
	}

	meta := noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            sentence.ID,
		Sentence:      sentence.Text,
		Questions:     sentence.Questions,
		AddedAt:       sentence.AddedAt.UTC().Format(time.RFC3339),
	}
	body := "# " + sentence.Text + "\n\n" + markdown.RenderFence(domain.GraphFence, sentence.GraphData)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write sentence note: %w", err)
	}
	return path, nil
}

func (s *VaultSentenceStore) FindByID(ctx context.Context, id int) (domain.Sentence, error) {
	sentences, err := s.List(ctx)
	if err != nil {
		return domain.Sentence{}, err
	}
	for _, sentence := range sentences {
		if sentence.ID == id {
			return sentence, nil
		}
	}
	return domain.Sentence{}, fmt.Errorf("sentence %d: %w", id, apperrors.ErrNotFound)
}

func (s *VaultSentenceStore) List(_ context.Context) ([]domain.Sentence, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir(), "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob sentence notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Sentence, 0, len(matches))
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		sentence, err := decodeNote(string(content), path)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		out = append(out, sentence)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func decodeNote(content, path string) (domain.Sentence, error) {
	meta := noteMeta{}
	body, err := markdown.DecodeFrontmatter(content, &meta)
	if err != nil {
		return domain.Sentence{}, err
	}
	graph, ok := markdown.ExtractFence(body, domain.GraphFence)
	if !ok {
		return domain.Sentence{}, fmt.Errorf("missing ```%s block", domain.GraphFence)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	_, slugPart, _ := strings.Cut(name, "-")
	addedAt, _ := time.Parse(time.RFC3339, meta.AddedAt)
	sentence := domain.Sentence{
		ID:        meta.ID,
		Text:      meta.Sentence,
		GraphData: graph,
		Questions: meta.Questions,
		Slug:      slugPart,
		NotePath:  path,
		AddedAt:   addedAt,
	}
	if err := sentence.Validate(); err != nil {
		return domain.Sentence{}, err
	}
	return sentence, nil
}
