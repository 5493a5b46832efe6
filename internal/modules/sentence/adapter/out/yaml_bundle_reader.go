package out

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"depflow/internal/modules/sentence/domain"
	sentenceout "depflow/internal/modules/sentence/port/out"
)

// bundleFile is the upload format: the fields an admin fills in per sentence.
type bundleFile struct {
	Sentences []bundleEntry `yaml:"sentences"`
}

type bundleEntry struct {
	Sentence  string            `yaml:"sentence"`
	GraphData string            `yaml:"graph_data"`
	Questions []domain.Question `yaml:"questions"`
}

type YAMLBundleReader struct{}

func NewYAMLBundleReader() sentenceout.BundleReader {
	return YAMLBundleReader{}
}

func (YAMLBundleReader) Read(_ context.Context, path string) ([]domain.Sentence, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	bundle := bundleFile{}
	if err := yaml.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	out := make([]domain.Sentence, 0, len(bundle.Sentences))
	for _, entry := range bundle.Sentences {
		out = append(out, domain.Sentence{
			Text:      entry.Sentence,
			GraphData: entry.GraphData,
			Questions: entry.Questions,
		})
	}
	return out, nil
}
