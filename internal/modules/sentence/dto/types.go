package dto

import "time"

type QuestionInput struct {
	Prompt  string
	Options []string
	Answer  string
}

type AddInput struct {
	Text      string
	GraphData string
	Questions []QuestionInput
}

type ImportInput struct {
	Path string
}

type SearchInput struct {
	Query string
	Limit int
}

type ReindexInput struct{}

type SentenceOutput struct {
	ID            int    `json:"id"`
	Text          string `json:"sentence"`
	QuestionCount int    `json:"question_count"`
	NotePath      string `json:"note_path,omitempty"`
}

type QuestionOutput struct {
	Prompt  string   `json:"q"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

type SentenceDetailOutput struct {
	ID        int              `json:"id"`
	Text      string           `json:"sentence"`
	GraphData string           `json:"graph_data"`
	NotePath  string           `json:"note_path"`
	AddedAt   time.Time        `json:"added_at"`
	Questions []QuestionOutput `json:"questions"`
}

type ImportOutput struct {
	Added []SentenceOutput `json:"added"`
}
