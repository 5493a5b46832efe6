package dto

type NodeOutput struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	Head        string `json:"head,omitempty"`
	Relation    string `json:"relation"`
	RawToken    string `json:"raw_token"`
	Expanded    bool   `json:"expanded"`
	HasChildren bool   `json:"has_children"`
}

type EdgeOutput struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Relation string `json:"relation"`
	Label    string `json:"label"`
}

// IndexOutput is the complete parse of a text, independent of what is visible.
type IndexOutput struct {
	RootID   string       `json:"root_id"`
	Empty    bool         `json:"empty"`
	Nodes    []NodeOutput `json:"nodes"`
	Edges    []EdgeOutput `json:"edges"`
	Dangling []string     `json:"dangling,omitempty"`
}

// DiagramOutput is the visible part of the open diagram.
type DiagramOutput struct {
	SentenceID int          `json:"sentence_id,omitempty"`
	Sentence   string       `json:"sentence,omitempty"`
	RootID     string       `json:"root_id"`
	Empty      bool         `json:"empty"`
	TotalNodes int          `json:"total_nodes"`
	Nodes      []NodeOutput `json:"nodes"`
	Edges      []EdgeOutput `json:"edges"`
	Dangling   []string     `json:"dangling,omitempty"`
}
