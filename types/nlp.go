package types

// Entity represents a named entity detected in report text.
type Entity struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata"`
	Mentions []EntityMention   `json:"mentions"`
}

// EntityMention holds details about an entity mention.
type EntityMention struct {
	Content     string  `json:"content"`
	BeginOffset int32   `json:"begin_offset"`
	Probability float32 `json:"probability"`
}
