package docrag

// Config holds the recognized configuration surface for a pipeline run.
// Values come from the environment (see cmd/docrag); zero values are filled
// with defaults before validation.
type Config struct {
	BaseURL        string `json:"baseUrl"`
	MaxDepth       int    `json:"maxDepth"`
	CollectionName string `json:"collectionName"`
	ChunkSize      int    `json:"chunkSize"`
	ChunkOverlap   int    `json:"chunkOverlap"`
	MaxConcurrent  int    `json:"maxConcurrent"`
	EmbedRPM       int    `json:"embedRpm"`
	StoreRPM       int    `json:"storeRpm"`
}

// DefaultConfig returns a Config with production defaults. BaseURL has no
// default and must be supplied.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       2,
		CollectionName: "doc_site_content",
		ChunkSize:      512,
		ChunkOverlap:   64,
		MaxConcurrent:  5,
		EmbedRPM:       100,
		StoreRPM:       1000,
	}
}

// Validate returns an EINVALID error for the first malformed value.
// Configuration errors are fatal at startup and never silently coerced.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if c.ChunkSize <= 0 {
		return Errorf(EINVALID, "chunk size must be greater than 0")
	}
	if c.ChunkOverlap < 0 {
		return Errorf(EINVALID, "chunk overlap must be greater than or equal to 0")
	}
	if c.MaxConcurrent <= 0 {
		return Errorf(EINVALID, "max concurrent requests must be greater than 0")
	}
	if c.EmbedRPM <= 0 {
		return Errorf(EINVALID, "embedding requests-per-minute budget must be greater than 0")
	}
	if c.StoreRPM <= 0 {
		return Errorf(EINVALID, "vector store requests-per-minute budget must be greater than 0")
	}
	return nil
}
