package oxysearch

import "github.com/deepnoodle-ai/wonton/schema"

// Type aliases for easy access to schema types used in tool definitions
type (
	Schema         = schema.Schema
	SchemaProperty = schema.Property
)
