package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates sortable int64 identifiers from a node-scoped
// snowflake generator.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator for the given node number. Node numbers
// must be unique per running instance.
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

// Generate returns the next snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
