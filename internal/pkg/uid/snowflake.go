package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates Twitter snowflake ids for a single node.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a generator for the given node number (0-1023).
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: n}, nil
}

// Generate returns the next id. It is safe for concurrent use.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
