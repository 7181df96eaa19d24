package uid

import (
	"crypto/rand"
	"math/big"

	"github.com/bwmarrin/snowflake"
)

const maxNodeID = 1023

// Snowflake generates time-sortable int64 IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator with a random node ID.
func NewSnowflake() (*Snowflake, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxNodeID+1))
	if err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(n.Int64())
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
