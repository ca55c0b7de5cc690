package intake

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/vitrine/internal/config"
)

// IDGenerator assigns identifiers to new products.
type IDGenerator interface {
	NextID() int64
}

// MillisGenerator issues the creation time in milliseconds. Two products
// created in the same millisecond would collide, so an id that does not
// advance is bumped past the last one issued.
type MillisGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewMillisGenerator(now func() time.Time) *MillisGenerator {
	if now == nil {
		now = time.Now
	}
	return &MillisGenerator{now: now}
}

func (g *MillisGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

type SnowflakeGenerator struct {
	node *snowflake.Node
}

func NewSnowflakeGenerator(node int64) (*SnowflakeGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &SnowflakeGenerator{node: n}, nil
}

func (g *SnowflakeGenerator) NextID() int64 {
	return g.node.Generate().Int64()
}

// NewIDGenerator picks the generator named by ID_SCHEME.
func NewIDGenerator(cfg config.Config) (IDGenerator, error) {
	switch cfg.IDScheme {
	case config.IDSchemeSnowflake:
		return NewSnowflakeGenerator(cfg.SnowflakeNode)
	default:
		return NewMillisGenerator(nil), nil
	}
}
