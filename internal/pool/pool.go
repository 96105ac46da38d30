// Package pool maintains the set of inference node endpoints, their
// advisory health status, and round-robin selection with failover.
package pool

import (
	"fmt"
	"sync"
	"time"

	"github.com/lingobridge/lingobridge/internal/logging"
)

// Node status values. Status is advisory: a node marked error is still
// routable, only offline nodes are skipped during selection.
const (
	StatusUnknown = "unknown"
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusError   = "error"
)

// Node represents one inference backend instance
type Node struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_check"`
	Load        int       `json:"load"`
}

// Pool holds an ordered, append-only set of nodes plus the rotation cursor
type Pool struct {
	mu     sync.Mutex
	nodes  []*Node
	cursor int
	logger *logging.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a pool from initial endpoints. Each endpoint gets a stable
// node-N identifier and starts with unknown status.
func New(logger *logging.Logger) *Pool {
	if logger == nil {
		logger = logging.Global()
	}

	return &Pool{
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// AddNode appends a node with a fresh id and unknown status, returning a
// copy of the new node. Nodes are never removed.
func (p *Pool) AddNode(url, name string) Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := fmt.Sprintf("node-%d", len(p.nodes)+1)
	if name == "" {
		name = fmt.Sprintf("Node %d", len(p.nodes)+1)
	}

	node := &Node{
		ID:     id,
		URL:    url,
		Name:   name,
		Status: StatusUnknown,
	}
	p.nodes = append(p.nodes, node)

	p.logger.Info("Node added to pool", "node_id", id, "url", url, "name", name)
	return *node
}

// Select returns the next node by round-robin, skipping nodes that are
// known offline. The cursor advances exactly once per call. If a full
// rotation finds nothing routable, the first node is returned anyway:
// degraded routing is preferred over failing here, and the inference call
// itself will surface the real error.
func (p *Pool) Select() (Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.nodes) == 0 {
		return Node{}, fmt.Errorf("node pool is empty")
	}

	start := p.cursor
	for {
		node := p.nodes[p.cursor]
		p.cursor = (p.cursor + 1) % len(p.nodes)

		if node.Status != StatusOffline {
			return *node, nil
		}

		if p.cursor == start {
			return *p.nodes[0], nil
		}
	}
}

// Len returns the number of nodes in the pool
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.nodes)
}

// Snapshot returns a copy of all nodes in pool order
func (p *Pool) Snapshot() []Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	nodes := make([]Node, len(p.nodes))
	for i, n := range p.nodes {
		nodes[i] = *n
	}
	return nodes
}

// Summary describes cluster-wide health
type Summary struct {
	Nodes       []Node `json:"nodes"`
	TotalNodes  int    `json:"total_nodes"`
	OnlineNodes int    `json:"online_nodes"`
	Health      string `json:"cluster_health"`
}

// Summarize returns the cluster summary. Health is "critical" only when
// no node is online.
func (p *Pool) Summarize() Summary {
	nodes := p.Snapshot()

	online := 0
	for _, n := range nodes {
		if n.Status == StatusOnline {
			online++
		}
	}

	health := "healthy"
	if online == 0 {
		health = "critical"
	}

	return Summary{
		Nodes:       nodes,
		TotalNodes:  len(nodes),
		OnlineNodes: online,
		Health:      health,
	}
}

// setStatus updates one node's status and check time by id
func (p *Pool) setStatus(id, status string, load int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, n := range p.nodes {
		if n.ID == id {
			n.Status = status
			n.Load = load
			n.LastChecked = time.Now()
			return
		}
	}
}
