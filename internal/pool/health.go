package pool

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ErrBadStatus marks a reachable node that answered with a non-2xx status.
// Such nodes are degraded but still routable.
var ErrBadStatus = errors.New("node returned unexpected status")

// HealthProber checks whether one node endpoint is reachable
type HealthProber interface {
	Probe(ctx context.Context, nodeURL string) error
}

// HTTPProber probes the node's model listing endpoint
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober with the given per-probe timeout
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &HTTPProber{
		client: &http.Client{Timeout: timeout},
	}
}

// Probe issues GET {nodeURL}/v1/models and treats any 2xx as healthy
func (hp *HTTPProber) Probe(ctx context.Context, nodeURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nodeURL+"/v1/models", nil)
	if err != nil {
		return err
	}

	resp, err := hp.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	return nil
}

// RefreshHealth probes every node concurrently and updates statuses.
// It returns once all probes finish.
func (p *Pool) RefreshHealth(ctx context.Context, prober HealthProber) {
	nodes := p.Snapshot()
	if len(nodes) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, node := range nodes {
		wg.Add(1)
		go func(n Node) {
			defer wg.Done()

			err := prober.Probe(ctx, n.URL)
			switch {
			case err == nil:
				p.setStatus(n.ID, StatusOnline, 0)
			case errors.Is(err, ErrBadStatus):
				p.setStatus(n.ID, StatusError, 0)
				p.logger.Warn("Node degraded",
					"node_id", n.ID, "url", n.URL, "error", err)
			default:
				p.setStatus(n.ID, StatusOffline, 0)
				p.logger.Warn("Node unreachable",
					"node_id", n.ID, "url", n.URL, "error", err)
			}
		}(node)
	}
	wg.Wait()
}

// StartHealthLoop runs RefreshHealth immediately and then on every tick
// until Stop is called or the context ends
func (p *Pool) StartHealthLoop(ctx context.Context, prober HealthProber, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.RefreshHealth(ctx, prober)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.RefreshHealth(ctx, prober)
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the health loop and waits for it to exit
func (p *Pool) Stop() {
	close(p.stopCh)
	p.wg.Wait()
}
