package pool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func newTestPool(urls ...string) *Pool {
	p := New(nil)
	for _, u := range urls {
		p.AddNode(u, "")
	}
	return p
}

func TestAddNodeAssignsSequentialIDs(t *testing.T) {
	p := newTestPool("http://a:3001", "http://b:3001")

	nodes := p.Snapshot()
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].ID != "node-1" || nodes[1].ID != "node-2" {
		t.Errorf("unexpected ids: %s, %s", nodes[0].ID, nodes[1].ID)
	}
	if nodes[0].Status != StatusUnknown {
		t.Errorf("new node status = %s, want %s", nodes[0].Status, StatusUnknown)
	}
	if nodes[0].Name != "Node 1" {
		t.Errorf("default name = %s, want Node 1", nodes[0].Name)
	}
}

func TestSelectEmptyPool(t *testing.T) {
	p := New(nil)
	if _, err := p.Select(); err == nil {
		t.Error("expected error selecting from empty pool")
	}
}

func TestSelectRoundRobin(t *testing.T) {
	p := newTestPool("http://a:3001", "http://b:3001", "http://c:3001")

	var got []string
	for i := 0; i < 6; i++ {
		n, err := p.Select()
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		got = append(got, n.ID)
	}

	want := []string{"node-1", "node-2", "node-3", "node-1", "node-2", "node-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selection %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSelectSkipsOffline(t *testing.T) {
	p := newTestPool("http://a:3001", "http://b:3001", "http://c:3001")
	p.setStatus("node-2", StatusOffline, 0)

	var got []string
	for i := 0; i < 4; i++ {
		n, _ := p.Select()
		got = append(got, n.ID)
	}

	want := []string{"node-1", "node-3", "node-1", "node-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selection %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSelectAllOfflineFallsBackToFirst(t *testing.T) {
	p := newTestPool("http://a:3001", "http://b:3001")
	p.setStatus("node-1", StatusOffline, 0)
	p.setStatus("node-2", StatusOffline, 0)

	n, err := p.Select()
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if n.ID != "node-1" {
		t.Errorf("fallback node = %s, want node-1", n.ID)
	}
}

func TestSelectRoutesErrorStatus(t *testing.T) {
	p := newTestPool("http://a:3001", "http://b:3001")
	p.setStatus("node-1", StatusError, 0)

	n, _ := p.Select()
	if n.ID != "node-1" {
		t.Errorf("error-status node should still be routable, got %s", n.ID)
	}
}

func TestSummarize(t *testing.T) {
	p := newTestPool("http://a:3001", "http://b:3001", "http://c:3001")
	p.setStatus("node-1", StatusOnline, 0)
	p.setStatus("node-2", StatusOffline, 0)

	s := p.Summarize()
	if s.TotalNodes != 3 {
		t.Errorf("total = %d, want 3", s.TotalNodes)
	}
	if s.OnlineNodes != 1 {
		t.Errorf("online = %d, want 1", s.OnlineNodes)
	}
	if s.Health != "healthy" {
		t.Errorf("health = %s, want healthy", s.Health)
	}

	p.setStatus("node-1", StatusOffline, 0)
	if got := p.Summarize().Health; got != "critical" {
		t.Errorf("health with no online nodes = %s, want critical", got)
	}
}

func TestRefreshHealthUpdatesStatuses(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer up.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	p := newTestPool(up.URL, down.URL)
	p.RefreshHealth(context.Background(), NewHTTPProber(time.Second))

	nodes := p.Snapshot()
	if nodes[0].Status != StatusOnline {
		t.Errorf("node-1 status = %s, want %s", nodes[0].Status, StatusOnline)
	}
	if nodes[1].Status != StatusError {
		t.Errorf("node-2 status = %s, want %s", nodes[1].Status, StatusError)
	}
	if nodes[0].LastChecked.IsZero() {
		t.Error("LastChecked not updated")
	}
}

func TestRefreshHealthUnreachableNode(t *testing.T) {
	p := newTestPool("http://127.0.0.1:1")
	p.RefreshHealth(context.Background(), NewHTTPProber(500*time.Millisecond))

	if got := p.Snapshot()[0].Status; got != StatusOffline {
		t.Errorf("unreachable node status = %s, want %s", got, StatusOffline)
	}
}

func TestConcurrentSelectAndAdd(t *testing.T) {
	p := newTestPool("http://a:3001")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := p.Select(); err != nil {
					t.Errorf("Select failed: %v", err)
					return
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.AddNode("http://extra:3001", "")
		}()
	}
	wg.Wait()

	if p.Len() != 5 {
		t.Errorf("pool size = %d, want 5", p.Len())
	}
}
