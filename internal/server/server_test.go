package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"image/color"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ironsheep/pattern-tools-mcp/internal/config"
)

func newTestServer() *Server {
	return New(nil, zap.NewNop())
}

func TestNew(t *testing.T) {
	s := New(nil, nil)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil || s.patterns == nil {
		t.Fatal("New() did not initialize cache and store")
	}
	if s.cfg.Profile != config.Default().Profile {
		t.Errorf("nil config should fall back to defaults, got %+v", s.cfg.Profile)
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"req-7","method":"tools/list"}`, "req-7", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":3,"method":"ping"}`, float64(3), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "pattern-tools-mcp" {
		t.Errorf("serverInfo.name: got %v", info["name"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := newTestServer()
	if resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
		t.Errorf("notification should not get a response, got %+v", resp)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 9, Method: "resources/list"})

	if resp == nil || resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error.Code: got %d, want -32601", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "resources/list") {
		t.Errorf("Error.Message should name the method, got %q", resp.Error.Message)
	}
}

func TestServe(t *testing.T) {
	s := newTestServer()
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"position_lookup","arguments":{"name":"top-left"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response line %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}

	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}
	for i, want := range []float64{1, 2, 3} {
		if responses[i].ID != want {
			t.Errorf("response %d: ID %v, want %v", i, responses[i].ID, want)
		}
		if responses[i].Error != nil {
			t.Errorf("response %d: unexpected error %+v", i, responses[i].Error)
		}
	}
}

func TestToolNames(t *testing.T) {
	s := newTestServer()
	names := s.ToolNames()

	if len(names) != len(GetToolDefinitions()) {
		t.Fatalf("got %d names, want %d", len(names), len(GetToolDefinitions()))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	ok := writeTestPNG(t, dir, "ok_button.png", 12, 8, color.RGBA{0, 200, 0, 255})

	cfg := config.Default()
	cfg.Preload.Paths = []string{ok, filepath.Join(dir, "missing.png")}
	cfg.Preload.Fixed = true
	s := New(cfg, zap.NewNop())

	loaded, err := s.Preload()
	if loaded != 1 {
		t.Errorf("loaded: got %d, want 1", loaded)
	}
	if err == nil {
		t.Error("Preload should report the missing file")
	}

	stored := s.patterns.List()
	if len(stored) != 1 {
		t.Fatalf("store has %d patterns, want 1", len(stored))
	}
	p := stored[0].Pattern
	if p.Name != "ok_button" || !p.Fixed || p.W() != 12 || p.H() != 8 {
		t.Errorf("unexpected preloaded pattern: %v", p)
	}
}

func TestPreload_Empty(t *testing.T) {
	s := newTestServer()
	loaded, err := s.Preload()
	if loaded != 0 || err != nil {
		t.Errorf("Preload with no paths: got (%d, %v)", loaded, err)
	}
}

func TestErrorResponse(t *testing.T) {
	s := newTestServer()
	resp := s.errorResponse(5, -32000, "Tool execution failed", "boom")

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var decoded MCPResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded.Error == nil || decoded.Error.Code != -32000 || decoded.Error.Data != "boom" {
		t.Errorf("unexpected error payload: %+v", decoded.Error)
	}
	if decoded.Result != nil {
		t.Errorf("error response should omit result, got %v", decoded.Result)
	}
}
