package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/ironsheep/pattern-tools-mcp/internal/config"
	"github.com/ironsheep/pattern-tools-mcp/internal/imaging"
	"github.com/ironsheep/pattern-tools-mcp/internal/pattern"
	"github.com/ironsheep/pattern-tools-mcp/internal/profile"
)

// Server handles MCP protocol communication
type Server struct {
	cache    *imaging.ImageCache
	patterns *Store
	cfg      *config.Config
	logger   *zap.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance. A nil cfg uses config.Default and a
// nil logger discards all output.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cache:    imaging.NewImageCache(),
		patterns: NewStore(),
		cfg:      cfg,
		logger:   logger,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r until EOF and
// writes responses to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", zap.Error(err))
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", zap.Error(err))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// ToolNames returns the names of all registered tools in sorted order.
func (s *Server) ToolNames() []string {
	tools := GetToolDefinitions()
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// Preload turns every configured preload path into a pattern. Paths that fail
// to load are logged and reported together; the rest are still registered.
func (s *Server) Preload() (int, error) {
	var errs []error
	loaded := 0

	for _, path := range s.cfg.Preload.Paths {
		p, err := pattern.NewBuilder().
			SetFilename(path).
			SetFixed(s.cfg.Preload.Fixed).
			BuildWith(s.cache)
		if err != nil {
			s.logger.Warn("failed to preload pattern", zap.String("path", path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		id := s.patterns.Add(p)
		loaded++
		s.logger.Info("preloaded pattern",
			zap.String("id", id),
			zap.String("name", p.Name),
			zap.Int("width", p.W()),
			zap.Int("height", p.H()))
	}

	return loaded, errors.Join(errs...)
}

func (s *Server) profileOptions() profile.Options {
	return s.cfg.Profile
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "pattern-tools-mcp",
				"version": "0.1.0",
			},
		},
	}
}
