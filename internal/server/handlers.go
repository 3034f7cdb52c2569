package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/pattern-tools-mcp/internal/imaging"
	"github.com/ironsheep/pattern-tools-mcp/internal/location"
	"github.com/ironsheep/pattern-tools-mcp/internal/pattern"
	"github.com/ironsheep/pattern-tools-mcp/internal/profile"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "pattern_create").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.logger.Debug("tool call", zap.String("tool", params.Name))

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	// Pattern lifecycle
	case "pattern_create":
		return s.handlePatternCreate(args)
	case "pattern_from_region":
		return s.handlePatternFromRegion(args)
	case "pattern_get":
		return s.handlePatternGet(args)
	case "pattern_list":
		return s.handlePatternList(args)
	case "pattern_delete":
		return s.handlePatternDelete(args)
	case "pattern_equals":
		return s.handlePatternEquals(args)

	// Pattern geometry and colour
	case "pattern_locate":
		return s.handlePatternLocate(args)
	case "pattern_sample_color":
		return s.handlePatternSampleColor(args)
	case "pattern_color_profiles":
		return s.handlePatternColorProfiles(args)

	case "position_lookup":
		return s.handlePositionLookup(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, treating a missing object as empty.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// PatternInfo is the JSON view of a stored pattern.
type PatternInfo struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Imgpath             string            `json:"imgpath,omitempty"`
	URL                 string            `json:"url,omitempty"`
	Index               int               `json:"index"`
	Fixed               bool              `json:"fixed"`
	Dynamic             bool              `json:"dynamic"`
	KmeansColorProfiles bool              `json:"kmeans_color_profiles"`
	Position            location.Position `json:"position"`
	Anchors             location.Anchors  `json:"anchors"`
	Width               int               `json:"width"`
	Height              int               `json:"height"`
	Size                int               `json:"size"`
	Empty               bool              `json:"empty"`
	HasProfiles         bool              `json:"has_profiles"`
}

func newPatternInfo(id string, p *pattern.Pattern) PatternInfo {
	return PatternInfo{
		ID:                  id,
		Name:                p.Name,
		Imgpath:             p.Imgpath,
		URL:                 p.URL,
		Index:               p.Index,
		Fixed:               p.Fixed,
		Dynamic:             p.Dynamic,
		KmeansColorProfiles: p.KmeansColorProfiles,
		Position:            p.Position,
		Anchors:             p.Anchors,
		Width:               p.W(),
		Height:              p.H(),
		Size:                p.Size(),
		Empty:               p.IsEmpty(),
		HasProfiles:         p.Profiles != nil,
	}
}

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Pattern Lifecycle Handlers ===

// patternOptions are the builder settings shared by pattern_create and
// pattern_from_region.
type patternOptions struct {
	Name           string             `json:"name"`
	URL            string             `json:"url"`
	Fixed          bool               `json:"fixed"`
	Dynamic        bool               `json:"dynamic"`
	Index          int                `json:"index"`
	KmeansProfiles bool               `json:"kmeans_profiles"`
	Position       *location.Position `json:"position"`
	PositionName   string             `json:"position_name"`
	Anchors        []anchorArgs       `json:"anchors"`
}

// anchorArgs is the wire form of a location.Anchor. Both fields are pointers
// so a missing key is told apart from the zero value TOPLEFT.
type anchorArgs struct {
	Border          *location.Name     `json:"border"`
	PositionInMatch *location.Position `json:"position_in_match"`
}

// apply copies the options onto b. An explicit position wins over a named one.
func (o patternOptions) apply(b *pattern.Builder) error {
	b.SetName(o.Name).
		SetFixed(o.Fixed).
		SetDynamic(o.Dynamic).
		SetIndex(o.Index).
		SetKmeansColorProfiles(o.KmeansProfiles)

	switch {
	case o.Position != nil:
		b.SetPosition(*o.Position)
	case o.PositionName != "":
		name, err := location.ParseName(o.PositionName)
		if err != nil {
			return err
		}
		pos, _ := location.Coordinates(name)
		b.SetPosition(pos)
	}

	for i, anchor := range o.Anchors {
		if anchor.Border == nil {
			return fmt.Errorf("anchor %d: border is required", i)
		}
		if anchor.PositionInMatch == nil {
			return fmt.Errorf("anchor %d: position_in_match is required", i)
		}
		b.AddAnchor(location.NewAnchor(*anchor.Border, *anchor.PositionInMatch))
	}
	return nil
}

// register finishes a new pattern: it computes colour profiles when
// requested and stores the pattern.
func (s *Server) register(p *pattern.Pattern, url string) (PatternInfo, error) {
	p.URL = url
	if p.KmeansColorProfiles && !p.IsEmpty() {
		if err := p.ComputeColorProfiles(s.profileOptions()); err != nil {
			return PatternInfo{}, err
		}
	}
	id := s.patterns.Add(p)
	s.logger.Debug("pattern stored", zap.String("id", id), zap.Stringer("pattern", p))
	return newPatternInfo(id, p), nil
}

type patternCreateArgs struct {
	patternOptions
	Path string `json:"path"`
}

func (s *Server) handlePatternCreate(args json.RawMessage) (interface{}, error) {
	var a patternCreateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	b := pattern.NewBuilder()
	if err := a.apply(b); err != nil {
		return nil, err
	}

	var p *pattern.Pattern
	if a.Path != "" {
		var err error
		p, err = b.SetFilename(a.Path).BuildWith(s.cache)
		if err != nil {
			return nil, err
		}
	} else {
		p = b.Build()
	}

	return s.register(p, a.URL)
}

type patternFromRegionArgs struct {
	patternOptions
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

func (s *Server) handlePatternFromRegion(args json.RawMessage) (interface{}, error) {
	var a patternFromRegionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2)
	if err != nil {
		return nil, err
	}

	if a.Name == "" {
		a.Name = fmt.Sprintf("%s@%d,%d", imaging.BaseName(a.Path), a.X1, a.Y1)
	}

	b := pattern.NewBuilder()
	if err := a.apply(b); err != nil {
		return nil, err
	}
	p := b.SetBitmap(cropped).Build()
	p.Imgpath = fmt.Sprintf("%s#%d,%d,%d,%d", a.Path, a.X1, a.Y1, a.X2, a.Y2)

	return s.register(p, a.URL)
}

type patternIDArgs struct {
	ID string `json:"id"`
}

func (s *Server) lookup(args json.RawMessage) (string, *pattern.Pattern, error) {
	var a patternIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return "", nil, err
	}
	p, err := s.patterns.Get(a.ID)
	if err != nil {
		return "", nil, err
	}
	return a.ID, p, nil
}

type patternGetArgs struct {
	ID           string `json:"id"`
	IncludeImage bool   `json:"include_image"`
}

// PatternDetail is a pattern with its image encoded as base64 PNG.
type PatternDetail struct {
	PatternInfo
	ImageBase64 string `json:"image_base64,omitempty"`
}

func (s *Server) handlePatternGet(args json.RawMessage) (interface{}, error) {
	var a patternGetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.patterns.Get(a.ID)
	if err != nil {
		return nil, err
	}

	detail := &PatternDetail{PatternInfo: newPatternInfo(a.ID, p)}
	if a.IncludeImage && !p.IsEmpty() {
		encoded, err := imaging.EncodePNGBase64(p.Bitmap())
		if err != nil {
			return nil, err
		}
		detail.ImageBase64 = encoded
	}
	return detail, nil
}

// PatternListResult contains every stored pattern.
type PatternListResult struct {
	Count    int           `json:"count"`
	Patterns []PatternInfo `json:"patterns"`
}

func (s *Server) handlePatternList(args json.RawMessage) (interface{}, error) {
	stored := s.patterns.List()
	result := &PatternListResult{
		Count:    len(stored),
		Patterns: make([]PatternInfo, 0, len(stored)),
	}
	for _, sp := range stored {
		result.Patterns = append(result.Patterns, newPatternInfo(sp.ID, sp.Pattern))
	}
	return result, nil
}

func (s *Server) handlePatternDelete(args json.RawMessage) (interface{}, error) {
	var a patternIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.patterns.Delete(a.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{"id": a.ID, "deleted": true}, nil
}

type patternEqualsArgs struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (s *Server) handlePatternEquals(args json.RawMessage) (interface{}, error) {
	var a patternEqualsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	pa, err := s.patterns.Get(a.A)
	if err != nil {
		return nil, err
	}
	pb, err := s.patterns.Get(a.B)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"equal": pa.Equal(pb)}, nil
}

// === Pattern Geometry and Colour Handlers ===

type patternLocateArgs struct {
	ID    string          `json:"id"`
	Match location.Region `json:"match"`
}

// LocateResult is the outcome of projecting a pattern into a match.
type LocateResult struct {
	Location location.Point   `json:"location"`
	Region   *location.Region `json:"region,omitempty"`
}

func (s *Server) handlePatternLocate(args json.RawMessage) (interface{}, error) {
	var a patternLocateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.patterns.Get(a.ID)
	if err != nil {
		return nil, err
	}
	if a.Match.Empty() {
		return nil, fmt.Errorf("match region %dx%d has no area", a.Match.W, a.Match.H)
	}

	result := &LocateResult{Location: p.Location(a.Match)}
	if p.Anchors.Len() > 0 {
		region := p.AnchoredRegion(a.Match)
		result.Region = &region
	}
	return result, nil
}

// SampleResult is the colour of a pattern image at the pattern's position.
type SampleResult struct {
	Point location.Point       `json:"point"`
	Color *imaging.ColorResult `json:"color"`
}

func (s *Server) handlePatternSampleColor(args json.RawMessage) (interface{}, error) {
	_, p, err := s.lookup(args)
	if err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, pattern.ErrNoImage
	}

	bitmap := p.Bitmap()
	bounds := bitmap.Bounds()
	pt := p.Location(location.NewRegionFromRect(bounds))
	// A position of 1.0 lands on the exclusive edge.
	pt.X = clamp(pt.X, bounds.Min.X, bounds.Max.X-1)
	pt.Y = clamp(pt.Y, bounds.Min.Y, bounds.Max.Y-1)

	c, err := imaging.SampleColor(bitmap, pt.X, pt.Y)
	if err != nil {
		return nil, err
	}
	return &SampleResult{Point: pt, Color: c}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type patternColorProfilesArgs struct {
	ID     string `json:"id"`
	Schema string `json:"schema"`
	K      int    `json:"k"`
}

func (s *Server) handlePatternColorProfiles(args json.RawMessage) (interface{}, error) {
	var a patternColorProfilesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.patterns.Get(a.ID)
	if err != nil {
		return nil, err
	}
	if p.Profiles == nil {
		if err := p.ComputeColorProfiles(s.profileOptions()); err != nil {
			return nil, err
		}
	}

	if a.Schema == "" && a.K == 0 {
		return p.Profiles, nil
	}

	schema := profile.Schema(a.Schema)
	if schema == "" {
		schema = profile.SchemaRGB
	}
	k := a.K
	if k == 0 {
		k = p.Profiles.Options.MaxK
	}
	kp, ok := p.Profiles.Get(schema, k)
	if !ok {
		return nil, fmt.Errorf("no %s profile with k=%d", schema, k)
	}
	return kp, nil
}

type positionLookupArgs struct {
	Name string `json:"name"`
}

// PositionLookupResult is a named position and its coordinates.
type PositionLookupResult struct {
	Name     location.Name     `json:"name"`
	Position location.Position `json:"position"`
}

func (s *Server) handlePositionLookup(args json.RawMessage) (interface{}, error) {
	var a positionLookupArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	name, err := location.ParseName(a.Name)
	if err != nil {
		return nil, err
	}
	pos, ok := location.Coordinates(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", location.ErrUnknownPosition, a.Name)
	}
	return &PositionLookupResult{Name: name, Position: pos}, nil
}
