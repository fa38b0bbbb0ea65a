package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iw2rmb/smedit/decorate"
	"github.com/iw2rmb/smedit/engine"
	"github.com/iw2rmb/smedit/locate"
	"github.com/iw2rmb/smedit/preview"
	"github.com/iw2rmb/smedit/section"
	"github.com/iw2rmb/smedit/spantree"
	"github.com/iw2rmb/smedit/toggle"
)

type docRequest struct {
	Text      string           `json:"text"`
	Selection locate.Selection `json:"selection"`
}

type nodeJSON struct {
	Type spantree.Type `json:"type"`
	Span spantree.Span `json:"span"`
}

type decorationJSON struct {
	Span  spantree.Span `json:"span"`
	Tag   spantree.Type `json:"tag"`
	Depth int           `json:"depth"`
	Class string        `json:"class"`
}

type runJSON struct {
	Span    spantree.Span   `json:"span"`
	Tags    []spantree.Type `json:"tags"`
	Classes string          `json:"classes"`
}

type resultJSON struct {
	Text      string           `json:"text"`
	Edit      toggle.TextEdit  `json:"edit"`
	Selection toggle.Selection `json:"selection"`
	Unwrapped bool             `json:"unwrapped"`
	Changed   bool             `json:"changed"`
}

func toResultJSON(res toggle.Result) resultJSON {
	return resultJSON{
		Text:      res.Text,
		Edit:      res.Edit,
		Selection: res.Selection,
		Unwrapped: res.Unwrapped,
		Changed:   res.Changed,
	}
}

// handleHighlight returns the decorations and the flattened runs.
func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req docRequest
	if !decodeBody(w, r, &req) {
		return
	}
	nodes, ok := s.parse(r.Context(), w, req.Text)
	if !ok {
		return
	}

	decos := decorate.Collect(nodes)
	resp := struct {
		Decorations []decorationJSON `json:"decorations"`
		Runs        []runJSON        `json:"runs"`
	}{
		Decorations: make([]decorationJSON, 0, len(decos)),
		Runs:        []runJSON{},
	}
	for _, d := range decos {
		resp.Decorations = append(resp.Decorations, decorationJSON{
			Span:  d.Span,
			Tag:   d.Tag,
			Depth: d.Depth,
			Class: decorate.ClassName(s.cfg.ClassPrefix, d.Tag),
		})
	}
	for _, run := range decorate.Flatten(decos, spantree.Len16(req.Text)) {
		resp.Runs = append(resp.Runs, runJSON{
			Span:    run.Span,
			Tags:    run.Tags,
			Classes: run.Classes(s.cfg.ClassPrefix),
		})
	}
	writeJSON(w, resp)
}

// handleActive reports the toolbar state for the selection.
func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	var req docRequest
	if !decodeBody(w, r, &req) {
		return
	}
	nodes, ok := s.parse(r.Context(), w, req.Text)
	if !ok {
		return
	}

	resp := struct {
		Active []spantree.Type `json:"active"`
		Path   []nodeJSON      `json:"path"`
	}{
		Active: locate.ActiveTypes(nodes, req.Selection).Sorted(),
		Path:   []nodeJSON{},
	}
	for _, n := range locate.Path(nodes, req.Selection) {
		resp.Path = append(resp.Path, nodeJSON{Type: n.Type, Span: n.Span})
	}
	if resp.Active == nil {
		resp.Active = []spantree.Type{}
	}
	writeJSON(w, resp)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		docRequest
		Action string `json:"action"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	action, ok := toggle.Lookup(req.Action)
	if !ok {
		jsonError(w, "unknown action: "+req.Action, http.StatusBadRequest)
		return
	}

	nodes, err := engine.Parse(r.Context(), s.eng, req.Text)
	if err != nil {
		s.log.Warn("parse failed, wrapping by text", "action", action.Name, "error", err)
		writeJSON(w, toResultJSON(toggle.WrapSelection(req.Text, req.Selection, action.Markers)))
		return
	}
	writeJSON(w, toResultJSON(action.Run(req.Text, nodes, req.Selection)))
}

func (s *Server) handleWrap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		docRequest
		Before string `json:"before"`
		After  string `json:"after"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	m := toggle.Markers{Before: req.Before, After: req.After}
	writeJSON(w, toResultJSON(toggle.WrapSelection(req.Text, req.Selection, m)))
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	var req docRequest
	if !decodeBody(w, r, &req) {
		return
	}
	nodes, ok := s.parse(r.Context(), w, req.Text)
	if !ok {
		return
	}

	tree := section.Build(nodes)
	resp := struct {
		Preamble []nodeJSON      `json:"preamble"`
		Outline  []section.Entry `json:"outline"`
	}{
		Preamble: []nodeJSON{},
		Outline:  tree.Outline(),
	}
	for _, n := range tree.Preamble {
		resp.Preamble = append(resp.Preamble, nodeJSON{Type: n.Type, Span: n.Span})
	}
	if resp.Outline == nil {
		resp.Outline = []section.Entry{}
	}
	writeJSON(w, resp)
}

// handleAnchors extracts the render blocks of a preview. The HTML is
// rendered by the engine unless the request already carries it.
func (s *Server) handleAnchors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		HTML   string `json:"html"`
		Offset *int   `json:"offset"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	doc := req.HTML
	if doc == "" {
		var err error
		doc, err = s.eng.Render(r.Context(), req.Text)
		if err != nil {
			s.log.Warn("render failed", "error", err)
			jsonError(w, "render: "+err.Error(), http.StatusBadGateway)
			return
		}
	}
	anchors, err := preview.Anchors(doc)
	if err != nil {
		jsonError(w, "parse preview: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := struct {
		Anchors []preview.Anchor `json:"anchors"`
		At      *preview.Anchor  `json:"at,omitempty"`
	}{Anchors: anchors}
	if resp.Anchors == nil {
		resp.Anchors = []preview.Anchor{}
	}
	if req.Offset != nil {
		if a, ok := preview.Nearest(anchors, *req.Offset); ok {
			resp.At = &a
		}
	}
	writeJSON(w, resp)
}

// parse runs the engine; on failure it writes a 502 and reports false.
func (s *Server) parse(ctx context.Context, w http.ResponseWriter, text string) ([]*spantree.Node, bool) {
	nodes, err := engine.Parse(ctx, s.eng, text)
	if err != nil {
		s.log.Warn("parse failed", "error", err)
		jsonError(w, "engine: "+err.Error(), http.StatusBadGateway)
		return nil, false
	}
	return nodes, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
