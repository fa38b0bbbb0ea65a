package api

import (
	"net/http"

	"github.com/iw2rmb/smedit/locate"
	"github.com/iw2rmb/smedit/spantree"
	"github.com/iw2rmb/smedit/table"
)

type rectJSON struct {
	R0 int `json:"r0"`
	C0 int `json:"c0"`
	R1 int `json:"r1"`
	C1 int `json:"c1"`
}

type gridRequest struct {
	Grid table.Grid `json:"grid"`
	Rect rectJSON   `json:"rect"`
}

type gridResponse struct {
	Grid   table.Grid `json:"grid"`
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Markup string     `json:"markup"`
}

// checkGrid rejects grids whose dense form is too large to lay out.
func checkGrid(w http.ResponseWriter, g table.Grid) bool {
	if err := table.Check(g); err != nil {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return false
	}
	return true
}

func newGridResponse(g table.Grid) gridResponse {
	if g == nil {
		g = table.Grid{}
	}
	d := table.Layout(g)
	return gridResponse{Grid: g, Rows: d.Rows, Cols: d.Cols, Markup: table.Serialize(g)}
}

// handleTableParse reads the table enclosing the selection. The returned
// span is where the edited markup goes back.
func (s *Server) handleTableParse(w http.ResponseWriter, r *http.Request) {
	var req docRequest
	if !decodeBody(w, r, &req) {
		return
	}
	nodes, ok := s.parse(r.Context(), w, req.Text)
	if !ok {
		return
	}
	n := locate.FindEnclosing(nodes, req.Selection, spantree.Table)
	if n == nil {
		jsonError(w, "no table at selection", http.StatusNotFound)
		return
	}

	g := table.Parse(n, spantree.NewSource(req.Text))
	if !checkGrid(w, g) {
		return
	}
	resp := struct {
		Span spantree.Span `json:"span"`
		gridResponse
	}{
		Span:         n.Span,
		gridResponse: newGridResponse(g),
	}
	writeJSON(w, resp)
}

func (s *Server) handleTableMerge(w http.ResponseWriter, r *http.Request) {
	var req gridRequest
	if !decodeBody(w, r, &req) || !checkGrid(w, req.Grid) {
		return
	}
	writeJSON(w, newGridResponse(table.Merge(req.Grid, req.Rect.R0, req.Rect.C0, req.Rect.R1, req.Rect.C1)))
}

func (s *Server) handleTableSplit(w http.ResponseWriter, r *http.Request) {
	var req gridRequest
	if !decodeBody(w, r, &req) || !checkGrid(w, req.Grid) {
		return
	}
	writeJSON(w, newGridResponse(table.Split(req.Grid, req.Rect.R0, req.Rect.C0, req.Rect.R1, req.Rect.C1)))
}

func (s *Server) handleTableSerialize(w http.ResponseWriter, r *http.Request) {
	var req gridRequest
	if !decodeBody(w, r, &req) || !checkGrid(w, req.Grid) {
		return
	}
	writeJSON(w, newGridResponse(req.Grid))
}
