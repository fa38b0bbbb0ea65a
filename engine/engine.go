// Package engine adapts the external SevenMark engine: it produces the AST
// JSON for a document and the rendered HTML preview. The editing core never
// parses markup itself.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iw2rmb/smedit/spantree"
)

// Engine is the external markup engine.
type Engine interface {
	// Highlight returns the AST of src as externally tagged JSON with UTF-16
	// offsets.
	Highlight(ctx context.Context, src string) ([]byte, error)
	// Render returns the HTML preview of src.
	Render(ctx context.Context, src string) (string, error)
}

// ErrNoRenderer is returned by engines that only parse.
var ErrNoRenderer = errors.New("engine: render not supported")

// Funcs adapts plain functions to Engine. A nil RenderFunc makes Render
// return ErrNoRenderer.
type Funcs struct {
	HighlightFunc func(ctx context.Context, src string) ([]byte, error)
	RenderFunc    func(ctx context.Context, src string) (string, error)
}

func (f Funcs) Highlight(ctx context.Context, src string) ([]byte, error) {
	if f.HighlightFunc == nil {
		return []byte("[]"), nil
	}
	return f.HighlightFunc(ctx, src)
}

func (f Funcs) Render(ctx context.Context, src string) (string, error) {
	if f.RenderFunc == nil {
		return "", ErrNoRenderer
	}
	return f.RenderFunc(ctx, src)
}

// Parse runs the engine and decodes its AST.
func Parse(ctx context.Context, e Engine, src string) ([]*spantree.Node, error) {
	data, err := e.Highlight(ctx, src)
	if err != nil {
		return nil, err
	}
	nodes, err := spantree.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode ast: %w", err)
	}
	return nodes, nil
}

// Cached remembers the last Highlight and Render results, keyed by source
// text. Editors ask for the same document repeatedly between keystrokes.
type Cached struct {
	Engine Engine

	mu      sync.Mutex
	astSrc  string
	ast     []byte
	hasAST  bool
	htmlSrc string
	html    string
	hasHTML bool
}

// NewCached wraps e in a Cached.
func NewCached(e Engine) *Cached { return &Cached{Engine: e} }

func (c *Cached) Highlight(ctx context.Context, src string) ([]byte, error) {
	c.mu.Lock()
	if c.hasAST && c.astSrc == src {
		data := c.ast
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	data, err := c.Engine.Highlight(ctx, src)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.astSrc, c.ast, c.hasAST = src, data, true
	c.mu.Unlock()
	return data, nil
}

func (c *Cached) Render(ctx context.Context, src string) (string, error) {
	c.mu.Lock()
	if c.hasHTML && c.htmlSrc == src {
		out := c.html
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	out, err := c.Engine.Render(ctx, src)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.htmlSrc, c.html, c.hasHTML = src, out, true
	c.mu.Unlock()
	return out, nil
}

// Reset drops both cached results.
func (c *Cached) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasAST, c.hasHTML = false, false
	c.ast, c.html = nil, ""
}
