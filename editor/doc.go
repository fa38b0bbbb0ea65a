// Package editor provides a Bubble Tea component that edits a SevenMark
// document through a session.
//
// The component handles input, viewport scrolling and grapheme-aware
// rendering. Syntax colors come from the session's decoration runs and are
// painted with a Theme; formatting shortcuts run the session's toggle
// actions. A status line shows the node types enclosing the selection.
package editor
