// Package buffer implements the document model behind the editor: text,
// selection, and undo history.
//
// Offsets are UTF-16 code units, the unit the markup engine reports spans in.
// Selections are anchor/head pairs; a caret is a selection with Anchor ==
// Head. Edits are applied as transactions, each one an undo step.
package buffer
