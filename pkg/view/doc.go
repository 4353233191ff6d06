// Package view is the renderable tree the grid hands to a rendering surface.
//
// The core never draws anything. Column renderers return Nodes; a surface
// (terminal, HTTP, MCP) walks them, draws what it can, and reports user edits
// back by calling the OnChange of the Input it drew.
package view
