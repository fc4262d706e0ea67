// Package sink renders computed wall maps into output formats.
//
// Three surfaces are provided:
//
//   - [RenderJSON]: the primary interchange document with world-space wall
//     segments, label anchors, bounds, and counts
//   - [RenderSVG]: a 2D preview of the floor plan
//   - [ToDOT] plus [RenderGraphSVG]/[RenderGraphPNG]: a room adjacency
//     diagram rendered through Graphviz
//
// All renderers consume a [Scene], which carries world-space geometry only.
// Grid-to-world conversion happens upstream in the worldmap package.
package sink
