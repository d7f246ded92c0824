// Package region defines the geometric leaf types of sheetgraph: bounding
// boxes over spreadsheet cells and the typed label regions built on them.
//
// # Coordinates
//
// All coordinates are 1-indexed and inclusive, matching spreadsheet
// conventions: a [BoundingBox] with Top=1, Left=1, Bottom=2, Right=3 covers
// the six cells A1:C2. Rows grow downward and columns grow to the right.
//
// # Label Regions
//
// A [LabelRegion] is a rectangle of cells that an upstream classifier marked
// as either [Header] or [Data]. Label regions are the nodes of the sheet
// graph built by package graph. They are plain values and never change once
// created.
//
// # Merging
//
// [Merge] computes the minimal box enclosing a set of boxes. The table
// definitions reported by the graph are merges of each connected component.
package region
