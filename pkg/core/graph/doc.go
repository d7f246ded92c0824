// Package graph models a worksheet as a graph of label regions and exposes
// the connected components induced by a set of enabled edges.
//
// # Edges
//
// Two regions are connected when they are aligned along an axis: regions
// sharing column indices are aligned vertically, regions sharing row indices
// are aligned horizontally. [New] builds the edge list once with two sweeps,
// one over regions ordered by top row and one over regions ordered by left
// column. Each source region keeps the set of its indices that are still
// unclaimed; every later region that intersects that set produces an edge
// and claims all of its own indices. A column shared by three stacked
// regions A, B and C therefore connects A-B and B-C, never A-C. Each
// unordered pair of regions receives at most one edge.
//
// # Partitions
//
// The edge list never changes after construction. A partition hypothesis is
// a boolean toggle per edge: enabled edges keep two regions in the same
// table, disabled edges cut them apart. [Graph.Components] flood-fills over
// the enabled edges and [Graph.TableDefinitions] merges each component into
// one bounding box.
//
// Search strategies try many toggle vectors against the same graph. Use
// [Graph.WithToggles] to evaluate a candidate without leaving it installed.
//
// # Component Views
//
// [Component] wraps one connected component and memoizes the derived data
// the fitness metrics need: data and header regions, the bounding box,
// header groups, the topmost header group and the column sets covered by
// headers and data. A Component keeps a pointer to its graph only to look
// up edges and sheet dimensions; it never modifies the graph.
//
// Graphs and components are not safe for concurrent use.
package graph
