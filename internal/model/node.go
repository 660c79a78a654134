package model

import "strings"

// NodeKind classifies a node of the source tree.
type NodeKind int

// Available NodeKind values.
const (
	// FileGroup holds the source files found directly in one directory.
	FileGroup NodeKind = iota
	// Directory represents a subdirectory; its files belong to descendant FileGroups.
	Directory
)

// String returns a readable name for the kind.
func (k NodeKind) String() string {
	if k == FileGroup {
		return "files"
	}

	return "dir"
}

// Node is a unit of the source tree. Nodes are immutable once built.
type Node struct {
	Kind     NodeKind
	RootPath Path
	Files    []Path
	Children []*Node

	count int
}

// NewFileGroup builds a FileGroup node for the files directly inside dir.
func NewFileGroup(dir Path, files []Path) *Node {
	return &Node{Kind: FileGroup, RootPath: dir, Files: files, count: len(files)}
}

// NewDirectory builds a Directory node over its children.
func NewDirectory(dir Path, children []*Node) *Node {
	count := 0
	for _, c := range children {
		count += c.FileCount()
	}

	return &Node{Kind: Directory, RootPath: dir, Children: children, count: count}
}

// FileCount returns the number of source files owned by the node's subtree.
func (n *Node) FileCount() int {
	if n == nil {
		return 0
	}

	return n.count
}

// AllFiles returns every file of the subtree in depth-first order.
func (n *Node) AllFiles() []Path {
	if n == nil {
		return nil
	}

	files := make([]Path, 0, n.count)

	var walk func(*Node)

	walk = func(node *Node) {
		files = append(files, node.Files...)
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)

	return files
}

// Segment is an ordered list of nodes processed as one unit of work.
type Segment []*Node

// FileCount returns the total number of files in the segment.
func (s Segment) FileCount() int {
	total := 0
	for _, n := range s {
		total += n.FileCount()
	}

	return total
}

// Files returns the files of all nodes of the segment.
func (s Segment) Files() []Path {
	files := make([]Path, 0, s.FileCount())
	for _, n := range s {
		files = append(files, n.AllFiles()...)
	}

	return files
}

// Describe renders the segment for crash reports: directories by root path,
// file groups by their file list.
func (s Segment) Describe() string {
	parts := make([]string, 0, len(s))

	for _, n := range s {
		if n.Kind == Directory {
			parts = append(parts, string(n.RootPath))
			continue
		}

		files := make([]string, 0, len(n.Files))
		for _, f := range n.Files {
			files = append(files, string(f))
		}

		parts = append(parts, "["+strings.Join(files, ", ")+"]")
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
