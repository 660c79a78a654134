package domain

import m "github.com/mouse-blink/gorald/internal/model"

// PlanSegments packs the tree into segments of at most maxFiles files using a
// first-fit pass over a depth-first traversal. A node whose subtree fits is
// kept whole; an oversized Directory is split into its children; an oversized
// FileGroup cannot be split and becomes a segment of its own. maxFiles <= 0
// disables segmentation and yields the whole tree as one segment.
func PlanSegments(root *m.Node, maxFiles int) []m.Segment {
	if root.FileCount() == 0 {
		return nil
	}

	if maxFiles <= 0 {
		return []m.Segment{{root}}
	}

	p := &planner{max: maxFiles}
	p.visit(root)
	p.flush()

	return p.segments
}

type planner struct {
	max      int
	current  m.Segment
	size     int
	segments []m.Segment
}

func (p *planner) visit(n *m.Node) {
	count := n.FileCount()

	switch {
	case p.size+count <= p.max:
		p.add(n)
	case count <= p.max:
		p.flush()
		p.add(n)
	case n.Kind == m.FileGroup || len(n.Children) == 0:
		p.flush()
		p.add(n)
		p.flush()
	default:
		for _, child := range n.Children {
			p.visit(child)
		}
	}
}

func (p *planner) add(n *m.Node) {
	p.current = append(p.current, n)
	p.size += n.FileCount()
}

func (p *planner) flush() {
	if len(p.current) == 0 {
		return
	}

	p.segments = append(p.segments, p.current)
	p.current = nil
	p.size = 0
}
