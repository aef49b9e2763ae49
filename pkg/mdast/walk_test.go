package mdast_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/aethermark/pkg/mdast"
)

func buildTestTree(t *testing.T) *mdast.Node {
	t.Helper()

	doc, err := mdast.BuildTree(listStream())
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	return doc
}

func TestWalk(t *testing.T) {
	t.Parallel()

	doc := buildTestTree(t)

	var visited []mdast.NodeKind
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	expected := []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeBulletList,
		mdast.NodeListItem,
		mdast.NodeParagraph,
		mdast.NodeInline,
		mdast.NodeListItem,
		mdast.NodeParagraph,
		mdast.NodeInline,
	}

	if len(visited) != len(expected) {
		t.Fatalf("visited %d nodes, expected %d: %v", len(visited), len(expected), visited)
	}
	for i, kind := range expected {
		if visited[i] != kind {
			t.Errorf("visited[%d] = %v, expected %v", i, visited[i], kind)
		}
	}
}

func TestWalkStopsOnError(t *testing.T) {
	t.Parallel()

	doc := buildTestTree(t)
	errStop := errors.New("stop")

	count := 0
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		count++
		if n.Kind == mdast.NodeParagraph {
			return errStop
		}
		return nil
	})

	if !errors.Is(err, errStop) {
		t.Errorf("Walk error = %v, want errStop", err)
	}
	if count != 4 {
		t.Errorf("visited %d nodes before stopping, want 4", count)
	}
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	doc := buildTestTree(t)

	depth, maxDepth := 0, 0
	err := mdast.WalkWithContext(doc,
		func(*mdast.Node) error {
			depth++
			maxDepth = max(maxDepth, depth)
			return nil
		},
		func(*mdast.Node) error {
			depth--
			return nil
		},
	)
	if err != nil {
		t.Fatalf("WalkWithContext: %v", err)
	}
	if depth != 0 {
		t.Errorf("enter/leave unbalanced, depth = %d", depth)
	}
	if maxDepth != 5 {
		t.Errorf("max depth = %d, want 5", maxDepth)
	}
}

func TestWalkerResume(t *testing.T) {
	t.Parallel()

	doc := buildTestTree(t)
	walker := mdast.NewWalker(doc)

	var entered []mdast.NodeKind
	for {
		entering, node := walker.Next()
		if node == nil {
			break
		}
		if !entering {
			continue
		}
		entered = append(entered, node.Kind)
		// Skip the contents of every list item.
		if node.Kind == mdast.NodeListItem {
			walker.ResumeAt(node, false)
		}
	}

	expected := []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeBulletList,
		mdast.NodeListItem,
		mdast.NodeListItem,
	}
	if len(entered) != len(expected) {
		t.Fatalf("entered %v, want %v", entered, expected)
	}
	for i := range expected {
		if entered[i] != expected[i] {
			t.Errorf("entered[%d] = %v, want %v", i, entered[i], expected[i])
		}
	}
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	doc := buildTestTree(t)

	found := mdast.FindFirst(doc, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeParagraph
	})
	if found == nil || found.Parent != doc.FirstChild.FirstChild {
		t.Fatal("FindFirst should return the paragraph of the first item")
	}

	if mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeFence }) != nil {
		t.Error("FindFirst should return nil when nothing matches")
	}
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	doc := buildTestTree(t)

	if got := len(mdast.FindByKind(doc, mdast.NodeListItem)); got != 2 {
		t.Errorf("found %d list items, want 2", got)
	}
	if got := len(mdast.FindByKind(doc, mdast.NodeHeading)); got != 0 {
		t.Errorf("found %d headings, want 0", got)
	}
}
