package foldertree

import (
	"testing"

	"github.com/dataroom/backend/internal/models"
	"github.com/google/uuid"
)

func folder(id uuid.UUID, name string, parent *uuid.UUID) models.Folder {
	f := models.Folder{Name: name, ParentFolderID: parent}
	f.ID = id
	return f
}

func countNodes(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + countNodes(n.Children)
	}
	return total
}

func findNode(nodes []*Node, id uuid.UUID) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := findNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

func TestBuildPreservesNodeCount(t *testing.T) {
	rootA := uuid.New()
	rootB := uuid.New()
	childA1 := uuid.New()
	childA2 := uuid.New()
	grandchild := uuid.New()

	folders := []models.Folder{
		folder(rootA, "Contracts", nil),
		folder(rootB, "Invoices", nil),
		folder(childA1, "2024", &rootA),
		folder(childA2, "2025", &rootA),
		folder(grandchild, "Q1", &childA1),
	}

	tree := Build(folders)

	if got := countNodes(tree); got != len(folders) {
		t.Fatalf("expected %d nodes in tree, got %d", len(folders), got)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 root nodes, got %d", len(tree))
	}

	node := findNode(tree, grandchild)
	if node == nil {
		t.Fatalf("expected grandchild node in tree")
	}
	if node.ParentFolderID == nil || *node.ParentFolderID != childA1 {
		t.Fatalf("grandchild parent mismatch: %v", node.ParentFolderID)
	}
}

func TestBuildPromotesOrphansToRoot(t *testing.T) {
	missingParent := uuid.New()
	orphan := uuid.New()

	tree := Build([]models.Folder{
		folder(orphan, "Lost", &missingParent),
	})

	if len(tree) != 1 {
		t.Fatalf("expected orphan promoted to root, got %d roots", len(tree))
	}
	if tree[0].ID != orphan {
		t.Fatalf("unexpected root node %v", tree[0].ID)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if tree := Build(nil); len(tree) != 0 {
		t.Fatalf("expected empty forest, got %d roots", len(tree))
	}
}

func TestFilterKeepsAncestorsOfMatches(t *testing.T) {
	root := uuid.New()
	mid := uuid.New()
	leaf := uuid.New()
	sibling := uuid.New()

	tree := Build([]models.Folder{
		folder(root, "Legal", nil),
		folder(mid, "Contracts", &root),
		folder(leaf, "Signed", &mid),
		folder(sibling, "Marketing", nil),
	})

	filtered := Filter(tree, "signed")

	if len(filtered) != 1 {
		t.Fatalf("expected 1 root after filtering, got %d", len(filtered))
	}
	if filtered[0].ID != root {
		t.Fatalf("expected ancestor path to survive the filter")
	}
	if findNode(filtered, sibling) != nil {
		t.Fatalf("expected non-matching branch to be pruned")
	}
	if findNode(filtered, leaf) == nil {
		t.Fatalf("expected matching leaf to survive")
	}

	// A matching node keeps only children that survive the filter.
	contracts := findNode(filtered, mid)
	if contracts == nil || len(contracts.Children) != 1 {
		t.Fatalf("expected Contracts with exactly its matching child")
	}
}

func TestFilterBlankTermReturnsInput(t *testing.T) {
	root := uuid.New()
	tree := Build([]models.Folder{folder(root, "Reports", nil)})

	for _, term := range []string{"", "   ", "\t"} {
		filtered := Filter(tree, term)
		if len(filtered) != len(tree) || filtered[0] != tree[0] {
			t.Fatalf("expected blank term %q to return the input forest", term)
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	root := uuid.New()
	child := uuid.New()
	tree := Build([]models.Folder{
		folder(root, "Archive", nil),
		folder(child, "Old reports", &root),
	})

	once := Filter(tree, "reports")
	twice := Filter(once, "reports")

	if countNodes(once) != countNodes(twice) {
		t.Fatalf("filter not idempotent: %d vs %d nodes", countNodes(once), countNodes(twice))
	}
	if findNode(twice, child) == nil {
		t.Fatalf("expected match to survive a second filter pass")
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	root := uuid.New()
	child := uuid.New()
	tree := Build([]models.Folder{
		folder(root, "Keep", nil),
		folder(child, "Drop", &root),
	})

	Filter(tree, "keep")

	if len(tree[0].Children) != 1 {
		t.Fatalf("input tree was mutated by Filter")
	}
}

func TestCollectIDs(t *testing.T) {
	root := uuid.New()
	child := uuid.New()
	tree := Build([]models.Folder{
		folder(root, "A", nil),
		folder(child, "B", &root),
	})

	ids := CollectIDs(tree)
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
}

func TestBreadcrumbWalksToRoot(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	folders := []models.Folder{
		folder(a, "A", nil),
		folder(b, "B", &a),
		folder(c, "C", &b),
	}

	path := Breadcrumb(folders, &c)
	if len(path) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(path))
	}
	if path[0].ID != nil || path[0].Name != "All files" {
		t.Fatalf("expected implicit root first, got %+v", path[0])
	}
	want := []string{"All files", "A", "B", "C"}
	for i, name := range want {
		if path[i].Name != name {
			t.Fatalf("segment %d: expected %q, got %q", i, name, path[i].Name)
		}
	}
}

func TestBreadcrumbNilFolder(t *testing.T) {
	path := Breadcrumb(nil, nil)
	if len(path) != 1 || path[0].Name != "All files" {
		t.Fatalf("expected only the root segment, got %+v", path)
	}
}

func TestBreadcrumbBrokenChainStops(t *testing.T) {
	missing := uuid.New()
	leaf := uuid.New()
	folders := []models.Folder{
		folder(leaf, "Leaf", &missing),
	}

	path := Breadcrumb(folders, &leaf)
	if len(path) != 2 {
		t.Fatalf("expected root + leaf, got %d segments", len(path))
	}
}

func TestCollapseDeepTrail(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	folders := []models.Folder{
		folder(a, "A", nil),
		folder(b, "B", &a),
		folder(c, "C", &b),
		folder(d, "D", &c),
	}

	path := Breadcrumb(folders, &d)
	visible, hidden := Collapse(path)

	wantVisible := []string{"All files", "C", "D"}
	if len(visible) != len(wantVisible) {
		t.Fatalf("expected %d visible segments, got %d", len(wantVisible), len(visible))
	}
	for i, name := range wantVisible {
		if visible[i].Name != name {
			t.Fatalf("visible segment %d: expected %q, got %q", i, name, visible[i].Name)
		}
	}

	wantHidden := []string{"A", "B"}
	if len(hidden) != len(wantHidden) {
		t.Fatalf("expected %d hidden segments, got %d", len(wantHidden), len(hidden))
	}
	for i, name := range wantHidden {
		if hidden[i].Name != name {
			t.Fatalf("hidden segment %d: expected %q, got %q", i, name, hidden[i].Name)
		}
	}
}

func TestCollapseShortTrailUnchanged(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	folders := []models.Folder{
		folder(a, "A", nil),
		folder(b, "B", &a),
	}

	path := Breadcrumb(folders, &b)
	visible, hidden := Collapse(path)

	if len(visible) != 3 || len(hidden) != 0 {
		t.Fatalf("expected short trail untouched, got visible=%d hidden=%d", len(visible), len(hidden))
	}
}
