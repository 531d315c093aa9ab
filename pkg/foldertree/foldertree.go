// Package foldertree turns the flat, owner-scoped folder rows into the
// navigable structures the dashboard renders: a nested tree, a filtered
// tree that keeps ancestor paths, and a breadcrumb trail.
package foldertree

import (
	"strings"

	"github.com/dataroom/backend/internal/models"
	"github.com/google/uuid"
)

type Node struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	ParentFolderID *uuid.UUID `json:"parentFolderId"`
	Children       []*Node    `json:"children"`
}

// Build assembles a forest from flat folder rows. A folder whose declared
// parent is missing from the set is promoted to root level rather than
// dropped; that tolerates a parent deleted concurrently or belonging to a
// different scope. The result holds exactly one node per input row.
func Build(folders []models.Folder) []*Node {
	nodes := make(map[uuid.UUID]*Node, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &Node{
			ID:             f.ID,
			Name:           f.Name,
			ParentFolderID: f.ParentFolderID,
			Children:       []*Node{},
		}
	}

	roots := make([]*Node, 0)
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentFolderID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*f.ParentFolderID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}

// Filter keeps nodes whose name contains term (case-insensitive), plus any
// ancestor of a matching node. A matching node keeps only the children that
// themselves survive the filter. The input forest is not mutated; an empty
// or whitespace-only term returns it unchanged.
func Filter(nodes []*Node, term string) []*Node {
	term = strings.TrimSpace(term)
	if term == "" {
		return nodes
	}
	return filterNodes(nodes, strings.ToLower(term))
}

func filterNodes(nodes []*Node, term string) []*Node {
	out := make([]*Node, 0)
	for _, node := range nodes {
		matches := strings.Contains(strings.ToLower(node.Name), term)
		children := filterNodes(node.Children, term)
		if !matches && len(children) == 0 {
			continue
		}
		out = append(out, &Node{
			ID:             node.ID,
			Name:           node.Name,
			ParentFolderID: node.ParentFolderID,
			Children:       children,
		})
	}
	return out
}

// CollectIDs returns every folder id in the forest, nested nodes included.
func CollectIDs(nodes []*Node) []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			ids = append(ids, n.ID)
			walk(n.Children)
		}
	}
	walk(nodes)
	return ids
}

// Crumb is one breadcrumb segment. A nil ID marks the implicit root.
type Crumb struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name"`
}

const rootCrumbName = "All files"

// Breadcrumb walks the parent chain from folderID up to root and returns the
// trail in root-first order, with the implicit root segment prepended. A nil
// folderID yields just the root segment; a broken chain stops silently at
// the last resolvable folder.
func Breadcrumb(folders []models.Folder, folderID *uuid.UUID) []Crumb {
	path := []Crumb{{ID: nil, Name: rootCrumbName}}
	if folderID == nil {
		return path
	}

	byID := make(map[uuid.UUID]models.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}

	trail := make([]Crumb, 0)
	current := folderID
	for current != nil {
		folder, ok := byID[*current]
		if !ok {
			break
		}
		id := folder.ID
		trail = append([]Crumb{{ID: &id, Name: folder.Name}}, trail...)
		current = folder.ParentFolderID
	}

	return append(path, trail...)
}

// Collapse shortens trails longer than three segments to the first segment
// plus the last two; the hidden middle is returned separately so the UI can
// render it behind an ellipsis.
func Collapse(path []Crumb) (visible []Crumb, hidden []Crumb) {
	if len(path) <= 3 {
		return path, []Crumb{}
	}
	visible = make([]Crumb, 0, 3)
	visible = append(visible, path[0])
	visible = append(visible, path[len(path)-2:]...)
	hidden = path[1 : len(path)-2]
	return visible, hidden
}
