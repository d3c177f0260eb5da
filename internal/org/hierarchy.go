package org

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrCycle         = errors.New("parent would create a cycle")
	ErrUnknownParent = errors.New("parent does not exist")
)

// CheckParent reports whether parent may become the parent of id. parents
// maps every existing node to its current parent, nil for roots. A node may
// not be its own parent or the descendant of itself, and the parent must
// exist.
func CheckParent(id uuid.UUID, parent *uuid.UUID, parents map[uuid.UUID]*uuid.UUID) error {
	if parent == nil {
		return nil
	}

	if *parent == id {
		return ErrCycle
	}

	if _, ok := parents[*parent]; !ok {
		return ErrUnknownParent
	}

	seen := map[uuid.UUID]struct{}{*parent: {}}

	for cur := parents[*parent]; cur != nil; cur = parents[*cur] {
		if *cur == id {
			return ErrCycle
		}

		if _, ok := seen[*cur]; ok {
			// The stored hierarchy already loops; refuse to extend it.
			return ErrCycle
		}

		seen[*cur] = struct{}{}
	}

	return nil
}

// Node is one entry of an organization chart.
type Node struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	Children []*Node    `json:"children,omitempty"`
}

// BuildTree arranges flat nodes into a forest ordered by name. Nodes whose
// parent is missing from the input are treated as roots; nodes caught in a
// stored cycle are left out.
func BuildTree(flat []Node) []*Node {
	byID := make(map[uuid.UUID]*Node, len(flat))
	for i := range flat {
		n := flat[i]
		n.Children = nil
		byID[n.ID] = &n
	}

	var roots []*Node

	for i := range flat {
		n := byID[flat[i].ID]

		if n.ParentID != nil {
			if p, ok := byID[*n.ParentID]; ok && p != n {
				p.Children = append(p.Children, n)
				continue
			}
		}

		roots = append(roots, n)
	}

	sortNodes(roots)

	return roots
}

func sortNodes(nodes []*Node) {
	slices.SortFunc(nodes, func(a, b *Node) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

func parentMap[T any](items []T, key func(T) (uuid.UUID, *uuid.UUID)) map[uuid.UUID]*uuid.UUID {
	m := make(map[uuid.UUID]*uuid.UUID, len(items))
	for _, it := range items {
		id, parent := key(it)
		m[id] = parent
	}

	return m
}
