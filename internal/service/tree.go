package service

import (
	"sort"

	"facility-registry-api-server/internal/models"
)

// AssembleForest builds the per-box variable forest from a flat slice.
// Each variable with a resolvable parent in the same slice is attached as a
// child; a variable whose parentVariableId does not resolve is demoted to a
// root, never dropped. Siblings (roots included) are ordered by ascending
// sortOrder with a stable sort, so ties keep insertion order.
func AssembleForest(variables []models.FacilityVariable) []*models.VariableNode {
	nodes := make(map[string]*models.VariableNode, len(variables))
	order := make([]*models.VariableNode, 0, len(variables))

	for i := range variables {
		n := &models.VariableNode{
			FacilityVariable: variables[i],
			SubVariables:     []*models.VariableNode{},
		}
		nodes[variables[i].ID.Hex()] = n
		order = append(order, n)
	}

	roots := make([]*models.VariableNode, 0, len(order))
	for _, n := range order {
		if n.ParentVariableID != nil {
			if parent, ok := nodes[n.ParentVariableID.Hex()]; ok && parent != n {
				parent.SubVariables = append(parent.SubVariables, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	sortSiblings(roots)
	for _, n := range order {
		sortSiblings(n.SubVariables)
	}
	return roots
}

func sortSiblings(siblings []*models.VariableNode) {
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].SortOrder < siblings[j].SortOrder
	})
}
