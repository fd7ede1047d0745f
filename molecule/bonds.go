/*
 * bonds.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package molecule

// NonBondedPairs returns every unordered pair of heavy-atom indices that
// are NOT separated by a path of 3 or fewer bonds, i.e. the pairs the
// intra-ligand scoring sum must include ("sum intra-ligand
// pairwise scoring for non-bonded pairs not separated by ≤3 bonds").
// Computed once per Ligand and safe to reuse across every Monte Carlo task
// for that ligand, since it depends only on the (fixed) bond graph.
func (l *Ligand) NonBondedPairs() [][2]int {
	n := len(l.Atoms)
	adj := make([][]int, n)
	for _, b := range l.Bonds {
		adj[b.Atom1] = append(adj[b.Atom1], b.Atom2)
		adj[b.Atom2] = append(adj[b.Atom2], b.Atom1)
	}

	excluded := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		excluded[i] = bfsWithin(adj, i, 3)
	}

	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !excluded[i][j] {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// bfsWithin returns the set of nodes reachable from start within maxDepth
// bond-graph hops (start itself included).
func bfsWithin(adj [][]int, start, maxDepth int) map[int]bool {
	visited := map[int]bool{start: true}
	frontier := []int{start}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []int
		for _, u := range frontier {
			for _, v := range adj[u] {
				if !visited[v] {
					visited[v] = true
					next = append(next, v)
				}
			}
		}
		frontier = next
	}
	return visited
}
