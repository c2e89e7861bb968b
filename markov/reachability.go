// SPDX-License-Identifier: MIT

package markov

import "github.com/katalvlaran/evodyn/matrix"

// Irreducible reports whether every monomorphic state of t can reach every
// other one through transitions with probability > eps. An irreducible chain
// has a simple unit eigenvalue and therefore a unique ergodic distribution.
//
// Implementation:
//   - Stage 1: Breadth-first search from state 0 along edges i→j.
//   - Stage 2: Breadth-first search from state 0 along reversed edges j→i.
//   - Strongly connected iff both searches visit all states.
//
// A nil or non-square matrix is reported as not irreducible.
//
// Complexity: O(|S|²).
func Irreducible(t *matrix.Dense, eps float64) bool {
	if t == nil {
		return false
	}
	n, c := t.Shape()
	if n != c || n == 0 {
		return false
	}
	rows := t.RawRows()

	forward := func(i, j int) bool { return rows[i][j] > eps }
	reverse := func(i, j int) bool { return rows[j][i] > eps }

	return reachesAll(n, forward) && reachesAll(n, reverse)
}

// reachesAll runs a FIFO breadth-first walk from vertex 0.
func reachesAll(n int, edge func(i, j int) bool) bool {
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	visited[0] = true
	queue = append(queue, 0)
	seen := 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for nb := 0; nb < n; nb++ {
			if visited[nb] || nb == cur || !edge(cur, nb) {
				continue
			}
			visited[nb] = true
			seen++
			queue = append(queue, nb)
		}
	}

	return seen == n
}
