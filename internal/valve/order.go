package valve

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCycle is returned when tables reference each other in a cycle.
var ErrCycle = errors.New("reference cycle")

// DependencyOrder orders tables so that each table follows every table its
// from() columns reference. Self references and references to tables
// outside the list are ignored. When several tables are ready, the one listed
// first goes first.
func (r Relations) DependencyOrder(tables []string) ([]string, error) {
	index := make(map[string]int, len(tables))
	for i, t := range tables {
		index[t] = i
	}

	deps := make([][]int, len(tables))

	for _, c := range r.Columns {
		i, ok := index[c.Table]
		if !ok || !c.Structure.IsFrom() {
			continue
		}

		target, _, err := c.Structure.Target()
		if err != nil || target == c.Table {
			continue
		}

		if j, ok := index[target]; ok {
			deps[i] = append(deps[i], j)
		}
	}

	order, err := topoSort(len(tables), func(i int) []int { return deps[i] })
	if err != nil {
		var stuck []string

		for i, t := range tables {
			if !contains(order, i) {
				stuck = append(stuck, t)
			}
		}

		return nil, fmt.Errorf("tables %s: %w", strings.Join(stuck, ", "), err)
	}

	out := make([]string, len(order))
	for k, i := range order {
		out[k] = tables[i]
	}

	return out, nil
}

// topoSort returns node indices in dependency order. depsFn(i) yields the
// indices that must come before i. Among available nodes the smallest index
// is picked. On a cycle the partial order is returned with ErrCycle.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return order, ErrCycle
	}

	return order, nil
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
