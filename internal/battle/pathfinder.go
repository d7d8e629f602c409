package battle

import (
	"container/heap"
	"math"
)

// 4-directional movement: orthogonal steps only, every step costs 1.
var stepDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

type frontierNode struct {
	cell  Cell
	dist  int
	index int // heap index
}

type frontier []*frontierNode

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i]; f[i].index = i; f[j].index = j }
func (f *frontier) Push(x interface{}) {
	n := x.(*frontierNode)
	n.index = len(*f)
	*f = append(*f, n)
}
func (f *frontier) Pop() interface{} {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

// FindPath returns the shortest cell sequence from the attacker's cell to the
// target's cell, both endpoints included, oldest step first. Every other
// living unit in all blocks its cell; the attacker and target do not block
// their own. A nil result means the target is unreachable this turn — a
// normal outcome, not a failure.
//
// Uniform-cost Dijkstra with a min-frontier. With unit step costs this
// behaves like BFS, but the frontier formulation keeps the door open for
// weighted terrain later. Worst case O(W·H·log(W·H)).
func FindPath(attacker, target *Unit, all []*Unit) []Cell {
	occ := OccupiedBy(all, attacker, target)

	var dist [FieldWidth][FieldHeight]int
	var visited [FieldWidth][FieldHeight]bool
	var prev [FieldWidth][FieldHeight]Cell
	var hasPrev [FieldWidth][FieldHeight]bool
	for x := range dist {
		for y := range dist[x] {
			dist[x][y] = math.MaxInt
		}
	}

	start := attacker.Cell()
	goal := target.Cell()
	if !start.InField() || !goal.InField() {
		return nil
	}

	dist[start.X][start.Y] = 0
	fr := &frontier{{cell: start, dist: 0}}
	heap.Init(fr)

	for fr.Len() > 0 {
		cur := heap.Pop(fr).(*frontierNode)
		if visited[cur.cell.X][cur.cell.Y] {
			continue
		}
		visited[cur.cell.X][cur.cell.Y] = true

		// First pop of the goal is final: weights are non-negative and
		// the frontier is processed in non-decreasing distance order.
		if cur.cell == goal {
			break
		}

		for _, d := range stepDirs {
			nx, ny := cur.cell.X+d[0], cur.cell.Y+d[1]
			if occ.Blocked(nx, ny) {
				continue
			}
			nd := dist[cur.cell.X][cur.cell.Y] + 1
			if nd < dist[nx][ny] {
				dist[nx][ny] = nd
				prev[nx][ny] = cur.cell
				hasPrev[nx][ny] = true
				heap.Push(fr, &frontierNode{cell: Cell{nx, ny}, dist: nd})
			}
		}
	}

	// Walk the predecessor chain back from the goal.
	path := []Cell{}
	cur := goal
	for cur != start {
		path = append(path, cur)
		if !hasPrev[cur.X][cur.Y] {
			return nil
		}
		cur = prev[cur.X][cur.Y]
	}
	path = append(path, start)
	reverseCells(path)
	return path
}

func reverseCells(cells []Cell) {
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
}
