// pkg/hexmap/pathfinding.go
package hexmap

import (
	"container/heap"
	"math"
)

// PathCost returns the cost of stepping from one tile onto an adjacent one.
// +Inf marks the step as impassable.
type PathCost func(from, to Hex) float64

// FindPath находит самый дешёвый путь от start до любого гекса, для которого
// isGoal возвращает true. heuristic must not overestimate the remaining cost.
// Returns nil when no goal is reachable.
func (g *Grid) FindPath(start Hex, isGoal func(Hex) bool, cost PathCost, heuristic func(Hex) float64) []Hex {
	if !g.Contains(start) {
		return nil
	}
	pq := &PriorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &Node{Hex: start, Cost: heuristic(start), Parent: nil})
	costSoFar := map[Hex]float64{start: 0}
	closed := make(map[Hex]struct{})
	seq := 0
	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		if _, done := closed[current.Hex]; done {
			continue
		}
		closed[current.Hex] = struct{}{}
		if isGoal(current.Hex) {
			return reconstructPath(current)
		}
		for _, neighbor := range g.Neighbors(current.Hex) {
			if _, done := closed[neighbor]; done {
				continue
			}
			step := cost(current.Hex, neighbor)
			if math.IsInf(step, 1) {
				continue
			}
			newCost := costSoFar[current.Hex] + step
			if old, exists := costSoFar[neighbor]; !exists || newCost < old {
				costSoFar[neighbor] = newCost
				seq++
				heap.Push(pq, &Node{Hex: neighbor, Cost: newCost + heuristic(neighbor), Parent: current, seq: seq})
			}
		}
	}
	return nil // Нет пути
}

// PriorityQueue для A*
type PriorityQueue []*Node

type Node struct {
	Hex    Hex
	Cost   float64
	Parent *Node
	seq    int
}

func (pq PriorityQueue) Len() int { return len(pq) }

// Less breaks cost ties by insertion order so searches are reproducible.
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost == pq[j].Cost {
		return pq[i].seq < pq[j].seq
	}
	return pq[i].Cost < pq[j].Cost
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func reconstructPath(node *Node) []Hex {
	path := []Hex{}
	for node != nil {
		path = append([]Hex{node.Hex}, path...)
		node = node.Parent
	}
	return path
}
