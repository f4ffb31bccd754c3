// Copyright 2023-2025 The kfst-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scc contains an implementation of Tarjan's algorithm, which
// converts a directed graph into its strongly-connected components
// (subgraphs such that every node is reachable from every other node).
package scc

import "iter"

// Graph is a "local" representation of a directed graph, which exposes the
// outgoing edges from some node.
type Graph[Node comparable] func(Node) iter.Seq[Node]

// Component is a strongly connected component.
type Component[Node comparable] struct {
	// Members lists the nodes of the component in reverse discovery order.
	Members []Node
	// Cyclic reports whether the component contains a cycle: more than one
	// member, or a single member with a self-edge.
	Cyclic bool
}

// Sort computes the strongly connected components of the subgraph reachable
// from roots, using Tarjan's algorithm. Components are produced in reverse
// topological order.
func Sort[Node comparable](roots []Node, graph Graph[Node]) []Component[Node] {
	s := &tarjan[Node]{
		graph:    graph,
		metadata: make(map[Node]*metadata),
	}
	for _, root := range roots {
		if _, ok := s.metadata[root]; !ok {
			s.rec(root)
		}
	}
	return s.components
}

// tarjan is the state needed to execute Tarjan's recursive SCC algorithm.
//
// See https://en.wikipedia.org/wiki/Tarjan%27s_strongly_connected_components_algorithm
type tarjan[Node comparable] struct {
	graph      Graph[Node]
	components []Component[Node]

	index int
	stack []Node

	metadata map[Node]*metadata
}

// metadata is per-node bookkeeping for [tarjan].
type metadata struct {
	index, lowlink int
	onStack        bool
	selfEdge       bool
}

func (s *tarjan[Node]) rec(node Node) *metadata {
	md := &metadata{index: s.index, lowlink: s.index}
	s.metadata[node] = md
	s.index++
	s.stack = append(s.stack, node)
	md.onStack = true

	for next := range s.graph(node) {
		if next == node {
			md.selfEdge = true
		}
		nextMD, ok := s.metadata[next]
		switch {
		case !ok:
			nextMD = s.rec(next)
			md.lowlink = min(md.lowlink, nextMD.lowlink)
		case nextMD.onStack:
			md.lowlink = min(md.lowlink, nextMD.index)
		}
	}

	if md.lowlink == md.index {
		var c Component[Node]
		for {
			top := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			s.metadata[top].onStack = false
			c.Members = append(c.Members, top)
			if top == node {
				break
			}
		}
		c.Cyclic = len(c.Members) > 1 || md.selfEdge
		s.components = append(s.components, c)
	}
	return md
}
