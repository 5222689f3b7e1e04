// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/classmodel/pkg/model"
)

func buildClasses(t *testing.T) []*model.Class {
	t.Helper()
	object := model.NewClass("js.Object")
	emitter := model.NewClass("node.event.EventEmitter")
	netServer := model.NewClass("node.net.Server")
	httpServer := model.NewClass("node.http.Server")
	socket := model.NewClass("node.net.Socket")
	stats := model.NewClass("node.fs.Stats")

	require.NoError(t, emitter.SetSuperClass(object))
	require.NoError(t, netServer.SetSuperClass(emitter))
	require.NoError(t, httpServer.SetSuperClass(netServer))
	require.NoError(t, socket.SetSuperClass(emitter))
	require.NoError(t, stats.SetSuperClass(object))
	require.NoError(t, socket.AddInterface(model.NewInterface("node.stream.Readable")))

	return []*model.Class{httpServer, socket, object, netServer, emitter, stats}
}

func TestBuildGraph(t *testing.T) {
	g := BuildGraph(buildClasses(t))

	assert.Len(t, g.Nodes, 6)
	assert.Equal(t, "js.Object", g.Nodes[0])
	assert.Len(t, g.Edges, 6)
	assert.Equal(t, []string{"js.Object"}, g.Roots())
	assert.Equal(t, []string{"node.event.EventEmitter", "node.fs.Stats"}, g.Children("js.Object"))
	assert.Empty(t, g.Children("node.http.Server"))

	edges := g.EdgesFrom("node.net.Socket")
	require.Len(t, edges, 2)
	assert.Equal(t, Edge{From: "node.net.Socket", To: "node.event.EventEmitter", Kind: Extends}, edges[0])
	assert.Equal(t, Implements, edges[1].Kind)
	assert.Equal(t, "implements", edges[1].Kind.String())
}

func TestGraph_DepthAndDescendants(t *testing.T) {
	g := BuildGraph(buildClasses(t))

	tests := []struct {
		id    string
		depth int
	}{
		{"js.Object", 0},
		{"node.event.EventEmitter", 1},
		{"node.http.Server", 3},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.depth, g.Depth(tt.id))
		})
	}

	assert.Equal(t,
		[]string{"node.net.Server", "node.http.Server", "node.net.Socket"},
		g.Descendants("node.event.EventEmitter"))
	assert.Empty(t, g.Descendants("node.http.Server"))
}

func TestGraph_Tree(t *testing.T) {
	g := BuildGraph(buildClasses(t))

	want := `js.Object
├── node.event.EventEmitter
│   ├── node.net.Server
│   │   └── node.http.Server
│   └── node.net.Socket
└── node.fs.Stats
`
	assert.Equal(t, want, g.Tree(""))
	assert.Equal(t, "node.net.Server\n└── node.http.Server\n", g.Tree("node.net.Server"))
}

func TestGraph_PartialSet(t *testing.T) {
	classes := buildClasses(t)
	g := BuildGraph(classes[:1]) // node.http.Server only

	assert.Equal(t, []string{"node.http.Server"}, g.Nodes)
	assert.Empty(t, g.Roots(), "superclass outside the set still counts")
	assert.Equal(t, 1, g.Depth("node.http.Server"))
}
