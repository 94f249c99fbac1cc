package leaps

type testGraph struct {
	out map[string][]string
	in  map[string][]string
	eta map[string]float64
}

func newTestGraph() *testGraph {
	return &testGraph{
		out: make(map[string][]string),
		in:  make(map[string][]string),
		eta: make(map[string]float64),
	}
}

func (g *testGraph) setETA(v string, eta float64) *testGraph {
	g.eta[v] = eta
	return g
}

func (g *testGraph) addEdge(u, v string) *testGraph {
	g.out[u] = append(g.out[u], v)
	g.in[v] = append(g.in[v], u)
	return g
}

// addChain links vs one after another and gives each of them eta.
func (g *testGraph) addChain(eta float64, vs ...string) *testGraph {
	for i, v := range vs {
		g.eta[v] = eta
		if i > 0 {
			g.addEdge(vs[i-1], v)
		}
	}
	return g
}

func (g *testGraph) ForEdgesOf(v string, isOutgoing bool, handle func(to string)) {
	edges := g.in[v]
	if isOutgoing {
		edges = g.out[v]
	}
	for _, to := range edges {
		handle(to)
	}
}

func (g *testGraph) CalculateETAWithoutPenalty(v string) float64 {
	return g.eta[v]
}
