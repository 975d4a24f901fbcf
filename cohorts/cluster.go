package cohorts

import (
	"sort"
	"strconv"

	"github.com/dominikbraun/graph"
	"github.com/eapache/queue"
)

const overlapAttributeKey = "overlap"

// Cluster is a set of cohorts connected through non-empty pairwise overlaps.
// Screening staff use clusters to spot families of trials competing for the
// same patients.
type Cluster struct {
	Cohorts []ClusterMember
}

// ClusterMember pairs a cohort with the overlap counts that tie it to the
// other cohorts of its cluster, keyed by cohort id.
type ClusterMember struct {
	Cohort   *Cohort
	Overlaps map[string]int
}

// Clusters partitions the given cohorts into connected components of the
// overlap graph: two cohorts share an edge when their patient id sets
// intersect. Cohorts overlapping nothing form singleton clusters.
func Clusters(cohorts []*Cohort) ([]Cluster, error) {
	g := graph.New(func(c *Cohort) string { return c.ID })
	for _, c := range cohorts {
		if err := g.AddVertex(c); err != nil {
			return nil, err
		}
	}
	for i := 0; i < len(cohorts); i++ {
		for j := i + 1; j < len(cohorts); j++ {
			count := cohorts[i].ids().Intersect(cohorts[j].ids()).Cardinality()
			if count == 0 {
				continue
			}
			err := g.AddEdge(cohorts[i].ID, cohorts[j].ID,
				graph.EdgeAttribute(overlapAttributeKey, strconv.Itoa(count)))
			if err != nil {
				return nil, err
			}
		}
	}

	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	// BFS traversal over each connected component. Iteration starts from the
	// input order so cluster ordering stays deterministic.
	visited := map[string]struct{}{}
	clusters := make([]Cluster, 0)
	for _, start := range cohorts {
		if _, ok := visited[start.ID]; ok {
			continue
		}
		cluster := Cluster{}
		q := queue.New()
		q.Add(start.ID)
		for q.Length() != 0 {
			id := q.Remove().(string)
			if _, ok := visited[id]; ok {
				continue
			}
			visited[id] = struct{}{}

			c, err := g.Vertex(id)
			if err != nil {
				return nil, err
			}

			overlaps := map[string]int{}
			for neighbor, edge := range adjacencyMap[id] {
				q.Add(neighbor)
				if count, err := strconv.Atoi(edge.Properties.Attributes[overlapAttributeKey]); err == nil {
					overlaps[neighbor] = count
				}
			}
			cluster.Cohorts = append(cluster.Cohorts, ClusterMember{
				Cohort:   c,
				Overlaps: overlaps,
			})
		}
		sort.Slice(cluster.Cohorts, func(i, j int) bool {
			return cluster.Cohorts[i].Cohort.Name < cluster.Cohorts[j].Cohort.Name
		})
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}
