package graph

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"socialgraph/backend/internal/constants"
)

// ============================================================================
// Helper Functions
// ============================================================================

func copyProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props)+1)
	for k, v := range props {
		out[k] = v
	}
	return out
}

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return 0
}

func nodeFromRecord(record *neo4j.Record, key string, label Label) (Node, error) {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return Node{}, fmt.Errorf("record has no %q column", key)
	}
	n, ok := val.(neo4j.Node)
	if !ok {
		return Node{}, fmt.Errorf("column %q is %T, not a node", key, val)
	}

	if label == "" {
		for _, l := range n.Labels {
			if Label(l).Validate() == nil {
				label = Label(l)
				break
			}
		}
	}

	id, _ := n.Props[constants.PropID].(string)
	return Node{Label: label, ID: id, Props: copyProps(n.Props)}, nil
}

func nodesFromRecords(records []*neo4j.Record, key string, label Label) ([]Node, error) {
	nodes := make([]Node, 0, len(records))
	for _, record := range records {
		n, err := nodeFromRecord(record, key, label)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
