// Package classifier wraps the pre-trained decision tree that maps a binary
// symptom indicator vector to a disease label. Inference is deterministic
// tree traversal; the trained parameters are immutable after load.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// ArtifactVersion is the model artifact format written by Save.
const ArtifactVersion = 1

var (
	// ErrModelNotLoaded is returned when Predict is called on a model with
	// no tree. Initialization must be enforced before serving requests.
	ErrModelNotLoaded = errors.New("classifier: model not loaded")

	// ErrInvariant marks an internal contract breach, such as a feature
	// vector whose length differs from the trained feature count. Always a
	// bug at the call site, never user-recoverable.
	ErrInvariant = errors.New("classifier: invariant violated")
)

// Node is one decision-tree node. Interior nodes test one feature against a
// threshold; leaves carry a class index.
type Node struct {
	Feature   int     `json:"feature"` // -1 on leaves
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`  // next node when value <= threshold
	Right     int     `json:"right,omitempty"` // next node when value > threshold
	Class     int     `json:"class"`           // majority class at this node
}

// Leaf reports whether the node is terminal.
func (n Node) Leaf() bool { return n.Feature < 0 }

// Model is a loaded decision-tree classifier plus its label space. Safe for
// concurrent use.
type Model struct {
	features []string
	classes  []string
	nodes    []Node
}

// New builds a Model from explicit parts. Used by the trainer and by tests;
// serving code loads artifacts with Load.
func New(features, classes []string, nodes []Node) *Model {
	return &Model{features: features, classes: classes, nodes: nodes}
}

// artifact is the on-disk JSON layout.
type artifact struct {
	Version        int      `json:"version"`
	FeatureColumns []string `json:"feature_columns"`
	Classes        []string `json:"classes"`
	Nodes          []Node   `json:"nodes"`
}

// Load reads a model artifact from disk.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("classifier: %s: %w", path, err)
	}
	if a.Version != ArtifactVersion {
		return nil, fmt.Errorf("classifier: %s: unsupported artifact version %d", path, a.Version)
	}
	if len(a.FeatureColumns) == 0 || len(a.Classes) == 0 || len(a.Nodes) == 0 {
		return nil, fmt.Errorf("classifier: %s: incomplete artifact", path)
	}
	for i, n := range a.Nodes {
		if n.Class < 0 || n.Class >= len(a.Classes) {
			return nil, fmt.Errorf("classifier: %s: node %d: class %d out of range", path, i, n.Class)
		}
		if !n.Leaf() {
			if n.Feature >= len(a.FeatureColumns) {
				return nil, fmt.Errorf("classifier: %s: node %d: feature %d out of range", path, i, n.Feature)
			}
			if n.Left < 0 || n.Left >= len(a.Nodes) || n.Right < 0 || n.Right >= len(a.Nodes) {
				return nil, fmt.Errorf("classifier: %s: node %d: child index out of range", path, i)
			}
		}
	}
	return &Model{features: a.FeatureColumns, classes: a.Classes, nodes: a.Nodes}, nil
}

// Save writes the model artifact to path.
func (m *Model) Save(path string) error {
	a := artifact{
		Version:        ArtifactVersion,
		FeatureColumns: m.features,
		Classes:        m.classes,
		Nodes:          m.nodes,
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	return nil
}

// Features returns the feature columns in training order.
func (m *Model) Features() []string { return m.features }

// Classes returns the label space.
func (m *Model) Classes() []string { return m.classes }

// Predict walks the tree for the given indicator vector and returns the
// disease label. The vector length must equal the trained feature count.
func (m *Model) Predict(vec *mat.VecDense) (string, error) {
	if m == nil || len(m.nodes) == 0 {
		return "", ErrModelNotLoaded
	}
	if vec.Len() != len(m.features) {
		return "", fmt.Errorf("%w: vector length %d, want %d", ErrInvariant, vec.Len(), len(m.features))
	}

	i := 0
	for !m.nodes[i].Leaf() {
		n := m.nodes[i]
		if vec.AtVec(n.Feature) <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return m.classes[m.nodes[i].Class], nil
}
