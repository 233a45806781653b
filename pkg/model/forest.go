package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Kind string

const (
	KindForestClassifier  Kind = "random_forest_classifier"
	KindForestRegressor   Kind = "random_forest_regressor"
	KindBoostingRegressor Kind = "gradient_boosting_regressor"
)

const leafNode = -1

// Tree is one fitted decision tree in flattened array form, node 0 is the
// root. A node is a leaf when ChildrenLeft is -1.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Forest is a tree ensemble exported from the training toolchain.
type Forest struct {
	Kind         Kind     `json:"kind"`
	FeatureNames []string `json:"feature_names"`
	Classes      []int    `json:"classes,omitempty"`
	LearningRate float64  `json:"learning_rate,omitempty"`
	Init         float64  `json:"init,omitempty"`
	Estimators   []Tree   `json:"estimators"`
}

// LoadForest reads a JSON ensemble and checks it against the expected kind
// family and feature schema.
func LoadForest(path string, schema []string, kinds ...Kind) (*Forest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Forest
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if err := f.validate(schema, kinds...); err != nil {
		return nil, fmt.Errorf("validate %s: %w", filepath.Base(path), err)
	}
	return &f, nil
}

func (f *Forest) validate(schema []string, kinds ...Kind) error {
	ok := len(kinds) == 0
	for _, k := range kinds {
		if f.Kind == k {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("unexpected model kind %q, want one of %v", f.Kind, kinds)
	}
	if err := checkSchema(schema, f.FeatureNames); err != nil {
		return err
	}
	if len(f.Estimators) == 0 {
		return errors.New("model has no estimators")
	}
	width := 1
	if f.Kind == KindForestClassifier {
		if len(f.Classes) == 0 {
			return errors.New("classifier has no classes")
		}
		width = len(f.Classes)
	}
	for i := range f.Estimators {
		if err := f.Estimators[i].validate(len(f.FeatureNames), width); err != nil {
			return fmt.Errorf("estimator %d: %w", i, err)
		}
	}
	return nil
}

func (t *Tree) validate(nFeatures, width int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("tree arrays have different lengths")
	}
	seen := make([]bool, n)
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[i] {
			return fmt.Errorf("node %d reached twice", i)
		}
		seen[i] = true

		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leafNode {
			if r != leafNode {
				return fmt.Errorf("node %d has only a right child", i)
			}
			if len(t.Value[i]) != width {
				return fmt.Errorf("leaf %d has %d values, want %d", i, len(t.Value[i]), width)
			}
			continue
		}
		if l <= 0 || l >= n || r <= 0 || r >= n {
			return fmt.Errorf("node %d has child out of range", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, t.Feature[i], nFeatures)
		}
		stack = append(stack, l, r)
	}
	return nil
}

func (t *Tree) leaf(x []float64) []float64 {
	i := 0
	for t.ChildrenLeft[i] != leafNode {
		if x[t.Feature[i]] <= t.Threshold[i] {
			i = t.ChildrenLeft[i]
		} else {
			i = t.ChildrenRight[i]
		}
	}
	return t.Value[i]
}

func (f *Forest) input(x []float64) error {
	if len(x) != len(f.FeatureNames) {
		return fmt.Errorf("got %d features, model expects %d", len(x), len(f.FeatureNames))
	}
	return nil
}

// PredictClass averages the per-tree class distributions and returns the
// class code with the highest mean probability. Ties go to the lower index.
func (f *Forest) PredictClass(in CropFeatures) (int, error) {
	if f.Kind != KindForestClassifier {
		return 0, fmt.Errorf("%s cannot predict classes", f.Kind)
	}
	x := in.Values()
	if err := f.input(x); err != nil {
		return 0, err
	}
	proba := make([]float64, len(f.Classes))
	for i := range f.Estimators {
		v := f.Estimators[i].leaf(x)
		var sum float64
		for _, p := range v {
			sum += p
		}
		if sum == 0 {
			continue
		}
		for j, p := range v {
			proba[j] += p / sum
		}
	}
	best := 0
	for j := 1; j < len(proba); j++ {
		if proba[j] > proba[best] {
			best = j
		}
	}
	return f.Classes[best], nil
}

func (f *Forest) PredictValue(in YieldFeatures) (float64, error) {
	x := in.Values()
	if err := f.input(x); err != nil {
		return 0, err
	}
	var sum float64
	for i := range f.Estimators {
		sum += f.Estimators[i].leaf(x)[0]
	}
	switch f.Kind {
	case KindForestRegressor:
		return sum / float64(len(f.Estimators)), nil
	case KindBoostingRegressor:
		return f.Init + f.LearningRate*sum, nil
	}
	return 0, fmt.Errorf("%s cannot predict values", f.Kind)
}

// OutputClasses lists every class code the classifier can emit.
func (f *Forest) OutputClasses() []int {
	return append([]int(nil), f.Classes...)
}
