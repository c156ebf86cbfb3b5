package models

import "encoding/json"

// TreeNode ist ein Knoten eines Aggregationsbaums. Value ist nur an Blättern
// gesetzt, Children nur an inneren Knoten.
type TreeNode struct {
	Name     string     `json:"name"`
	Value    *int       `json:"value,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// Leaf erzeugt ein Blatt mit Zählwert.
func Leaf(name string, value int) TreeNode {
	return TreeNode{Name: name, Value: &value}
}

// IsLeaf meldet, ob der Knoten ein Blatt ist.
func (n TreeNode) IsLeaf() bool {
	return n.Value != nil
}

// Child sucht ein direktes Kind anhand seines Namens.
func (n TreeNode) Child(name string) (TreeNode, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return TreeNode{}, false
}

// MarshalJSON schreibt "children" an jedem inneren Knoten, auch wenn er keine
// Kinder hat. Blätter tragen nur "value".
func (n TreeNode) MarshalJSON() ([]byte, error) {
	type wire struct {
		Name     string      `json:"name"`
		Value    *int        `json:"value,omitempty"`
		Children *[]TreeNode `json:"children,omitempty"`
	}
	out := wire{Name: n.Name, Value: n.Value}
	if !n.IsLeaf() {
		children := n.Children
		if children == nil {
			children = []TreeNode{}
		}
		out.Children = &children
	}
	return json.Marshal(out)
}
