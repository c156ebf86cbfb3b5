package services

import (
	"errors"
	"fmt"

	"provenance-explorer/models"
)

// ErrUnknownField wird geliefert, wenn ein Feldname keinem passenden Summary-Feld entspricht.
var ErrUnknownField = errors.New("unknown field")

// GroupTree baut den zweistufigen Sunburst-Baum Gruppe -> Kategorie -> Anzahl.
//
// Gezählt wird jedes Vorkommen eines Tags im Listenfeld field. Gruppen ohne
// einen einzigen vorkommenden Wert entfallen; Werte, die in keiner Gruppe
// stehen, tauchen im Baum nicht auf.
func GroupTree(records []models.Summary, groups models.GroupTable, field string) (models.TreeNode, error) {
	if err := checkListField(field); err != nil {
		return models.TreeNode{}, err
	}
	counts := NewCountTable()
	for i := range records {
		values, _ := records[i].ListField(field)
		for _, v := range values {
			counts.Inc(v)
		}
	}

	root := models.TreeNode{Name: field + "_groups", Children: []models.TreeNode{}}
	for _, g := range groups {
		node := models.TreeNode{Name: g.Name}
		for _, category := range g.Members {
			if n, ok := counts.Get(category); ok {
				node.Children = append(node.Children, models.Leaf(category, n))
			}
		}
		if len(node.Children) > 0 {
			root.Children = append(root.Children, node)
		}
	}
	return root, nil
}

// NestedTree baut den Baum Elternwert -> Kindwert -> Anzahl. parentField muss ein
// Textfeld, childField ein Listenfeld sein. Eltern und Kinder erscheinen in der
// Reihenfolge ihres ersten Auftretens, nicht nach Anzahl sortiert.
func NestedTree(records []models.Summary, parentField, childField string) (models.TreeNode, error) {
	if err := checkTextField(parentField); err != nil {
		return models.TreeNode{}, err
	}
	if err := checkListField(childField); err != nil {
		return models.TreeNode{}, err
	}
	parents := NewCountTable()
	children := make(map[string]*CountTable)

	for i := range records {
		parent, _ := records[i].StringField(parentField)
		values, _ := records[i].ListField(childField)
		parents.Add(parent, 0)
		ct, ok := children[parent]
		if !ok {
			ct = NewCountTable()
			children[parent] = ct
		}
		for _, v := range values {
			ct.Inc(v)
		}
	}

	root := models.TreeNode{Name: parentField, Children: []models.TreeNode{}}
	for _, p := range parents.Entries() {
		node := models.TreeNode{Name: p.Key, Children: []models.TreeNode{}}
		for _, c := range children[p.Key].Entries() {
			node.Children = append(node.Children, models.Leaf(c.Key, c.Count))
		}
		root.Children = append(root.Children, node)
	}
	return root, nil
}

// Feldnamen werden vorab geprüft, damit auch leere Eingaben einen Fehler liefern.
func checkTextField(name string) error {
	var probe models.Summary
	if _, ok := probe.StringField(name); !ok {
		return fmt.Errorf("%w: %q is not a text field", ErrUnknownField, name)
	}
	return nil
}

func checkListField(name string) error {
	var probe models.Summary
	if _, ok := probe.ListField(name); !ok {
		return fmt.Errorf("%w: %q is not a list field", ErrUnknownField, name)
	}
	return nil
}
