// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/petar-djukic/classmodel/pkg/model"
)

// ErrUnimplemented marks a concrete class missing a method required by one
// of its interfaces.
var ErrUnimplemented = errors.New("interface method not implemented")

// ContractError records one interface method a class fails to provide.
type ContractError struct {
	ClassID     string // Class expected to implement the method
	InterfaceID string // Interface declaring the method
	Method      string // Method name
	Static      bool   // Slot of the method
}

func (e ContractError) Error() string {
	return fmt.Sprintf("%s: class %s does not implement %s.%s", ErrUnimplemented, e.ClassID, e.InterfaceID, e.Method)
}

func (e ContractError) Unwrap() error { return ErrUnimplemented }

// CheckContracts verifies that every concrete class provides a concrete
// method, own or inherited, for each method of the interfaces it declares or
// inherits. Abstract classes are skipped. Results follow index order.
func (c *Catalog) CheckContracts() ([]ContractError, error) {
	var problems []ContractError
	for _, e := range c.index.ByKind(EntryClass) {
		class := c.index.Class(e.ID)
		if class.IsAbstract() {
			continue
		}
		all, err := class.AllProperties(nil)
		if err != nil {
			return nil, err
		}
		for _, iface := range contracts(class) {
			methods, err := iface.Methods(nil)
			if err != nil {
				return nil, err
			}
			for _, m := range methods {
				if !implements(all, m) {
					problems = append(problems, ContractError{
						ClassID:     class.ID(),
						InterfaceID: iface.ID(),
						Method:      m.Name,
						Static:      m.Static,
					})
				}
			}
		}
	}
	return problems, nil
}

func contracts(class *model.Class) []*model.Interface {
	result := class.InheritedInterfaces()
	for _, i := range class.Interfaces() {
		if !slices.Contains(result, i) {
			result = append(result, i)
		}
	}
	return result
}

func implements(members []*model.Member, want *model.Member) bool {
	return slices.ContainsFunc(members, func(m *model.Member) bool {
		return m.Name == want.Name && m.Static == want.Static && m.IsMethod() && !m.IsAbstract()
	})
}
