// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"slices"
)

// PropertyCollection stores members keyed by (name, static). Each slot holds
// at most one member; storing into an occupied slot replaces the member and
// keeps the slot's position.
//
// A collection may carry a PropertyFilter. Members the filter rejects are
// dropped without error, which is how inherited-member snapshots are sieved.
type PropertyCollection struct {
	instance slotMap
	static   slotMap
	filter   *PropertyFilter
}

type slotMap struct {
	byName map[string]*Member
	order  []string
}

func (s *slotMap) get(name string) *Member {
	return s.byName[name]
}

// put stores m and reports whether it replaced another member.
func (s *slotMap) put(m *Member) bool {
	if s.byName == nil {
		s.byName = make(map[string]*Member)
	}
	_, replaced := s.byName[m.Name]
	if !replaced {
		s.order = append(s.order, m.Name)
	}
	s.byName[m.Name] = m
	return replaced
}

func (s *slotMap) remove(name string) {
	if _, ok := s.byName[name]; !ok {
		return
	}
	delete(s.byName, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
}

func (s *slotMap) appendTo(dst []*Member) []*Member {
	for _, name := range s.order {
		dst = append(dst, s.byName[name])
	}
	return dst
}

// NewPropertyCollection returns an empty collection without a filter.
func NewPropertyCollection() *PropertyCollection {
	return &PropertyCollection{}
}

// NewFilteredCollection returns an empty collection that silently drops
// members rejected by f.
func NewFilteredCollection(f *PropertyFilter) *PropertyCollection {
	return &PropertyCollection{filter: f}
}

// AddProperty stores m in its (name, static) slot. A nil member fails with
// ErrInvalidArgument and a nameless one with ErrMissingName. A member the
// collection's filter rejects is not stored and no error is returned.
func (pc *PropertyCollection) AddProperty(m *Member) error {
	if m == nil {
		return fmt.Errorf("%w: nil member", ErrInvalidArgument)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: %s has no name", ErrMissingName, m.kind)
	}
	if pc.filter != nil {
		ok, err := pc.filter.Test(m)
		if err != nil {
			return err
		}
		if !ok {
			log.WithFields(memberFields(m)).Debug("member rejected by collection filter")
			return nil
		}
	}
	if pc.slots(m.Static).put(m) {
		log.WithFields(memberFields(m)).Debug("member replaced existing slot")
	}
	return nil
}

// Property returns the member in the (name, static) slot, or nil.
func (pc *PropertyCollection) Property(name string, static bool) *Member {
	return pc.slots(static).get(name)
}

// RemoveProperty removes both the instance and the static member named name.
func (pc *PropertyCollection) RemoveProperty(name string) {
	pc.instance.remove(name)
	pc.static.remove(name)
}

// RemoveMember removes the member occupying m's own slot. Nothing happens
// when m is nil.
func (pc *PropertyCollection) RemoveMember(m *Member) {
	if m == nil {
		return
	}
	pc.slots(m.Static).remove(m.Name)
}

// Properties returns the instance members followed by the static members,
// each group in slot insertion order.
func (pc *PropertyCollection) Properties() []*Member {
	result := make([]*Member, 0, pc.Len())
	result = pc.instance.appendTo(result)
	return pc.static.appendTo(result)
}

// Len returns the number of stored members.
func (pc *PropertyCollection) Len() int {
	return len(pc.instance.order) + len(pc.static.order)
}

func (pc *PropertyCollection) slots(static bool) *slotMap {
	if static {
		return &pc.static
	}
	return &pc.instance
}
