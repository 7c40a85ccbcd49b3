package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type HierarchySuite struct {
	ServiceSuite
}

func TestHierarchySuite(t *testing.T) {
	suite.Run(t, new(HierarchySuite))
}

func (s *HierarchySuite) TestSubtreeEnumeration() {
	owner := s.newUser(1, "owner@example.com")
	a := s.newFolder(owner.ID, "a", nil)
	b := s.newFolder(owner.ID, "b", &a.ID)
	c := s.newFolder(owner.ID, "c", &b.ID)
	d := s.newFolder(owner.ID, "d", &a.ID)
	s.newFolder(owner.ID, "unrelated", nil)

	ids, err := s.srv.descendantFolderIDs(context.Background(), a.ID, owner.ID)
	s.NoError(err)
	s.ElementsMatch([]string{a.ID, b.ID, c.ID, d.ID}, ids)
}

func (s *HierarchySuite) TestLeafYieldsItself() {
	owner := s.newUser(1, "owner@example.com")
	leaf := s.newFolder(owner.ID, "leaf", nil)

	ids, err := s.srv.descendantFolderIDs(context.Background(), leaf.ID, owner.ID)
	s.NoError(err)
	s.Equal([]string{leaf.ID}, ids)
}

func (s *HierarchySuite) TestForeignOwnerSeesNoChildren() {
	owner := s.newUser(1, "owner@example.com")
	other := s.newUser(2, "other@example.com")
	root := s.newFolder(owner.ID, "root", nil)
	s.newFolder(owner.ID, "child", &root.ID)

	// the index is scoped to the owner, a foreign root yields only itself
	ids, err := s.srv.descendantFolderIDs(context.Background(), root.ID, other.ID)
	s.NoError(err)
	s.Equal([]string{root.ID}, ids)
}
