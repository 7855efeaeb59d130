package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/testutil"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

type ProjectServiceTestSuite struct {
	ServiceTestSuite
}

func TestProjectService(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}

func (s *ProjectServiceTestSuite) TestCreate() {
	project, err := s.svc.Projects.Create(s.ctx, s.adminCall, CreateProjectInput{
		Name:            "Apollo",
		AssignedUserIDs: []uint64{s.user.ID, s.other.ID, s.user.ID},
	})
	s.Require().NoError(err)
	s.Equal(s.admin.ID, project.CreatedByID)
	s.Equal("admin@example.com", project.CreatedBy.Email)
	s.Len(project.AssignedUsers, 2)
}

func (s *ProjectServiceTestSuite) TestCreate_UnknownMember() {
	_, err := s.svc.Projects.Create(s.ctx, s.adminCall, CreateProjectInput{
		Name:            "Apollo",
		AssignedUserIDs: []uint64{s.user.ID, 9999},
	})
	s.ErrorIs(err, ErrMembersNotFound)
	s.Zero(s.count(&models.Project{}))
}

func (s *ProjectServiceTestSuite) TestUpdate_ReplacesMembers() {
	project, err := s.svc.Projects.Create(s.ctx, s.adminCall, CreateProjectInput{
		Name:            "Apollo",
		AssignedUserIDs: []uint64{s.user.ID},
	})
	s.Require().NoError(err)

	name := "Artemis"
	members := []uint64{s.other.ID}
	updated, err := s.svc.Projects.Update(s.ctx, s.adminCall, project.ID, UpdateProjectInput{
		Name:            &name,
		AssignedUserIDs: &members,
	})
	s.Require().NoError(err)
	s.Equal("Artemis", updated.Name)
	s.Require().Len(updated.AssignedUsers, 1)
	s.Equal(s.other.ID, updated.AssignedUsers[0].ID)

	// Omitting the member list keeps it.
	description := "Moon"
	updated, err = s.svc.Projects.Update(s.ctx, s.adminCall, project.ID, UpdateProjectInput{Description: &description})
	s.Require().NoError(err)
	s.Len(updated.AssignedUsers, 1)
}

func (s *ProjectServiceTestSuite) TestAssignUser_Idempotent() {
	project := testutil.CreateProject(s.T(), s.db, "Apollo", s.admin.ID)

	_, err := s.svc.Projects.AssignUser(s.ctx, s.adminCall, project.ID, s.user.ID)
	s.Require().NoError(err)
	updated, err := s.svc.Projects.AssignUser(s.ctx, s.adminCall, project.ID, s.user.ID)
	s.Require().NoError(err)
	s.Len(updated.AssignedUsers, 1)

	_, err = s.svc.Projects.AssignUser(s.ctx, s.adminCall, project.ID, 9999)
	s.ErrorIs(err, ErrAssigneeNotFound)
	_, err = s.svc.Projects.AssignUser(s.ctx, s.adminCall, 9999, s.user.ID)
	s.ErrorIs(err, ErrProjectNotFound)
}

func (s *ProjectServiceTestSuite) TestList_VisibleToUsers() {
	testutil.CreateProject(s.T(), s.db, "Apollo", s.admin.ID)

	projects, total, err := s.svc.Projects.List(s.ctx, s.userCall, utils.PaginationParams{})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Len(projects, 1)
}

func (s *ProjectServiceTestSuite) TestDelete_TwiceIsNotFound() {
	project := testutil.CreateProject(s.T(), s.db, "Apollo", s.admin.ID)

	s.Require().NoError(s.svc.Projects.Delete(s.ctx, s.adminCall, project.ID))
	s.ErrorIs(s.svc.Projects.Delete(s.ctx, s.adminCall, project.ID), ErrProjectNotFound)
}
