package service

import (
	"testing"

	"github.com/plumecms/plume-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanEditPost(t *testing.T) {
	cases := []struct {
		name    string
		roles   []domain.Role
		actorID uint64
		ownerID uint64
		want    bool
	}{
		{"admin ignores ownership", []domain.Role{domain.RoleAdmin}, 1, 9, true},
		{"editor ignores ownership", []domain.Role{domain.RoleEditor}, 2, 9, true},
		{"author owns the post", []domain.Role{domain.RoleAuthor}, 7, 7, true},
		{"author does not own", []domain.Role{domain.RoleAuthor}, 7, 9, false},
		{"contributor owns the post", []domain.Role{domain.RoleContributor}, 3, 3, true},
		{"contributor does not own", []domain.Role{domain.RoleContributor}, 3, 4, false},
		{"subscriber owns the post", []domain.Role{domain.RoleSubscriber}, 5, 5, false},
		{"no roles", nil, 5, 5, false},
		{"editor among other roles", []domain.Role{domain.RoleSubscriber, domain.RoleEditor}, 8, 9, true},
		{"author and contributor, not owner", []domain.Role{domain.RoleAuthor, domain.RoleContributor}, 7, 9, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanEditPost(tc.roles, tc.actorID, tc.ownerID))
		})
	}
}
