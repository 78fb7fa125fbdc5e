package service

import "github.com/plumecms/plume-backend/internal/domain"

// CanEditPost decides whether an actor may mutate or delete a post owned by
// ownerID. Pure function over the actor's role set and the two ids:
// admins and editors may touch anything, authors and contributors only
// their own posts, everyone else is denied.
func CanEditPost(roles []domain.Role, actorID, ownerID uint64) bool {
	for _, r := range roles {
		if r == domain.RoleAdmin || r == domain.RoleEditor {
			return true
		}
	}
	for _, r := range roles {
		if r == domain.RoleAuthor || r == domain.RoleContributor {
			return actorID == ownerID
		}
	}
	return false
}
