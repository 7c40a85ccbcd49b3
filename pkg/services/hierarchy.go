package services

import (
	"context"

	"github.com/concavehq/concave/pkg/models"
)

// descendantFolderIDs enumerates the subtree rooted at rootID, including
// rootID itself. It loads the owner's whole folder forest in one query,
// builds a parent index and walks it iteratively; restricting the index to
// one owner means a root owned by someone else yields only itself.
func (a *ApiService) descendantFolderIDs(ctx context.Context, rootID string, ownerID int64) ([]string, error) {
	var folders []struct {
		ID       string
		ParentID *string
	}
	if err := a.db.WithContext(ctx).Model(&models.Folder{}).
		Select("id", "parent_id").
		Where("owner_id = ?", ownerID).
		Find(&folders).Error; err != nil {
		return nil, err
	}

	children := make(map[string][]string, len(folders))
	for _, f := range folders {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	result := make([]string, 0, len(folders)+1)
	seen := make(map[string]struct{}, len(folders)+1)
	stack := []string{rootID}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[current]; ok {
			continue
		}
		seen[current] = struct{}{}
		result = append(result, current)
		stack = append(stack, children[current]...)
	}

	return result, nil
}

// contains reports whether id is part of the subtree id set.
func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
