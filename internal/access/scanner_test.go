package access

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminScanner_SinglePage(t *testing.T) {
	directory := &mockDirectory{
		ListByTypeFunc: func(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error) {
			assert.Equal(t, "admin", userType)
			assert.Equal(t, 50, limit)
			return &DirectoryPage{Items: directoryUsers("admin-1", "admin-2"), Total: 2}, nil
		},
	}

	scanner := NewAdminScanner(directory)
	identities, err := scanner.ListAdminIdentities(context.Background())

	assert.NoError(t, err)
	assert.Len(t, identities, 2)
	assert.Contains(t, identities, "admin-1")
	assert.Contains(t, identities, "admin-2")
	assert.Equal(t, 1, directory.calls)
}

func TestAdminScanner_MultiplePages(t *testing.T) {
	// 120 admins across three pages: 50 + 50 + 20
	total := 120
	directory := &mockDirectory{}
	directory.ListByTypeFunc = func(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error) {
		start := (page - 1) * limit
		count := limit
		if start+count > total {
			count = total - start
		}
		ids := make([]string, 0, count)
		for i := 0; i < count; i++ {
			ids = append(ids, fmt.Sprintf("admin-%d", start+i))
		}
		return &DirectoryPage{Items: directoryUsers(ids...), Total: total}, nil
	}

	scanner := NewAdminScanner(directory)
	identities, err := scanner.ListAdminIdentities(context.Background())

	assert.NoError(t, err)
	assert.Len(t, identities, total)
	// at most ceil(total/pageSize) fetches
	assert.LessOrEqual(t, directory.calls, 3)
}

func TestAdminScanner_StopsOnTotalWithFullLastPage(t *testing.T) {
	// Exactly 100 admins: the second page is full, so the total check is what
	// terminates the scan before a wasted third fetch.
	total := 100
	directory := &mockDirectory{}
	directory.ListByTypeFunc = func(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error) {
		if page > 2 {
			return &DirectoryPage{Items: nil, Total: total}, nil
		}
		start := (page - 1) * limit
		ids := make([]string, 0, limit)
		for i := 0; i < limit; i++ {
			ids = append(ids, fmt.Sprintf("admin-%d", start+i))
		}
		return &DirectoryPage{Items: directoryUsers(ids...), Total: total}, nil
	}

	scanner := NewAdminScanner(directory)
	identities, err := scanner.ListAdminIdentities(context.Background())

	assert.NoError(t, err)
	assert.Len(t, identities, total)
	assert.Equal(t, 2, directory.calls)
}

func TestAdminScanner_StaleTotalDoesNotLoop(t *testing.T) {
	// Reported total claims more admins than exist; the short-page check must
	// terminate the scan anyway.
	directory := &mockDirectory{}
	directory.ListByTypeFunc = func(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error) {
		if page == 1 {
			return &DirectoryPage{Items: directoryUsers("admin-1", "admin-2"), Total: 500}, nil
		}
		return &DirectoryPage{Items: nil, Total: 500}, nil
	}

	scanner := NewAdminScanner(directory)
	identities, err := scanner.ListAdminIdentities(context.Background())

	assert.NoError(t, err)
	assert.Len(t, identities, 2)
	assert.Equal(t, 1, directory.calls)
}

func TestAdminScanner_DeduplicatesIdentities(t *testing.T) {
	directory := &mockDirectory{
		ListByTypeFunc: func(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error) {
			return &DirectoryPage{Items: directoryUsers("admin-1", "admin-1", "admin-2"), Total: 3}, nil
		},
	}

	scanner := NewAdminScanner(directory)
	identities, err := scanner.ListAdminIdentities(context.Background())

	assert.NoError(t, err)
	assert.Len(t, identities, 2)
}

func TestAdminScanner_DirectoryErrorPropagates(t *testing.T) {
	dbErr := errors.New("DB Error")
	directory := &mockDirectory{
		ListByTypeFunc: func(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error) {
			return nil, dbErr
		},
	}

	scanner := NewAdminScanner(directory)
	identities, err := scanner.ListAdminIdentities(context.Background())

	assert.Nil(t, identities)
	// propagated unwrapped, no retry
	assert.Equal(t, dbErr, err)
	assert.Equal(t, 1, directory.calls)
}

func TestAdminScanner_EmptyDirectory(t *testing.T) {
	directory := &mockDirectory{
		ListByTypeFunc: func(ctx context.Context, userType string, limit, page int) (*DirectoryPage, error) {
			return &DirectoryPage{Items: nil, Total: 0}, nil
		},
	}

	scanner := NewAdminScanner(directory)
	identities, err := scanner.ListAdminIdentities(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, identities)
}
