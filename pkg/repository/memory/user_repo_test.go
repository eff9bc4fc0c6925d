package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/taskboard/pkg/auth"
)

func TestUserRepository_ConcurrentDuplicateCreate(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(context.Background(), auth.User{
				ID:    uuid.New(),
				Email: "a@x.com",
			})
		}(i)
	}
	wg.Wait()

	// Exactly one registration wins; everyone else gets the duplicate error.
	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			require.ErrorIs(t, err, auth.ErrEmailTaken)
		}
	}
	assert.Equal(t, 1, created)
}

func TestUserRepository_DeleteFreesEmail(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository()
	user := auth.User{ID: uuid.New(), Email: "a@x.com"}
	require.NoError(t, repo.Create(context.Background(), user))

	require.NoError(t, repo.Delete(context.Background(), user.ID))
	_, err := repo.GetByID(context.Background(), user.ID)
	require.ErrorIs(t, err, auth.ErrNotFound)

	// Re-registering the freed email succeeds.
	require.NoError(t, repo.Create(context.Background(), auth.User{ID: uuid.New(), Email: "a@x.com"}))
}
