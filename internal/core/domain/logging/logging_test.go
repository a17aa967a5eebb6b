package logging

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorHelper(t *testing.T) {
	log := NewFakeLogger()

	Error(context.Background(), log, fmt.Errorf("boom"), Entry("email", "test@test.test"))
	Error(context.Background(), log, fmt.Errorf("wrapped: %w", context.Canceled))

	require.Equal(t, 1, log.CountByLevel(ERROR))
	require.Equal(t, 1, log.CountByLevel(INFO))
	require.Len(t, log.Logged[0].Entries, 2)
	require.Equal(t, "err", log.Logged[0].Entries[1].Key)
}
