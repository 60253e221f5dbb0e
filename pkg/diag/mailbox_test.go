package diag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMailboxTakeEmpty(t *testing.T) {
	m := NewMailbox()
	_, ok := m.Take()
	require.False(t, ok)
}

func TestMailboxDropsOnOverwrite(t *testing.T) {
	m := NewMailbox()
	m.Publish(Snapshot{CycleCount: 1})
	m.Publish(Snapshot{CycleCount: 2})
	snap, ok := m.Take()
	require.True(t, ok)
	require.Equal(t, uint64(2), snap.CycleCount)

	_, ok = m.Take()
	require.False(t, ok)
}
