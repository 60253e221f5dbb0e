package config

import (
	"testing"

	"github.com/epsg-core/powerlink/pkg/od"
	"github.com/stretchr/testify/require"
)

func TestConfiguratorReadIdentity(t *testing.T) {
	dict := od.Bootstrap(od.KindCN, 3)
	cfg := NewNodeConfigurator(dict)
	id, err := cfg.ReadIdentity()
	require.NoError(t, err)
	require.Equal(t, uint32(0), id.VendorID)
}

func TestConfiguratorWriteReadCycleLength(t *testing.T) {
	dict := od.Bootstrap(od.KindCN, 3)
	cfg := NewNodeConfigurator(dict)
	require.NoError(t, cfg.WriteCycleLength(4000))
	got, err := cfg.ReadCycleLength()
	require.NoError(t, err)
	require.Equal(t, uint32(4000), got)
}

func TestConfiguratorWriteNodeAssignment(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	cfg := NewNodeConfigurator(dict)
	require.NoError(t, cfg.WriteNodeAssignment(5, NodeAssignmentValid|NodeAssignmentMandatory))

	v, err := dict.Find(od.IndexCNNodeAssignment, 5)
	require.NoError(t, err)
	got, err := v.Uint32()
	require.NoError(t, err)
	require.Equal(t, NodeAssignmentValid|NodeAssignmentMandatory, got)
}
