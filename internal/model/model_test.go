package model_test

import (
	"testing"

	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	t.Run("user role is case insensitive", func(t *testing.T) {
		role, err := model.ParseUserRole("admin")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := model.ParseUserRole("superuser")
		assert.Error(t, err)
	})

	t.Run("asset status accepts all values", func(t *testing.T) {
		for _, raw := range []string{"ACTIVE", "inactive", "Under_Maintenance"} {
			_, err := model.ParseAssetStatus(raw)
			assert.NoError(t, err, raw)
		}
	})

	t.Run("criticality rejects urgent", func(t *testing.T) {
		_, err := model.ParseCriticality("URGENT")
		assert.Error(t, err)

		c, err := model.ParseCriticality("critical")
		require.NoError(t, err)
		assert.Equal(t, model.CriticalityCritical, c)
	})

	t.Run("priority shares criticality values", func(t *testing.T) {
		p, err := model.ParsePriority("high")
		require.NoError(t, err)
		assert.Equal(t, model.CriticalityHigh, p)

		_, err = model.ParsePriority("whenever")
		assert.Error(t, err)
	})

	t.Run("work order status", func(t *testing.T) {
		s, err := model.ParseWorkOrderStatus("in_progress")
		require.NoError(t, err)
		assert.Equal(t, model.WorkOrderInProgress, s)

		_, err = model.ParseWorkOrderStatus("DONE")
		assert.Error(t, err)
	})
}

func TestFormatWorkOrderNumber(t *testing.T) {
	assert.Equal(t, "WO-000001", model.FormatWorkOrderNumber(1))
	assert.Equal(t, "WO-000042", model.FormatWorkOrderNumber(42))
	assert.Equal(t, "WO-1000000", model.FormatWorkOrderNumber(1000000))
}

func TestStringList(t *testing.T) {
	t.Run("round trip through driver value", func(t *testing.T) {
		list := model.StringList{"https://bucket/a.png", "https://bucket/b.png"}

		v, err := list.Value()
		require.NoError(t, err)

		var scanned model.StringList
		require.NoError(t, scanned.Scan(v))
		assert.Equal(t, list, scanned)
	})

	t.Run("nil values scan to empty list", func(t *testing.T) {
		var list model.StringList
		require.NoError(t, list.Scan(nil))
		assert.Empty(t, list)
		assert.NotNil(t, list)
	})

	t.Run("nil list stores as empty array", func(t *testing.T) {
		var list model.StringList
		v, err := list.Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("contains", func(t *testing.T) {
		list := model.StringList{"a", "b"}
		assert.True(t, list.Contains("a"))
		assert.False(t, list.Contains("c"))
	})

	t.Run("without preserves order of remaining entries", func(t *testing.T) {
		list := model.StringList{"a", "b", "a", "c"}
		assert.Equal(t, model.StringList{"b", "c"}, list.Without("a"))
		assert.Equal(t, list, list.Without("missing"))
	})
}

func TestJSONMap(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		m := model.JSONMap{"power": "5kW", "phases": float64(3)}

		v, err := m.Value()
		require.NoError(t, err)

		var scanned model.JSONMap
		require.NoError(t, scanned.Scan(v))
		assert.Equal(t, m, scanned)
	})

	t.Run("nil scans to empty map", func(t *testing.T) {
		var m model.JSONMap
		require.NoError(t, m.Scan(nil))
		assert.Empty(t, m)
		assert.NotNil(t, m)
	})
}

func TestOrganizationStatsDerive(t *testing.T) {
	t.Run("fills inactive users and completion rate", func(t *testing.T) {
		stats := &model.OrganizationStats{}
		stats.Users.Total = 10
		stats.Users.Active = 7
		stats.WorkOrders.Total = 8
		stats.WorkOrders.Completed = 2

		stats.Derive()

		assert.Equal(t, int64(3), stats.Users.Inactive)
		assert.Equal(t, 25.0, stats.WorkOrders.CompletionRate)
	})

	t.Run("empty organization stays at zero", func(t *testing.T) {
		stats := &model.OrganizationStats{}
		stats.Derive()

		assert.Equal(t, int64(0), stats.Users.Inactive)
		assert.Equal(t, 0.0, stats.WorkOrders.CompletionRate)
	})
}

func TestSnapshot(t *testing.T) {
	asset := &model.Asset{Name: "Pump 1", Location: "Basement"}
	snap := model.Snapshot(asset)

	assert.Equal(t, "Pump 1", snap["name"])
	assert.Equal(t, "Basement", snap["location"])
}
