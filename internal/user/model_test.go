package user

import (
	"testing"

	"github.com/McLeroy/loops-api/internal/common"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestAddRole_SetSemantics(t *testing.T) {
	u := &User{Roles: pq.StringArray{common.RoleRider}}

	u.AddRole(common.RoleRider)
	assert.Equal(t, []string{common.RoleRider}, []string(u.Roles))

	u.AddRole(common.RoleDriver)
	assert.ElementsMatch(t, []string{common.RoleRider, common.RoleDriver}, []string(u.Roles))
	assert.True(t, u.HasRole(common.RoleDriver))
}

func TestSnapshot_DetachedFromUser(t *testing.T) {
	u := &User{
		FirstName: "Abel",
		Email:     "abel@example.com",
		Roles:     pq.StringArray{common.RoleRider},
	}

	snapshot := u.Snapshot()
	u.AddRole(common.RoleDriver)

	// The snapshot's role set does not track later mutations.
	assert.Equal(t, []string{common.RoleRider}, snapshot.Roles)
}

func TestNewDriverProfile_Defaults(t *testing.T) {
	p := NewDriverProfile(DriverTypeCar)

	assert.False(t, p.Enabled)
	assert.Equal(t, int64(0), p.TotalRating)
	assert.Equal(t, float64(5), p.AverageRating)
	assert.Equal(t, "Document not uploaded", p.Message)
}

func TestIsSupportedDriverType(t *testing.T) {
	assert.True(t, IsSupportedDriverType(DriverTypeCar))
	assert.True(t, IsSupportedDriverType(DriverTypeMotorcycle))
	assert.True(t, IsSupportedDriverType(DriverTypeVan))
	assert.False(t, IsSupportedDriverType(DriverType("boat")))
	assert.False(t, IsSupportedDriverType(DriverType("")))
}
