// File: internal/platformconfig/model.go
package platformconfig

import "github.com/McLeroy/loops-api/internal/common"

// Configuration is the persisted platform policy row, owned and mutated by
// the admin surface; the auth core only reads it.
type Configuration struct {
	common.BaseModel
	AllowNewDriverSignUp bool `gorm:"not null;default:true"`
	AllowNewRiderSignUp  bool `gorm:"not null;default:true"`
}

// TableName specifies the table name for the Configuration model.
func (Configuration) TableName() string {
	return "platform_configurations"
}

// Snapshot is the read-only policy view handed to callers.
type Snapshot struct {
	AllowNewDriverSignUp bool
	AllowNewRiderSignUp  bool
}
