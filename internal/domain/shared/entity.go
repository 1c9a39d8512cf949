package shared

import (
	"time"

	"gorm.io/gorm"
)

// SystemActor is the audit actor recorded for writes originated by the
// service itself (API upload flows, relay worker submissions).
const SystemActor = "[system]"

// Entity provides the common identity and audit fields for all persisted
// entities. Identity is a database-assigned auto-increment key; an ID of
// zero means the entity has not been persisted yet.
type Entity struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `gorm:"not null" json:"createdDate"`
	CreatedBy string         `gorm:"type:varchar(100);not null" json:"createdBy"`
	UpdatedAt *time.Time     `json:"updatedDate,omitempty"`
	UpdatedBy string         `gorm:"type:varchar(100)" json:"updatedBy,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewEntity returns an Entity stamped with creation audit fields.
func NewEntity(actor string) Entity {
	return Entity{
		CreatedAt: time.Now().UTC(),
		CreatedBy: actor,
	}
}

// Touch refreshes the update audit fields. Creation audit fields are never
// modified after the fact.
func (e *Entity) Touch(actor string) {
	now := time.Now().UTC()
	e.UpdatedAt = &now
	e.UpdatedBy = actor
}

// IsPersisted reports whether the entity has been assigned an identity.
func (e *Entity) IsPersisted() bool {
	return e.ID > 0
}
