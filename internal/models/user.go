package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
	RoleViewer   UserRole = "viewer"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// User is a role-bearing account. Password holds the bcrypt hash and is
// never serialized to JSON.
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email       string               `bson:"email" json:"email"`
	Password    string               `bson:"password" json:"-"`
	FirstName   string               `bson:"firstName" json:"firstName"`
	LastName    string               `bson:"lastName" json:"lastName"`
	Role        UserRole             `bson:"role" json:"role"`
	Status      UserStatus           `bson:"status" json:"status"`
	Permissions []string             `bson:"permissions" json:"permissions"`
	LastLogin   *time.Time           `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Facilities  []primitive.ObjectID `bson:"facilities" json:"facilities"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// FacilityIDs returns the facility references as hex strings for token claims.
func (u *User) FacilityIDs() []string {
	ids := make([]string, 0, len(u.Facilities))
	for _, f := range u.Facilities {
		ids = append(ids, f.Hex())
	}
	return ids
}
