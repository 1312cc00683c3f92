// file: models/user.go
package models

import (
	"time"
)

// 自定义类型 UserRole, UserStatus
type UserRole string
type UserStatus string

const (
	RoleUser      UserRole   = "user"
	RoleAdmin     UserRole   = "admin"
	RoleRootAdmin UserRole   = "root_admin"
	StatusActive  UserStatus = "active"
	StatusBanned  UserStatus = "banned"
)

// User 对应 secxplore_user 表。登录/注册/密码由外部身份服务负责，
// 本服务只消费 JWT 中的身份，这张表保存排行榜展示信息与封禁状态。
type User struct {
	ID          uint32     `gorm:"primarykey" json:"id"`
	Username    string     `gorm:"size:50;unique;not null" json:"username"`
	DisplayName string     `gorm:"size:100" json:"display_name,omitempty"`
	Email       string     `gorm:"size:100;unique;not null" json:"email"`
	Role        UserRole   `gorm:"size:20;not null;default:'user'" json:"role"`
	Status      UserStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "secxplore_user"
}

// Name 排行榜展示名，优先 display_name
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
