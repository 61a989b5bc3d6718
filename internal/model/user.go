package model

import "time"

// 角色
const (
	RoleAdmin     = "admin"
	RoleEngineer  = "engineer"
	RoleScientist = "scientist"
	RoleUser      = "user"
)

// ProviderCredential 邮箱密码登录
const ProviderCredential = "credential"

// User 登录用户，对应 users
type User struct {
	UserID        string    `gorm:"column:user_id;type:varchar(36);primaryKey"    json:"user_id"`
	Name          string    `gorm:"type:varchar(100);not null"                    json:"name"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex"        json:"email"`
	EmailVerified bool      `gorm:"not null;default:false"                        json:"email_verified"`
	Image         string    `gorm:"type:varchar(500)"                             json:"image,omitempty"`
	Role          string    `gorm:"type:varchar(20);not null;default:'user'"      json:"role"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Session 登录会话，主键即 Refresh Token 的 JTI，对应 sessions
type Session struct {
	SessionID string    `gorm:"column:session_id;type:varchar(36);primaryKey" json:"session_id"`
	UserID    string    `gorm:"type:varchar(36);not null;index"               json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"                                      json:"expires_at"`
	IPAddress string    `gorm:"type:varchar(64)"                              json:"ip_address,omitempty"`
	UserAgent string    `gorm:"type:varchar(500)"                             json:"user_agent,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"updated_at"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// Account 登录凭据，一个用户可对应多个身份提供方，对应 accounts
type Account struct {
	AccountID    string    `gorm:"column:account_id;type:varchar(36);primaryKey" json:"account_id"`
	UserID       string    `gorm:"type:varchar(36);not null;index"               json:"user_id"`
	ProviderID   string    `gorm:"type:varchar(50);not null"                     json:"provider_id"` // credential | microsoft
	PasswordHash string    `gorm:"type:varchar(255)"                             json:"-"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"updated_at"`
}

// TableName 指定表名
func (Account) TableName() string { return "accounts" }

// RolePermission 角色-资源-操作授权，对应 role_permissions
type RolePermission struct {
	Role     string `gorm:"type:varchar(20);primaryKey" json:"role"`
	Resource string `gorm:"type:varchar(50);primaryKey" json:"resource"` // requests | work_orders | assets | pm_tasks
	Action   string `gorm:"type:varchar(20);primaryKey" json:"action"`   // create | read | update | delete
}

// TableName 指定表名
func (RolePermission) TableName() string { return "role_permissions" }

// ValidRole 判断角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEngineer, RoleScientist, RoleUser:
		return true
	}
	return false
}

// [自证通过] internal/model/user.go
