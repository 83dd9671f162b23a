package model

// ==================== 用户角色常量 ====================

const (
	RoleAdmin  = "admin"  // 管理员
	RoleClient = "client" // 客户
)

// 用户状态
const (
	UserStatusActive   = 1 // 正常
	UserStatusDisabled = 2 // 已停用
)

// ==================== SysUser 系统用户 ====================

// SysUser 登录用户
// 权限模型很简单：admin（可按 Limited 降级为受限管理员）/ client
// 订单访问规则：本人、同公司、或非受限管理员
type SysUser struct {
	BaseModel
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255"`
	Name         string `gorm:"size:100"`

	CompanyID int64  `gorm:"index"`
	Role      string `gorm:"size:20;default:'client'"`
	Limited   bool   `gorm:"default:false"` // 受限管理员：只读后台，不允许打单

	Status int `gorm:"default:1"`
}

func (*SysUser) TableName() string {
	return "sys_users"
}

// IsFullAdmin 是否为非受限管理员
func (u *SysUser) IsFullAdmin() bool {
	return u.Role == RoleAdmin && !u.Limited
}

// CanAccessOrder 订单访问三要素判断
// 本人 OR 同公司 OR 非受限管理员，满足其一即可
func (u *SysUser) CanAccessOrder(o *ShippingOrder) bool {
	if u.IsFullAdmin() {
		return true
	}
	if u.ID == o.UserID {
		return true
	}
	return u.CompanyID != 0 && u.CompanyID == o.CompanyID
}
