package model

// User 结构体：账号行，同一用户名可分别以 Admin 与 User 两种权限各存在一次
type User struct {
	Username string     `gorm:"primaryKey" json:"username"`
	Password string     `json:"password,omitempty"`
	Perm     Permission `gorm:"primaryKey" json:"perm"`
	Disabled bool       `gorm:"not null;default:false" json:"disabled"`
}

func (User) TableName() string {
	return "user"
}
