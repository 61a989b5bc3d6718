package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elethan/lina/internal/model"
)

// ── 登录凭据 ──

// AccountRepository 登录凭据数据访问接口
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	// GetCredential 获取用户的邮箱密码凭据
	GetCredential(ctx context.Context, userID string) (*model.Account, error)
}

type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepo 创建 AccountRepository 实例
func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) GetCredential(ctx context.Context, userID string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, model.ProviderCredential).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ── 会话 ──

// SessionRepository 登录会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Delete(&model.Session{}).Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.Session{})
	return result.RowsAffected, result.Error
}

// ── 角色授权 ──

// RolePermissionRepository 角色授权数据访问接口
type RolePermissionRepository interface {
	Has(ctx context.Context, role, resource, action string) (bool, error)
	// BatchUpsert 批量写入授权，已存在的组合保持不变
	BatchUpsert(ctx context.Context, perms []model.RolePermission) error
}

type rolePermissionRepo struct {
	db *gorm.DB
}

// NewRolePermissionRepo 创建 RolePermissionRepository 实例
func NewRolePermissionRepo(db *gorm.DB) RolePermissionRepository {
	return &rolePermissionRepo{db: db}
}

func (r *rolePermissionRepo) Has(ctx context.Context, role, resource, action string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RolePermission{}).
		Where("role = ? AND resource = ? AND action = ?", role, resource, action).
		Count(&count).Error
	return count > 0, err
}

func (r *rolePermissionRepo) BatchUpsert(ctx context.Context, perms []model.RolePermission) error {
	if len(perms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&perms).Error
}
