package model

import "time"

const (
	SecurityDefTypeBasicAuth = "basic_auth"
	SecurityDefTypeTechAcc   = "tech_acc"
	SecurityDefTypeWSS       = "wss"
)

// SecurityDefinition is the common parent of every security definition variant.
type SecurityDefinition struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CreatedAt       time.Time `json:"createdAt"`
	SecurityDefType string    `json:"securityDefType"`
}

func (SecurityDefinition) TableName() string {
	return "security_definitions"
}

// HTTPBasicAuth is a security definition requiring HTTP Basic Auth credentials.
type HTTPBasicAuth struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	Name          string              `json:"name" gorm:"uniqueIndex:idx_http_basic_auth_name"`
	IsActive      bool                `json:"isActive"`
	Username      string              `json:"username"`
	Domain        string              `json:"domain"`
	ClusterID     uint                `json:"clusterId" gorm:"uniqueIndex:idx_http_basic_auth_name"`
	SecurityDefID uint                `json:"securityDefId"`
	SecurityDef   *SecurityDefinition `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (HTTPBasicAuth) TableName() string {
	return "http_basic_auths"
}

// TechnicalAccount is a security definition for internal callers.
type TechnicalAccount struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	Name          string              `json:"name" gorm:"uniqueIndex:idx_technical_account_name"`
	IsActive      bool                `json:"isActive"`
	ClusterID     uint                `json:"clusterId" gorm:"uniqueIndex:idx_technical_account_name"`
	SecurityDefID uint                `json:"securityDefId"`
	SecurityDef   *SecurityDefinition `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (TechnicalAccount) TableName() string {
	return "technical_accounts"
}

// WSSDefinition is a WS-Security definition.
type WSSDefinition struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	Name          string              `json:"name" gorm:"uniqueIndex:idx_wss_definition_name"`
	IsActive      bool                `json:"isActive"`
	Username      string              `json:"username"`
	ClusterID     uint                `json:"clusterId" gorm:"uniqueIndex:idx_wss_definition_name"`
	SecurityDefID uint                `json:"securityDefId"`
	SecurityDef   *SecurityDefinition `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (WSSDefinition) TableName() string {
	return "wss_definitions"
}

// Security is a security definition of any type flattened into one record. ID is the id of the
// SecurityDefinition.
type Security struct {
	ID        uint   `json:"id" gorm:"column:id"`
	Type      string `json:"type" gorm:"column:type"`
	Name      string `json:"name" gorm:"column:name"`
	IsActive  bool   `json:"isActive" gorm:"column:is_active"`
	Username  string `json:"username,omitempty" gorm:"column:username"`
	Domain    string `json:"domain,omitempty" gorm:"column:domain"`
	ClusterID uint   `json:"clusterId" gorm:"column:cluster_id"`
}
