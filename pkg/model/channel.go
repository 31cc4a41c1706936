package model

import "time"

// URLTypeSOAP is the only channel URL type managed by this service.
const URLTypeSOAP = "soap"

// ChannelURLDefinition maps a URL pattern to a channel of a cluster.
type ChannelURLDefinition struct {
	ID         uint                `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	ClusterID  uint                `json:"clusterId" gorm:"uniqueIndex:idx_channel_url_definition_pattern"`
	Cluster    *Cluster            `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	URLPattern string              `json:"urlPattern" gorm:"uniqueIndex:idx_channel_url_definition_pattern"`
	URLType    string              `json:"urlType"`
	IsInternal bool                `json:"isInternal"`
	Security   *ChannelURLSecurity `json:"security,omitempty" gorm:"foreignKey:ChannelURLDefID;constraint:OnDelete:CASCADE"`
}

func (ChannelURLDefinition) TableName() string {
	return "channel_url_definitions"
}

func NewChannelURLDefinition(id uint, urlPattern, urlType string, isInternal bool) ChannelURLDefinition {
	return ChannelURLDefinition{
		ID:         id,
		URLPattern: urlPattern,
		URLType:    urlType,
		IsInternal: isInternal,
	}
}

// ChannelURLSecurity links a channel URL definition to at most one security definition.
type ChannelURLSecurity struct {
	ID              uint                `json:"id" gorm:"primaryKey"`
	ChannelURLDefID uint                `json:"channelUrlDefId" gorm:"column:channel_url_def_id;uniqueIndex"`
	SecurityDefID   uint                `json:"securityDefId" gorm:"column:security_def_id"`
	SecurityDef     *SecurityDefinition `json:"securityDef,omitempty" gorm:"foreignKey:SecurityDefID;constraint:OnDelete:CASCADE"`
}

func (ChannelURLSecurity) TableName() string {
	return "channel_url_securities"
}

// DefinitionSecurity is a channel URL definition together with the security definition it is
// bound to, if any. At most one of the basic auth, technical account and WSS columns is set.
type DefinitionSecurity struct {
	ID            uint    `json:"id" gorm:"column:id"`
	URLPattern    string  `json:"urlPattern" gorm:"column:url_pattern"`
	SecDefID      *uint   `json:"secDefId,omitempty" gorm:"column:sec_def_id"`
	SecDefType    *string `json:"secDefType,omitempty" gorm:"column:sec_def_type"`
	BasicAuthID   *uint   `json:"basicAuthId,omitempty" gorm:"column:basic_auth_id"`
	BasicAuthName *string `json:"basicAuthName,omitempty" gorm:"column:basic_auth_name"`
	TechAccID     *uint   `json:"techAccId,omitempty" gorm:"column:tech_acc_id"`
	TechAccName   *string `json:"techAccName,omitempty" gorm:"column:tech_acc_name"`
	WSSID         *uint   `json:"wssId,omitempty" gorm:"column:wss_id"`
	WSSName       *string `json:"wssName,omitempty" gorm:"column:wss_name"`
}

// SecurityName returns the name of the bound security definition or an empty string if the
// definition isn't secured.
func (d DefinitionSecurity) SecurityName() string {
	for _, name := range []*string{d.BasicAuthName, d.TechAccName, d.WSSName} {
		if name != nil {
			return *name
		}
	}
	return ""
}

// SecurityType returns the type of the bound security definition or an empty string if the
// definition isn't secured.
func (d DefinitionSecurity) SecurityType() string {
	if d.SecDefType == nil {
		return ""
	}
	return *d.SecDefType
}

// SecurityID returns the id of the bound security definition or 0 if the definition isn't secured.
func (d DefinitionSecurity) SecurityID() uint {
	if d.SecDefID == nil {
		return 0
	}
	return *d.SecDefID
}
