package soap

import (
	"context"
	"fmt"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

// findDefinitionSecurities returns the channel URL definitions of the cluster together with the
// security definition each is bound to, ordered by URL pattern.
func (r repository) findDefinitionSecurities(ctx context.Context, clusterID uint) ([]model.DefinitionSecurity, error) {
	var definitions []model.DefinitionSecurity
	err := r.db.
		WithContext(ctx).
		Table("channel_url_definitions AS d").
		Select(`d.id, d.url_pattern, s.id AS sec_def_id, s.security_def_type AS sec_def_type,
			ba.id AS basic_auth_id, ba.name AS basic_auth_name,
			ta.id AS tech_acc_id, ta.name AS tech_acc_name,
			wss.id AS wss_id, wss.name AS wss_name`).
		Joins("LEFT JOIN channel_url_securities AS l ON l.channel_url_def_id = d.id").
		Joins("LEFT JOIN security_definitions AS s ON s.id = l.security_def_id").
		Joins("LEFT JOIN http_basic_auths AS ba ON ba.security_def_id = s.id").
		Joins("LEFT JOIN technical_accounts AS ta ON ta.security_def_id = s.id").
		Joins("LEFT JOIN wss_definitions AS wss ON wss.security_def_id = s.id").
		Where("d.cluster_id = ?", clusterID).
		Order("d.url_pattern").
		Scan(&definitions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find security of SOAP channel definitions: %v", err)
	}
	return definitions, nil
}

// checkSecurity returns a not found error unless the security definition exists and belongs to the
// cluster.
func (r repository) checkSecurity(ctx context.Context, clusterID, securityID uint) error {
	var count int64
	err := r.db.
		WithContext(ctx).
		Table("security_definitions AS s").
		Joins("LEFT JOIN http_basic_auths AS ba ON ba.security_def_id = s.id").
		Joins("LEFT JOIN technical_accounts AS ta ON ta.security_def_id = s.id").
		Joins("LEFT JOIN wss_definitions AS wss ON wss.security_def_id = s.id").
		Where("s.id = ? AND COALESCE(ba.cluster_id, ta.cluster_id, wss.cluster_id) = ?", securityID, clusterID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to find security definition: %v", err)
	}
	if count == 0 {
		return errdef.NewNotFound("security definition with id %d doesn't exist in cluster %d", securityID, clusterID)
	}
	return nil
}

// saveDefinition mirrors a definition the admin service accepted and binds it to the security
// definition with securityID. A securityID of 0 leaves the definition unsecured.
func (r repository) saveDefinition(ctx context.Context, definition *model.ChannelURLDefinition, securityID uint) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"updated_at", "cluster_id", "url_pattern", "url_type"}),
			}).
			Create(definition).Error
		if err != nil {
			return err
		}

		err = tx.Where("channel_url_def_id = ?", definition.ID).Delete(&model.ChannelURLSecurity{}).Error
		if err != nil {
			return err
		}
		if securityID == 0 {
			return nil
		}
		return tx.Create(&model.ChannelURLSecurity{ChannelURLDefID: definition.ID, SecurityDefID: securityID}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save SOAP channel definition %d: %v", definition.ID, err)
	}
	return nil
}

// deleteDefinition removes the mirrored definition and its security binding. Definitions which were
// never mirrored are ignored.
func (r repository) deleteDefinition(ctx context.Context, clusterID, id uint) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		definitions := tx.Model(&model.ChannelURLDefinition{}).Select("id").Where("id = ? AND cluster_id = ?", id, clusterID)
		err := tx.Where("channel_url_def_id IN (?)", definitions).Delete(&model.ChannelURLSecurity{}).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ? AND cluster_id = ?", id, clusterID).Delete(&model.ChannelURLDefinition{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete SOAP channel definition %d: %v", id, err)
	}
	return nil
}
