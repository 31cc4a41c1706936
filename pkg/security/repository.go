package security

import (
	"context"
	"errors"
	"fmt"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

// securityColumns flattens a security definition and whichever variant row belongs to it.
const securityColumns = `s.id, s.security_def_type AS type,
	COALESCE(ba.name, ta.name, wss.name) AS name,
	COALESCE(ba.is_active, ta.is_active, wss.is_active) AS is_active,
	COALESCE(ba.username, wss.username, '') AS username,
	COALESCE(ba.domain, '') AS domain,
	COALESCE(ba.cluster_id, ta.cluster_id, wss.cluster_id) AS cluster_id`

func (r repository) query(ctx context.Context) *gorm.DB {
	return r.db.
		WithContext(ctx).
		Table("security_definitions AS s").
		Select(securityColumns).
		Joins("LEFT JOIN http_basic_auths AS ba ON ba.security_def_id = s.id").
		Joins("LEFT JOIN technical_accounts AS ta ON ta.security_def_id = s.id").
		Joins("LEFT JOIN wss_definitions AS wss ON wss.security_def_id = s.id")
}

func (r repository) find(ctx context.Context, id uint) (model.Security, error) {
	var security model.Security
	result := r.query(ctx).
		Where("s.id = ?", id).
		Limit(1).
		Scan(&security)
	if result.Error != nil {
		return model.Security{}, fmt.Errorf("failed to find security definition: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.Security{}, errdef.NewNotFound("security definition with id %d doesn't exist", id)
	}
	return security, nil
}

func (r repository) findAll(ctx context.Context, clusterID uint) ([]model.Security, error) {
	var securities []model.Security
	err := r.query(ctx).
		Where("COALESCE(ba.cluster_id, ta.cluster_id, wss.cluster_id) = ?", clusterID).
		Order("name").
		Scan(&securities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find security definitions: %v", err)
	}
	return securities, nil
}

// create saves the security definition and its variant row. The id of the security definition is
// set on security.
func (r repository) create(ctx context.Context, security *model.Security) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		definition := model.SecurityDefinition{SecurityDefType: security.Type}
		if err := tx.Create(&definition).Error; err != nil {
			return err
		}

		var variant any
		switch security.Type {
		case model.SecurityDefTypeBasicAuth:
			variant = &model.HTTPBasicAuth{
				Name:          security.Name,
				IsActive:      security.IsActive,
				Username:      security.Username,
				Domain:        security.Domain,
				ClusterID:     security.ClusterID,
				SecurityDefID: definition.ID,
			}
		case model.SecurityDefTypeTechAcc:
			variant = &model.TechnicalAccount{
				Name:          security.Name,
				IsActive:      security.IsActive,
				ClusterID:     security.ClusterID,
				SecurityDefID: definition.ID,
			}
		case model.SecurityDefTypeWSS:
			variant = &model.WSSDefinition{
				Name:          security.Name,
				IsActive:      security.IsActive,
				Username:      security.Username,
				ClusterID:     security.ClusterID,
				SecurityDefID: definition.ID,
			}
		default:
			return errdef.NewBadRequest("unknown security definition type %q", security.Type)
		}
		if err := tx.Create(variant).Error; err != nil {
			return err
		}

		security.ID = definition.ID
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("security definition name already exists: %s", security.Name)
	}
	return err
}

// delete removes the security definition, its variant row and the bindings of channels to it.
func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.ChannelURLSecurity{}, &model.HTTPBasicAuth{}, &model.TechnicalAccount{}, &model.WSSDefinition{}} {
			if err := tx.Where("security_def_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.SecurityDefinition{}, id).Error
	})
}
