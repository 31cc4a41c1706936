package soap

import (
	"net/url"
	"strconv"

	"github.com/dhis2-sre/channel-admin/pkg/model"
)

// editPrefix prefixes the fields of the edit form so they don't clash with the create form rendered
// on the same page.
const editPrefix = "edit-"

type CreateDefinitionRequest struct {
	ClusterID  uint   `json:"cluster_id" form:"cluster_id" binding:"required"`
	URLPattern string `json:"url_pattern" form:"url_pattern" binding:"required"`
	SecurityID uint   `json:"security_id" form:"security_id"`
}

func (r CreateDefinitionRequest) params() url.Values {
	params := url.Values{}
	params.Set("cluster_id", strconv.FormatUint(uint64(r.ClusterID), 10))
	params.Set("url_pattern", r.URLPattern)
	if r.SecurityID != 0 {
		params.Set("security_id", strconv.FormatUint(uint64(r.SecurityID), 10))
	}
	return params
}

type EditDefinitionRequest struct {
	ID         uint   `json:"id" form:"id" binding:"required"`
	ClusterID  uint   `json:"cluster_id" form:"cluster_id" binding:"required"`
	URLPattern string `json:"edit-url_pattern" form:"edit-url_pattern" binding:"required"`
	SecurityID uint   `json:"edit-security_id" form:"edit-security_id"`
}

func (r EditDefinitionRequest) params() url.Values {
	params := url.Values{}
	params.Set("id", strconv.FormatUint(uint64(r.ID), 10))
	params.Set("cluster_id", strconv.FormatUint(uint64(r.ClusterID), 10))
	params.Set(editPrefix+"url_pattern", r.URLPattern)
	if r.SecurityID != 0 {
		params.Set(editPrefix+"security_id", strconv.FormatUint(uint64(r.SecurityID), 10))
	}
	return params
}

// chooseClusterForm selects the cluster whose definitions are shown.
type chooseClusterForm struct {
	Clusters []model.Cluster
	Selected uint
}

// definitionForm is the create or edit form. Field names are prefixed with Prefix. Securities are
// the security definitions a channel can be bound to.
type definitionForm struct {
	Prefix     string
	ClusterID  uint
	Securities []model.Security
}

// Field returns the name of the form field name.
func (f definitionForm) Field(name string) string {
	return f.Prefix + name
}
