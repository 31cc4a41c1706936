// Package security manages the security definitions SOAP channels are bound to. A definition is
// either HTTP Basic Auth, a technical account or WS-Security and belongs to one cluster.
//
// swagger:meta
package security

import "github.com/dhis2-sre/channel-admin/pkg/model"

// swagger:response Security
type _ struct {
	// in: body
	Body model.Security
}

// swagger:response Securities
type _ struct {
	// in: body
	Body []model.Security
}

// swagger:parameters securityCreate
type _ struct {
	// in: body
	// required: true
	Body CreateSecurityRequest
}

// swagger:parameters findAllSecurity
type _ struct {
	// The id of the cluster
	// in: query
	// required: true
	Cluster uint `json:"cluster"`
}

// swagger:parameters findSecurityById securityDelete
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}
