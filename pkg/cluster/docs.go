// Package cluster manages the clusters whose admin services the console talks to.
//
// A cluster is identified by its name and reached through the address of its load balancer. The
// package follows a layered architecture with:
// - Handler: HTTP request/response handling
// - Service: Business logic
// - Repository: Data access layer
//
// swagger:meta
package cluster

import "github.com/dhis2-sre/channel-admin/pkg/model"

// swagger:model
// A cluster represents a service bus cluster
type Cluster struct {
	// The cluster model
	// in: body
	Body model.Cluster
}

// swagger:response Clusters
type ClustersResponse struct {
	// List of clusters
	// in: body
	Body []model.Cluster
}

// swagger:parameters clusterCreate
type CreateClusterParams struct {
	// The cluster creation request
	// in: body
	// required: true
	Body CreateClusterRequest
}

// swagger:parameters clusterUpdate
type UpdateClusterParams struct {
	// The cluster ID
	// in: path
	// required: true
	ID uint `json:"id"`

	// The cluster update request
	// in: body
	// required: true
	Body UpdateClusterRequest
}

// swagger:parameters findClusterById clusterDelete
type _ struct {
	// The cluster ID
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:response
type Error struct {
	// The error message
	//in: body
	Message string
}
