package model

import (
	"fmt"
	"time"
)

// Cluster is a deployment target of the service bus. Its admin service is reached through the
// cluster's load balancer.
type Cluster struct {
	// required: true
	ID uint `json:"id" gorm:"primaryKey"`
	// required: true
	CreatedAt time.Time `json:"createdAt"`
	// required: true
	UpdatedAt time.Time `json:"updatedAt"`
	// required: true
	Name string `json:"name" gorm:"uniqueIndex"`
	// required: true
	Description string `json:"description"`
	// required: true
	LBHost string `json:"lbHost" yaml:"lbHost"`
	// required: true
	LBPort int `json:"lbPort" yaml:"lbPort"`
}

// AdminServiceAddress returns the base URL of the cluster's admin service.
func (c Cluster) AdminServiceAddress() string {
	return fmt.Sprintf("http://%s:%d", c.LBHost, c.LBPort)
}
