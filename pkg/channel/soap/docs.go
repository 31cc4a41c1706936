// Package soap manages the SOAP channel definitions of a cluster. Definitions live in the cluster's
// admin service which is invoked for every listing and change. Accepted changes are mirrored into
// the local database together with the security definition each channel is bound to.
//
// swagger:meta
package soap

// swagger:response CreateDefinitionResponse
type _ struct {
	// The id the admin service assigned to the definition
	// in: body
	Body CreateDefinitionResponse
}

// swagger:parameters soapChannelIndex
type _ struct {
	// The id of the cluster whose definitions are shown
	// in: query
	Cluster uint `json:"cluster"`
}

// swagger:parameters soapChannelCreate
type _ struct {
	// in: formData
	// required: true
	ClusterID uint `json:"cluster_id"`

	// in: formData
	// required: true
	URLPattern string `json:"url_pattern"`

	// The security definition the channel is bound to
	// in: formData
	SecurityID uint `json:"security_id"`
}

// swagger:parameters soapChannelEdit
type _ struct {
	// in: formData
	// required: true
	ID uint `json:"id"`

	// in: formData
	// required: true
	ClusterID uint `json:"cluster_id"`

	// in: formData
	// required: true
	URLPattern string `json:"edit-url_pattern"`

	// The security definition the channel is bound to
	// in: formData
	SecurityID uint `json:"edit-security_id"`
}

// swagger:parameters soapChannelDelete
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`

	// in: path
	// required: true
	ClusterID uint `json:"cluster_id"`
}
