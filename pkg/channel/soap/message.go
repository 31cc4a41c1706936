package soap

import (
	"net/url"

	"github.com/dhis2-sre/channel-admin/pkg/adminservice"
)

// Admin services managing SOAP channel definitions.
const (
	serviceGetList = "zato:channel.soap.get-list"
	serviceCreate  = "zato:channel.soap.create"
	serviceEdit    = "zato:channel.soap.edit"
	serviceDelete  = "zato:channel.soap.delete"
)

// editCreateMessage builds the request shared by the create and edit services from the submitted
// form. Fields specific to the form are looked up with prefix. The id is only known when editing.
func editCreateMessage(params url.Values, prefix string) *adminservice.Message {
	return adminservice.NewMessage().
		SetOptional("data.id", params.Get("id")).
		Set("data.cluster_id", params.Get("cluster_id")).
		Set("data.url_pattern", params.Get(prefix+"url_pattern"))
}
