package soap

import (
	"testing"

	"github.com/dhis2-sre/channel-admin/pkg/adminservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditCreateMessage(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		request := CreateDefinitionRequest{ClusterID: 1, URLPattern: "/soap/billing"}

		message := editCreateMessage(request.params(), "")

		assertText(t, message, "data.id", adminservice.NotGiven)
		assertText(t, message, "data.cluster_id", "1")
		assertText(t, message, "data.url_pattern", "/soap/billing")
	})

	t.Run("Edit", func(t *testing.T) {
		request := EditDefinitionRequest{ID: 42, ClusterID: 2, URLPattern: "/soap/invoices"}

		message := editCreateMessage(request.params(), editPrefix)

		assertText(t, message, "data.id", "42")
		assertText(t, message, "data.cluster_id", "2")
		assertText(t, message, "data.url_pattern", "/soap/invoices")
	})

	t.Run("EditFieldsIgnoredWithoutPrefix", func(t *testing.T) {
		request := EditDefinitionRequest{ID: 42, ClusterID: 2, URLPattern: "/soap/invoices"}

		message := editCreateMessage(request.params(), "")

		assertText(t, message, "data.url_pattern", "")
	})
}

func TestDefinitionRequest_SecurityID(t *testing.T) {
	create := CreateDefinitionRequest{ClusterID: 1, URLPattern: "/soap/billing", SecurityID: 3}.params()
	edit := EditDefinitionRequest{ID: 42, ClusterID: 1, URLPattern: "/soap/billing", SecurityID: 4}.params()
	unsecured := CreateDefinitionRequest{ClusterID: 1, URLPattern: "/soap/billing"}.params()

	assert.Equal(t, "3", create.Get("security_id"))
	assert.Equal(t, "4", edit.Get("edit-security_id"))
	assert.NotContains(t, unsecured, "security_id")
	assert.False(t, editCreateMessage(create, "").Exists("data.security_id"), "the binding is kept locally only")
}

func TestDefinitionForm_Field(t *testing.T) {
	assert.Equal(t, "url_pattern", definitionForm{}.Field("url_pattern"))
	assert.Equal(t, "edit-url_pattern", definitionForm{Prefix: editPrefix}.Field("url_pattern"))
}

func assertText(t *testing.T, message *adminservice.Message, path, expected string) {
	t.Helper()

	text, err := message.Text(path)
	require.NoError(t, err)
	assert.Equal(t, expected, text)
}
