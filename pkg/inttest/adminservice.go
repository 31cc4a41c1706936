package inttest

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupAdminService starts a fake admin service. Services answer with the replies registered via
// [AdminService.Reply] or [AdminService.Fail]. Unknown services answer with a SOAP fault.
func SetupAdminService(t *testing.T) *AdminService {
	t.Helper()

	a := &AdminService{replies: make(map[string]string)}
	a.server = httptest.NewServer(http.HandlerFunc(a.serve))
	t.Cleanup(a.server.Close)

	host, port, err := net.SplitHostPort(a.server.Listener.Addr().String())
	require.NoError(t, err, "failed to parse fake admin service address")
	a.Host = host
	a.Port, err = strconv.Atoi(port)
	require.NoError(t, err, "failed to parse fake admin service port")

	return a
}

// AdminService is a fake admin service listening on Host and Port.
type AdminService struct {
	Host string
	Port int

	server   *httptest.Server
	mu       sync.Mutex
	replies  map[string]string
	requests []AdminServiceRequest
}

// AdminServiceRequest is a request received by the fake admin service.
type AdminServiceRequest struct {
	Service string
	Header  http.Header
	Body    string
}

// Reply makes service answer successfully with data as the content of the data element.
func (a *AdminService) Reply(service, data string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replies[service] = fmt.Sprintf(replyTemplate, "ZATO_OK", "", data)
}

// Fail makes service answer with a ZATO_ERROR result carrying details.
func (a *AdminService) Fail(service, details string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replies[service] = fmt.Sprintf(replyTemplate, "ZATO_ERROR", details, "")
}

// Requests returns the requests received so far.
func (a *AdminService) Requests() []AdminServiceRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]AdminServiceRequest(nil), a.requests...)
}

func (a *AdminService) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	service := r.Header.Get("SOAPAction")

	a.mu.Lock()
	a.requests = append(a.requests, AdminServiceRequest{Service: service, Header: r.Header.Clone(), Body: string(body)})
	reply, ok := a.replies[service]
	a.mu.Unlock()

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprintf(w, faultTemplate, "no such service: "+service)
		return
	}
	_, _ = io.WriteString(w, reply)
}

const replyTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <zato_message xmlns="http://gefira.pl/zato">
      <zato_env>
        <cid>K0123456789</cid>
        <result>%s</result>
        <details>%s</details>
      </zato_env>
      <data>%s</data>
    </zato_message>
  </soapenv:Body>
</soapenv:Envelope>`

const faultTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <soapenv:Fault>
      <faultcode>soapenv:Server</faultcode>
      <faultstring>%s</faultstring>
    </soapenv:Fault>
  </soapenv:Body>
</soapenv:Envelope>`
