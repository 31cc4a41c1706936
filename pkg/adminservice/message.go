// Package adminservice invokes services of a cluster's admin service. Requests and replies are
// zato_message documents carried in a SOAP 1.1 envelope.
package adminservice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const (
	// Namespace of the zato_message element.
	Namespace = "http://gefira.pl/zato"
	// SOAPNamespace is the SOAP 1.1 envelope namespace.
	SOAPNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

	// NotGiven marks an optional value the caller didn't provide.
	NotGiven = "ZATO_NOT_GIVEN"
	// ResultOK is the zato_env result of a successful invocation.
	ResultOK = "ZATO_OK"
)

// Message is a zato_message document. Values are addressed by dot separated paths relative to the
// zato_message element, e.g. "data.definition_list.definition".
type Message struct {
	root *etree.Element
}

// NewMessage returns an empty request message with its data element in place.
func NewMessage() *Message {
	root := etree.NewElement("zato_message")
	root.CreateAttr("xmlns", Namespace)
	root.CreateElement("data")
	return &Message{root: root}
}

// Set sets the text of the element at path, creating missing elements on the way.
func (m *Message) Set(path, value string) *Message {
	e := m.root
	for _, tag := range strings.Split(path, ".") {
		child := e.SelectElement(tag)
		if child == nil {
			child = e.CreateElement(tag)
		}
		e = child
	}
	e.SetText(value)
	return m
}

// SetOptional sets the value at path or [NotGiven] if value is empty.
func (m *Message) SetOptional(path, value string) *Message {
	if value == "" {
		value = NotGiven
	}
	return m.Set(path, value)
}

// Find returns the first element at path or nil if there is none.
func (m *Message) Find(path string) *etree.Element {
	elements := m.FindAll(path)
	if len(elements) == 0 {
		return nil
	}
	return elements[0]
}

// FindAll returns every element at path. All but the last path segment select the first matching
// child, the last segment selects all matching children.
func (m *Message) FindAll(path string) []*etree.Element {
	tags := strings.Split(path, ".")
	e := m.root
	for _, tag := range tags[:len(tags)-1] {
		e = e.SelectElement(tag)
		if e == nil {
			return nil
		}
	}
	return e.SelectElements(tags[len(tags)-1])
}

// Exists reports whether there is an element at path.
func (m *Message) Exists(path string) bool {
	return m.Find(path) != nil
}

// Text returns the text of the element at path or an error if there is no such element. The text
// is returned as is, callers parsing it trim it themselves.
func (m *Message) Text(path string) (string, error) {
	e := m.Find(path)
	if e == nil {
		return "", fmt.Errorf("element %q not found in zato_message", path)
	}
	return e.Text(), nil
}

// ChildText returns the untrimmed text of the direct child tag of e or an error if e has no such
// child.
func ChildText(e *etree.Element, tag string) (string, error) {
	child := e.SelectElement(tag)
	if child == nil {
		return "", fmt.Errorf("element %q has no child %q", e.Tag, tag)
	}
	return child.Text(), nil
}

// envelope wraps the message into a SOAP envelope and serializes it.
func (m *Message) envelope() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", SOAPNamespace)
	env.CreateElement("soapenv:Header")
	body := env.CreateElement("soapenv:Body")
	body.AddChild(m.root.Copy())
	return doc.WriteToBytes()
}

// String returns the message serialized without envelope. Meant for logging.
func (m *Message) String() string {
	doc := etree.NewDocument()
	doc.SetRoot(m.root.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return fmt.Sprintf("<invalid zato_message: %v>", err)
	}
	return s
}

var errNoMessage = errors.New("no zato_message in SOAP body")

// fault is a SOAP Fault found in a reply.
type fault struct {
	code   string
	reason string
}

// parseEnvelope reads a SOAP envelope and returns either its zato_message or the fault it carries.
func parseEnvelope(b []byte) (*Message, *fault, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, nil, fmt.Errorf("failed to parse SOAP envelope: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, nil, errors.New("failed to parse SOAP envelope: root element is not an Envelope")
	}
	body := root.SelectElement("Body")
	if body == nil {
		return nil, nil, errors.New("failed to parse SOAP envelope: no Body")
	}

	if f := body.SelectElement("Fault"); f != nil {
		return nil, &fault{code: childText(f, "faultcode"), reason: childText(f, "faultstring")}, nil
	}

	message := body.SelectElement("zato_message")
	if message == nil {
		return nil, nil, errNoMessage
	}
	return &Message{root: message}, nil, nil
}

func childText(e *etree.Element, tag string) string {
	text, _ := ChildText(e, tag)
	return strings.TrimSpace(text)
}
