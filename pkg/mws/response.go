package mws

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Node is one element of a parsed XML response. Methods are nil-safe so
// lookups can be chained without checks:
//
//	resp.Parsed().Get("ReportRequestInfo", "ReportRequestId").Text
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Get walks path from n, following the first child with each name.
func (n *Node) Get(path ...string) *Node {
	cur := n
	for _, name := range path {
		if cur == nil {
			return nil
		}
		var next *Node
		for _, c := range cur.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		cur = next
	}
	return cur
}

// Value returns the text of the node at path, or "".
func (n *Node) Value(path ...string) string {
	if found := n.Get(path...); found != nil {
		return found.Text
	}
	return ""
}

// All returns every direct child named name.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first node named name in a depth-first walk, including n.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Map converts the subtree into plain maps for JSON output. Leaves become
// strings; repeated child names become lists. Attributes are keyed "@name"
// and the text of an element that also has attributes "#text".
func (n *Node) Map() any {
	if n == nil {
		return nil
	}
	if len(n.Children) == 0 && len(n.Attrs) == 0 {
		return n.Text
	}
	out := make(map[string]any, len(n.Children)+len(n.Attrs))
	for k, v := range n.Attrs {
		out["@"+k] = v
	}
	if n.Text != "" {
		out["#text"] = n.Text
	}
	for _, c := range n.Children {
		val := c.Map()
		existing, ok := out[c.Name]
		if !ok {
			out[c.Name] = val
			continue
		}
		if list, isList := existing.([]any); isList {
			out[c.Name] = append(list, val)
		} else {
			out[c.Name] = []any{existing, val}
		}
	}
	return out
}

// ParseXML builds a Node tree from an XML document. Namespaces are dropped
// from element and attribute names.
func ParseXML(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				if node.Attrs == nil {
					node.Attrs = make(map[string]string)
				}
				node.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("decoding XML: unexpected </%s>", t.Name.Local)
			}
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("decoding XML: no root element")
	}
	return root, nil
}

// Response is a parsed MWS response. XML bodies are available as a Node
// tree; anything else (report documents, feed processing results in flat
// file form) is kept as raw Data.
type Response struct {
	Action     string
	StatusCode int
	Header     http.Header
	Body       []byte
	Root       *Node
	Quota      *QuotaState
}

// IsXML reports whether the body was parsed as XML.
func (r *Response) IsXML() bool {
	return r.Root != nil
}

// Parsed returns the <Action>Result element, falling back to the document
// root when the response has no result wrapper.
func (r *Response) Parsed() *Node {
	if r.Root == nil {
		return nil
	}
	if res := r.Root.Find(r.Action + "Result"); res != nil {
		return res
	}
	return r.Root
}

// Data returns the raw body, for flat-file responses.
func (r *Response) Data() []byte {
	return r.Body
}

// RequestID returns the MWS request id from the response metadata or the
// x-mws-request-id header.
func (r *Response) RequestID() string {
	if id := r.Root.Value("ResponseMetadata", "RequestId"); id != "" {
		return id
	}
	if r.Header != nil {
		return r.Header.Get("x-mws-request-id")
	}
	return ""
}

// NextToken returns the pagination cursor of the result, or "".
func (r *Response) NextToken() string {
	return r.Parsed().Value("NextToken")
}

// HasNext reports whether another page follows. An explicit HasNext
// element wins over the presence of a NextToken.
func (r *Response) HasNext() bool {
	if flag := r.Parsed().Get("HasNext"); flag != nil {
		return !strings.EqualFold(strings.TrimSpace(flag.Text), "false")
	}
	return r.NextToken() != ""
}

// parseResponse turns a successful HTTP exchange into a Response. XML is
// attempted first; bodies that do not parse are treated as flat files and
// verified against Content-MD5 when the header is present.
func parseResponse(action string, status int, header http.Header, body []byte) (*Response, error) {
	resp := &Response{
		Action:     action,
		StatusCode: status,
		Header:     header,
		Body:       body,
		Quota:      ParseQuota(header),
	}

	if looksLikeXML(body) {
		if root, err := ParseXML(body); err == nil {
			resp.Root = root
			return resp, nil
		}
	}

	if want := header.Get("Content-MD5"); want != "" {
		if got := ContentMD5(body); got != want {
			return nil, fmt.Errorf("%w (header %s, body %s)", ErrContentMD5Mismatch, want, got)
		}
	}
	return resp, nil
}

func looksLikeXML(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n\ufeff")
	return len(trimmed) > 0 && trimmed[0] == '<'
}
