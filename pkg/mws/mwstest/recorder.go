// Package mwstest provides a Doer that records requests instead of sending
// them, for testing section packages and code built on them.
package mwstest

import (
	"context"
	"sync"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// Call is one recorded request.
type Call struct {
	Section mws.Section
	Params  params.Values
	Body    []byte
	// ContentType is only set when the request carried a body.
	ContentType string
}

// Recorder implements mws.Doer. Responses are served from Responses in
// order; once exhausted an empty successful response is returned.
type Recorder struct {
	mu        sync.Mutex
	Calls     []Call
	Responses []*mws.Response
	Err       error
}

// Do records the request.
func (r *Recorder) Do(
	_ context.Context,
	section mws.Section,
	p params.Values,
	opts ...mws.RequestOption,
) (*mws.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	body, contentType := mws.ApplyRequestOptions(opts...)
	r.Calls = append(r.Calls, Call{
		Section:     section,
		Params:      p.Clone(),
		Body:        body,
		ContentType: contentType,
	})

	if r.Err != nil {
		return nil, r.Err
	}
	if len(r.Responses) > 0 {
		resp := r.Responses[0]
		r.Responses = r.Responses[1:]
		return resp, nil
	}
	return &mws.Response{Action: p.Action(), StatusCode: 200}, nil
}

// Last returns the most recent call. It panics when nothing was recorded.
func (r *Recorder) Last() Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Calls[len(r.Calls)-1]
}

// XMLResponse builds a response from an XML document, as the client would.
func XMLResponse(action, body string) *mws.Response {
	root, err := mws.ParseXML([]byte(body))
	if err != nil {
		panic(err)
	}
	return &mws.Response{Action: action, StatusCode: 200, Body: []byte(body), Root: root}
}
