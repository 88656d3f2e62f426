package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/donaldgifford/amazon-mws/internal/monitor"
	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printRegionsTable(w io.Writer, regions []mws.Region) error {
	tw := newTabWriter(w)
	tw.writef("CODE\tMARKETPLACE\tCURRENCY\tENDPOINT\n")
	for _, r := range regions {
		tw.writef("%s\t%s\t%s\t%s\n", r.Code, r.MarketplaceID, r.Currency, r.Endpoint)
	}
	return tw.finish()
}

func printParamsTable(w io.Writer, section mws.Section, p params.Values) error {
	tw := newTabWriter(w)
	tw.writef("Section:\t%s\n", section.Name)
	tw.writef("Path:\t%s\n", section.Path)
	for _, k := range p.Keys() {
		tw.writef("%s:\t%s\n", k, p[k])
	}
	return tw.finish()
}

func printStatusTable(w io.Writer, rows []monitor.Result) error {
	tw := newTabWriter(w)
	tw.writef("SECTION\tSTATUS\tTIMESTAMP\tERROR\n")
	for _, r := range rows {
		tw.writef("%s\t%s\t%s\t%s\n", r.Section, r.Status, r.Timestamp, truncate(r.Error, 60))
	}
	return tw.finish()
}

// responseDocument is the JSON rendering of one response.
type responseDocument struct {
	Action    string `json:"action"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
	NextToken string `json:"next_token,omitempty"`
	Result    any    `json:"result"`
}

func newResponseDocument(resp *mws.Response) responseDocument {
	doc := responseDocument{
		Action:    resp.Action,
		Status:    resp.StatusCode,
		RequestID: resp.RequestID(),
		NextToken: resp.NextToken(),
	}
	if resp.IsXML() {
		doc.Result = resp.Parsed().Map()
	} else {
		doc.Result = string(resp.Data())
	}
	return doc
}

func outputJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
