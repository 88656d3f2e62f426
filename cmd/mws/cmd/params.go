package cmd

import (
	"context"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

// captureDoer records the request instead of sending it.
type captureDoer struct {
	section     mws.Section
	params      params.Values
	body        []byte
	contentType string
}

func (c *captureDoer) Do(
	_ context.Context,
	section mws.Section,
	p params.Values,
	opts ...mws.RequestOption,
) (*mws.Response, error) {
	c.section = section
	c.params = p
	c.body, c.contentType = mws.ApplyRequestOptions(opts...)
	return &mws.Response{Action: p.Action(), StatusCode: http.StatusOK}, nil
}

// dryRun builds the parameters inv would send without contacting MWS.
func dryRun(ctx context.Context, inv *invocation) (*captureDoer, error) {
	capture := &captureDoer{}
	if _, err := inv.do(ctx, capture); err != nil {
		return nil, err
	}
	return capture, nil
}

type paramsDocument struct {
	Section     string        `json:"section"`
	Path        string        `json:"path"`
	Params      params.Values `json:"params"`
	ContentType string        `json:"content_type,omitempty"`
	BodyBytes   int           `json:"body_bytes,omitempty"`
}

func printParams(w io.Writer, capture *captureDoer, p params.Values) error {
	if jsonOutput() {
		return outputJSON(w, paramsDocument{
			Section:     capture.section.Name,
			Path:        capture.section.Path,
			Params:      p,
			ContentType: capture.contentType,
			BodyBytes:   len(capture.body),
		})
	}
	return printParamsTable(w, capture.section, p)
}

func paramsCmd() *cobra.Command {
	var (
		flags  inputFlags
		signed bool
	)

	cmd := &cobra.Command{
		Use:   "params <section> <operation>",
		Short: "Show the request parameters of an operation without sending it",
		Long:  "Validates the JSON input and prints the parameter dictionary it\n" +
			"produces. With --signed the credential parameters, timestamp and\n" +
			"signature are added as they would be on the wire.",
		Args:    cobra.ExactArgs(2),
		Example: `  mws params reports RequestReport --input '{"ReportType":"_GET_MERCHANT_LISTINGS_DATA_"}'
  mws params orders ListOrders --input-file orders.json --output json
  mws params orders ListOrders --next-token abc123 --signed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := newInvocation(args[0], args[1], &flags, cmd.InOrStdin())
			if err != nil {
				return err
			}
			capture, err := dryRun(cmd.Context(), inv)
			if err != nil {
				return err
			}
			if !signed {
				return printParams(cmd.OutOrStdout(), capture, capture.params)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			return printParams(cmd.OutOrStdout(), capture, client.SignedParams(capture.section, capture.params))
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&signed, "signed", false, "add credentials, timestamp and signature")
	return cmd
}
