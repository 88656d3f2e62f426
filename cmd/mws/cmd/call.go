package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
)

// inputFlags are shared by the params and call commands.
type inputFlags struct {
	input     string
	inputFile string
	bodyFile  string
	nextToken string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input, "input", "", "operation input as JSON")
	cmd.Flags().StringVar(&f.inputFile, "input-file", "", "read the JSON input from a file (- for stdin)")
	cmd.Flags().StringVar(&f.bodyFile, "body-file", "", "request body file (SubmitFeed)")
	cmd.Flags().StringVar(&f.nextToken, "next-token", "", "fetch the ByNextToken page for this token")
	cmd.MarkFlagsMutuallyExclusive("input", "input-file")
}

func (f *inputFlags) request(stdin io.Reader) (request, error) {
	var req request
	switch {
	case f.input != "":
		req.input = []byte(f.input)
	case f.inputFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return request{}, fmt.Errorf("reading input from stdin: %w", err)
		}
		req.input = data
	case f.inputFile != "":
		data, err := os.ReadFile(f.inputFile)
		if err != nil {
			return request{}, fmt.Errorf("reading input file: %w", err)
		}
		req.input = data
	}

	if f.bodyFile != "" {
		data, err := os.ReadFile(f.bodyFile)
		if err != nil {
			return request{}, fmt.Errorf("reading body file: %w", err)
		}
		req.body = data
	}
	return req, nil
}

// invocation is one resolved operation with its request.
type invocation struct {
	group     group
	action    string
	op        operation
	req       request
	nextToken string
}

func newInvocation(sectionName, action string, flags *inputFlags, stdin io.Reader) (*invocation, error) {
	g, op, err := lookup(sectionName, action)
	if err != nil {
		return nil, err
	}
	if flags.nextToken != "" && !op.paginated() {
		return nil, fmt.Errorf("%s has no ByNextToken continuation", action)
	}
	req, err := flags.request(stdin)
	if err != nil {
		return nil, err
	}
	return &invocation{
		group:     g,
		action:    action,
		op:        op,
		req:       req,
		nextToken: flags.nextToken,
	}, nil
}

// do sends one request: the ByNextToken continuation when a token was
// given, the operation itself otherwise.
func (inv *invocation) do(ctx context.Context, d mws.Doer) (*mws.Response, error) {
	if inv.nextToken != "" {
		return mws.CallByNextToken(ctx, d, inv.group.section, inv.action, inv.nextToken)
	}
	return inv.op.run(ctx, d, inv.req)
}

// all follows the NextToken chain, starting from the operation or from the
// given token.
func (inv *invocation) all(ctx context.Context, d mws.Doer, p *mws.Paginator) (*mws.PaginateResult, error) {
	if !inv.op.paginated() {
		return nil, fmt.Errorf("%s has no ByNextToken continuation", inv.action)
	}
	pager, err := inv.op.pages(d, inv.req)
	if err != nil {
		return nil, err
	}
	if inv.nextToken != "" {
		first := inv.nextToken
		next := pager
		pager = mws.PagerFunc(func(ctx context.Context, token string) (*mws.Response, error) {
			if token == "" {
				token = first
			}
			return next.Page(ctx, token)
		})
	}
	return p.Paginate(ctx, pager)
}

func callCmd() *cobra.Command {
	var (
		flags    inputFlags
		allPages bool
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "call <section> <operation>",
		Short: "Send an operation to MWS",
		Long:  "Signs and sends one operation. Responses are printed as JSON with\n" +
			"the <Operation>Result element converted to objects; --raw prints\n" +
			"the body unchanged, which suits report documents.",
		Args:    cobra.ExactArgs(2),
		Example: `  mws call reports RequestReport --input '{"ReportType":"_GET_FLAT_FILE_OPEN_LISTINGS_DATA_"}'
  mws call orders ListOrders --input-file orders.json --all-pages
  mws call reports GetReport --input '{"ReportID":"1234"}' --raw > report.txt
  mws call feeds SubmitFeed --input '{"FeedType":"_POST_PRODUCT_DATA_"}' --body-file feed.xml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := newInvocation(args[0], args[1], &flags, cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			client, err := newClient(cfg, log)
			if err != nil {
				return err
			}

			var responses []*mws.Response
			if allPages {
				result, err := inv.all(cmd.Context(), client, mws.NewPaginator(
					mws.WithMaxPages(cfg.Pagination.MaxPages),
					mws.WithPaginatorLogger(log),
				))
				if err != nil {
					return describeError(log, err)
				}
				log.Debug("pagination finished",
					"action", inv.action,
					"pages", len(result.Pages),
					"stopped_at", result.StoppedAt,
				)
				responses = result.Pages
			} else {
				resp, err := inv.do(cmd.Context(), client)
				if err != nil {
					return describeError(log, err)
				}
				responses = []*mws.Response{resp}
			}

			return printResponses(cmd.OutOrStdout(), responses, raw)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "follow NextToken until the last page")
	cmd.Flags().BoolVar(&raw, "raw", false, "print response bodies unchanged")
	return cmd
}

// describeError logs the MWS error details before returning err.
func describeError(log *slog.Logger, err error) error {
	var apiErr *mws.APIError
	if errors.As(err, &apiErr) {
		log.Error("mws error",
			"status", apiErr.StatusCode,
			"code", apiErr.Code,
			"request_id", apiErr.RequestID,
		)
	}
	return err
}

func printResponses(w io.Writer, responses []*mws.Response, raw bool) error {
	if raw {
		for _, resp := range responses {
			if _, err := w.Write(resp.Data()); err != nil {
				return err
			}
		}
		return nil
	}
	if len(responses) == 1 {
		return outputJSON(w, newResponseDocument(responses[0]))
	}
	docs := make([]responseDocument, 0, len(responses))
	for _, resp := range responses {
		docs = append(docs, newResponseDocument(resp))
	}
	return outputJSON(w, docs)
}
