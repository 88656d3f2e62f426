package mws

import (
	"context"
	"fmt"
	"log/slog"
)

const defaultMaxPages = 20

// Stop reasons reported by Paginate.
const (
	StoppedNoNextToken = "no_next_token"
	StoppedMaxPages    = "max_pages"
)

// Pager fetches one page of a paginated operation. An empty token asks for
// the first page.
type Pager interface {
	Page(ctx context.Context, nextToken string) (*Response, error)
}

// PagerFunc adapts a function to Pager.
type PagerFunc func(ctx context.Context, nextToken string) (*Response, error)

// Page implements Pager.
func (f PagerFunc) Page(ctx context.Context, nextToken string) (*Response, error) {
	return f(ctx, nextToken)
}

// Pages returns a Pager that sends first for the first page and the
// ByNextToken continuation of action for every following page.
func Pages(d Doer, section Section, action string, first Builder) Pager {
	return PagerFunc(func(ctx context.Context, token string) (*Response, error) {
		if token == "" {
			return Call(ctx, d, section, first)
		}
		return CallByNextToken(ctx, d, section, action, token)
	})
}

// Paginator follows NextToken chains.
type Paginator struct {
	maxPages int
	logger   *slog.Logger
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithMaxPages caps the number of pages fetched.
func WithMaxPages(n int) PaginatorOption {
	return func(p *Paginator) {
		p.maxPages = n
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.logger = l
	}
}

// NewPaginator creates a new Paginator.
func NewPaginator(opts ...PaginatorOption) *Paginator {
	p := &Paginator{maxPages: defaultMaxPages}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateResult holds every page fetched.
type PaginateResult struct {
	Pages     []*Response
	StoppedAt string // "no_next_token", "max_pages"
}

// Paginate fetches pages until a response carries no NextToken, reports
// HasNext false, or the page cap is reached.
func (p *Paginator) Paginate(ctx context.Context, pager Pager) (*PaginateResult, error) {
	result := &PaginateResult{}
	token := ""

	for page := range p.maxPages {
		resp, err := pager.Page(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page+1, err)
		}
		result.Pages = append(result.Pages, resp)

		token = resp.NextToken()
		if token == "" || !resp.HasNext() {
			result.StoppedAt = StoppedNoNextToken
			return result, nil
		}
		if p.logger != nil {
			p.logger.Debug("following next token", "action", resp.Action, "page", page+1)
		}
	}

	result.StoppedAt = StoppedMaxPages
	return result, nil
}
