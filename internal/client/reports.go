package client

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/query"
)

// ListReports returns the reports matching f. A result fetched for the same
// filters within the freshness window is returned without a network call, and
// concurrent calls with the same filters share one request.
//
// The shared request is detached from any single caller's context; each
// caller stops waiting when its own context is done. Results fetched before
// an Invalidate are neither cached nor shared with later callers.
func (c *Client) ListReports(ctx context.Context, f query.Filters) ([]model.Report, error) {
	key := f.Encode()
	if reports, ok := c.cached(key); ok {
		return reports, nil
	}

	path := "/api/reports"
	if key != "" {
		path += "?" + key
	}

	gen := c.generation()
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(strconv.FormatUint(gen, 10)+"|"+key, func() (any, error) {
		var reports []model.Report
		if err := c.do(shared, http.MethodGet, path, "", nil, &reports); err != nil {
			return nil, err
		}
		if reports == nil {
			reports = []model.Report{}
		}
		c.remember(gen, key, reports)
		return reports, nil
	})

	select {
	case <-ctx.Done():
		return nil, &Error{Kind: KindNetwork, Op: "GET /api/reports", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]model.Report)), nil
	}
}

// GetReport returns a single report by id.
func (c *Client) GetReport(ctx context.Context, id string) (*model.Report, error) {
	var r model.Report
	if err := c.do(ctx, http.MethodGet, "/api/reports/"+url.PathEscape(id), "", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReport submits a new report on behalf of the token's owner. A
// successful creation invalidates cached report lists.
func (c *Client) CreateReport(ctx context.Context, token string, in model.ReportInput) (*model.Report, error) {
	var r model.Report
	if err := c.do(ctx, http.MethodPost, "/api/reports", token, in, &r); err != nil {
		return nil, err
	}
	c.Invalidate()
	return &r, nil
}
