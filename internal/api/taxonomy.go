package api

import (
	"context"
	"net/url"

	"wealthify/internal/core"
)

func (c *Client) GetCategories(ctx context.Context, kind core.CategoryKind) ([]core.Category, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	var out []core.Category
	if err := c.get(ctx, "get-categories", url.Values{"type": {string(kind)}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddCategory(ctx context.Context, req AddCategoryRequest) (MessageResponse, error) {
	var resp MessageResponse
	if err := req.Type.Validate(); err != nil {
		return resp, err
	}
	err := c.post(ctx, "add-category", req, &resp)
	return resp, err
}

func (c *Client) GetSubCategories(ctx context.Context, category string) ([]core.SubCategory, error) {
	var out []core.SubCategory
	if err := c.get(ctx, "get-sub-categories", url.Values{"category": {category}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddSubCategory(ctx context.Context, req AddSubCategoryRequest) (MessageResponse, error) {
	var resp MessageResponse
	err := c.post(ctx, "add-sub-category", req, &resp)
	return resp, err
}
