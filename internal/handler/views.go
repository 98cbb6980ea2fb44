package handler

import "github.com/dangerclosesec/nexus/internal/model"

// The API exposes related records as trimmed refs rather than the full
// preloaded rows; these wrappers shadow the relation fields the models keep
// out of their own JSON.

type assetView struct {
	*model.Asset
	Organization *model.OrganizationRef `json:"organization,omitempty"`
	CreatedBy    *model.UserRef         `json:"createdBy,omitempty"`
	WorkOrders   []*workOrderView       `json:"workOrders,omitempty"`
}

func newAssetView(a *model.Asset) *assetView {
	if a == nil {
		return nil
	}
	v := &assetView{
		Asset:        a,
		Organization: a.Organization.Ref(),
		CreatedBy:    a.CreatedBy.Ref(),
	}
	for i := range a.WorkOrders {
		v.WorkOrders = append(v.WorkOrders, newWorkOrderView(&a.WorkOrders[i]))
	}
	return v
}

func newAssetViews(assets []*model.Asset) []*assetView {
	views := make([]*assetView, 0, len(assets))
	for _, a := range assets {
		views = append(views, newAssetView(a))
	}
	return views
}

type workOrderView struct {
	*model.WorkOrder
	Organization *model.OrganizationRef `json:"organization,omitempty"`
	Asset        *model.AssetRef        `json:"asset,omitempty"`
	AssignedTo   *model.UserRef         `json:"assignedTo,omitempty"`
	CreatedBy    *model.UserRef         `json:"createdBy,omitempty"`
	Comments     []*commentView         `json:"comments,omitempty"`
}

func newWorkOrderView(wo *model.WorkOrder) *workOrderView {
	if wo == nil {
		return nil
	}
	v := &workOrderView{
		WorkOrder:    wo,
		Organization: wo.Organization.Ref(),
		Asset:        wo.Asset.Ref(),
		AssignedTo:   wo.AssignedTo.Ref(),
		CreatedBy:    wo.CreatedBy.Ref(),
	}
	for i := range wo.Comments {
		v.Comments = append(v.Comments, newCommentView(&wo.Comments[i]))
	}
	return v
}

func newWorkOrderViews(orders []*model.WorkOrder) []*workOrderView {
	views := make([]*workOrderView, 0, len(orders))
	for _, wo := range orders {
		views = append(views, newWorkOrderView(wo))
	}
	return views
}

type commentView struct {
	*model.Comment
	Author *model.UserRef `json:"author,omitempty"`
}

func newCommentView(c *model.Comment) *commentView {
	if c == nil {
		return nil
	}
	return &commentView{Comment: c, Author: c.Author.Ref()}
}
