package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/db"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/admin/packets"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

const ruleDateFormat = "2006-01-02"

type RuleController struct {
	store db.Store
}

func newRuleController(store db.Store) *RuleController {
	return &RuleController{store: store}
}

// RuleModule mounts all authenticated /rules endpoints.
func RuleModule(store db.Store) api.Module {
	ctl := newRuleController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/rules", ctl.listRules)
		c.POST("/rules", ctl.createRule)
		c.GET("/rules/:id", ctl.getRule)
		c.PUT("/rules/:id", ctl.updateRule)
		c.PATCH("/rules/:id/active", ctl.setRuleActive)
		c.DELETE("/rules/:id", ctl.deleteRule)
	})
}

// GET /api/admin/rules
func (r *RuleController) listRules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rules, err := r.store.ListRecurrenceRules(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list rules"}
	}

	out := make([]packets.RecurrenceRuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, ruleResponse(rule))
	}
	return out, nil
}

// POST /api/admin/rules
func (r *RuleController) createRule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateRecurrenceRuleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	rule, apiErr := ruleFromRequest(request, user.ID)
	if apiErr != nil {
		return nil, apiErr
	}

	created, err := r.store.CreateRecurrenceRule(rule)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create rule"}
	}
	return ruleResponse(created), nil
}

// GET /api/admin/rules/:id
func (r *RuleController) getRule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rule, apiErr := r.ownedRule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return ruleResponse(*rule), nil
}

// PUT /api/admin/rules/:id
func (r *RuleController) updateRule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	existing, apiErr := r.ownedRule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreateRecurrenceRuleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	rule, apiErr := ruleFromRequest(request, user.ID)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := r.store.UpdateRecurrenceRule(existing.ID, rule); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update rule"}
	}

	updated, err := r.store.GetRecurrenceRuleByID(existing.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load updated rule"}
	}
	return ruleResponse(updated), nil
}

// PATCH /api/admin/rules/:id/active
func (r *RuleController) setRuleActive(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rule, apiErr := r.ownedRule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.SetRuleActiveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := r.store.SetRecurrenceRuleActive(rule.ID, *request.Active); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update rule"}
	}
	return nil, nil
}

// DELETE /api/admin/rules/:id
func (r *RuleController) deleteRule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rule, apiErr := r.ownedRule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := r.store.DeleteRecurrenceRule(rule.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete rule"}
	}
	return nil, nil
}

func (r *RuleController) ownedRule(ctx *gin.Context, user *model.User) (*model.RecurrenceRule, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	rule, err := r.store.GetRecurrenceRuleByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "rule not found"}
	}
	if rule.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return &rule, nil
}

// ruleFromRequest maps the wire rule into a validated model rule.
func ruleFromRequest(request packets.CreateRecurrenceRuleRequest, userID int) (model.RecurrenceRule, *api.APIError) {
	rule := model.RecurrenceRule{
		Kind:      model.RuleKind(request.Kind),
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
		Priority:  request.Priority,
		IsActive:  true,
		CreatedBy: userID,
	}
	if request.IsActive != nil {
		rule.IsActive = *request.IsActive
	}

	days := make(pq.Int64Array, 0, len(request.DaysOfWeek))
	for _, d := range request.DaysOfWeek {
		days = append(days, int64(d))
	}
	rule.DaysOfWeek = days

	if request.StartDate != nil {
		parsed, err := time.Parse(ruleDateFormat, *request.StartDate)
		if err != nil {
			return model.RecurrenceRule{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid start_date"}
		}
		rule.StartDate = &parsed
	}
	if request.EndDate != nil {
		parsed, err := time.Parse(ruleDateFormat, *request.EndDate)
		if err != nil {
			return model.RecurrenceRule{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end_date"}
		}
		rule.EndDate = &parsed
	}

	if err := rule.Validate(); err != nil {
		return model.RecurrenceRule{}, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	return rule, nil
}

func ruleResponse(rule model.RecurrenceRule) packets.RecurrenceRuleResponse {
	days := make([]int, 0, len(rule.DaysOfWeek))
	for _, d := range rule.DaysOfWeek {
		days = append(days, int(d))
	}

	resp := packets.RecurrenceRuleResponse{
		ID:         rule.ID,
		Kind:       string(rule.Kind),
		DaysOfWeek: days,
		StartTime:  rule.StartTime,
		EndTime:    rule.EndTime,
		Priority:   rule.Priority,
		IsActive:   rule.IsActive,
		CreatedAt:  rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rule.UpdatedAt.Format(time.RFC3339),
	}
	if rule.StartDate != nil {
		s := rule.StartDate.Format(ruleDateFormat)
		resp.StartDate = &s
	}
	if rule.EndDate != nil {
		e := rule.EndDate.Format(ruleDateFormat)
		resp.EndDate = &e
	}
	return resp
}
