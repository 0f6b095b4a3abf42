package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/dto"
	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/usecases"
	"github.com/deskhive/deskhive-backend/utils"
)

func handleInvokeRuleRun(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		ruleId, err := uuid.Parse(c.Param("rule_id"))
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "missing or invalid rule_id"))
			return
		}

		var body dto.InvokeRuleRunBody
		if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		caller := utils.CallerFromContext(ctx)

		ruleRunUsecase := uc.NewRuleRunUsecase()
		result, err := ruleRunUsecase.InvokeRule(ctx, usecases.InvokeRuleInput{
			RuleId:         ruleId,
			Caller:         caller,
			DryRun:         body.DryRun,
			SourcePayload:  body.SourcePayload,
			IdempotencyKey: body.IdempotencyKey,
			TriggerSource:  triggerSource(body.TriggerSource, caller),
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptRuleRunResult(result.RunId, result.Status, result.Reused))
	}
}

func handleGetRuleRun(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		runId, err := uuid.Parse(c.Param("run_id"))
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "missing or invalid run_id"))
			return
		}

		ruleRunUsecase := uc.NewRuleRunUsecase()
		run, err := ruleRunUsecase.GetRuleRunWithSteps(ctx, utils.CallerFromContext(ctx), runId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptRuleRunWithSteps(run))
	}
}

// triggerSource defaults by caller kind: the trusted trigger is the
// scheduler, interactive principals trigger manually.
func triggerSource(requested string, caller models.Caller) models.TriggerSource {
	if requested != "" {
		return models.TriggerSource(requested)
	}
	if _, ok := caller.(models.TrustedCaller); ok {
		return models.TriggerSourceScheduled
	}
	return models.TriggerSourceManual
}
