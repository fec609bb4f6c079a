package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/services"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/SAP-F-2025/widget-service/internal/verify"
	"github.com/gin-gonic/gin"
)

// VerifyHandler exposes the pure checks for clients that keep widget state themselves.
type VerifyHandler struct {
	BaseHandler
	loader    ContentDecoder
	validator Validator
}

func NewVerifyHandler(loader ContentDecoder, validator Validator, logger utils.Logger) *VerifyHandler {
	return &VerifyHandler{
		BaseHandler: NewBaseHandler(logger),
		loader:      loader,
		validator:   validator,
	}
}

type VerifyDragRequest struct {
	Content json.RawMessage `json:"content" validate:"required"`
	// Positions maps item id to its top-left corner; missing items are at their start.
	Positions map[string]models.Point `json:"positions"`
}

type VerifyMarkRequest struct {
	Paragraph string `json:"paragraph" validate:"required,not_blank"`
	Selected  []int  `json:"selected"`
}

type VerifySortRequest struct {
	Sentences []string `json:"sentences" validate:"required,min=2,dive,not_blank"`
	// Arrangement lists canonical indices in the order the learner left them.
	Arrangement []int `json:"arrangement" validate:"required"`
}

type VerifySpellRequest struct {
	Reference string `json:"reference" validate:"required,not_blank"`
	Input     string `json:"input" validate:"required,not_blank"`
}

func (h *VerifyHandler) bind(c *gin.Context, req interface{}) bool {
	if !h.bindJSON(c, req) {
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		h.RespondWithServiceError(c, err)
		return false
	}
	return true
}

func (h *VerifyHandler) VerifyDrag(c *gin.Context) {
	var req VerifyDragRequest
	if !h.bind(c, &req) {
		return
	}

	result := h.loader.Decode(models.WidgetDrag, string(req.Content))
	if result.FallbackUsed() {
		h.RespondWithServiceError(c, services.NewValidationError("content", "invalid drag content: "+result.Reason, result.Detail))
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Drag placements checked",
		verify.ScorePlacements(result.Value.(*models.DragContent), req.Positions))
}

func (h *VerifyHandler) VerifyMark(c *gin.Context) {
	var req VerifyMarkRequest
	if !h.bind(c, &req) {
		return
	}

	tokens := verify.ParseParagraph(req.Paragraph)
	for _, id := range req.Selected {
		if id < 0 || id >= len(tokens) {
			h.RespondWithServiceError(c, services.NewValidationError("selected", "unknown token id", id))
			return
		}
		tokens[id].State = models.TokenSelected
	}

	h.RespondWithSuccess(c, http.StatusOK, "Marked words checked", verify.ScoreTokens(tokens))
}

func (h *VerifyHandler) VerifySort(c *gin.Context) {
	var req VerifySortRequest
	if !h.bind(c, &req) {
		return
	}

	canonical := verify.BuildSortItems(req.Sentences)
	if err := checkPermutation(req.Arrangement, len(canonical)); err != nil {
		h.RespondWithServiceError(c, services.NewValidationError("arrangement", err.Error(), req.Arrangement))
		return
	}

	items := make([]models.SortItem, len(canonical))
	for i, idx := range req.Arrangement {
		items[i] = canonical[idx]
	}

	h.RespondWithSuccess(c, http.StatusOK, "Order checked", verify.CheckOrder(items))
}

func (h *VerifyHandler) VerifySpell(c *gin.Context) {
	var req VerifySpellRequest
	if !h.bind(c, &req) {
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Spelling checked", verify.CompareSpelling(req.Reference, req.Input))
}

func checkPermutation(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("expected %d indices, got %d", n, len(order))
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return fmt.Errorf("not a permutation of 0..%d", n-1)
		}
		seen[idx] = true
	}
	return nil
}
