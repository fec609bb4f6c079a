package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/services"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ContentDecoder interface {
	Decode(kind models.WidgetType, raw string) content.Result
	DecodeWithSentences(kind models.WidgetType, raw, sentences string) content.Result
}

type SessionManager interface {
	Create(ctx context.Context, req *services.CreateSessionRequest) (*services.SessionView, error)
	Get(ctx context.Context, id string) (*services.SessionView, error)
	Apply(ctx context.Context, id string, action *services.ActionRequest) (*services.ActionResult, error)
	Reset(ctx context.Context, id string, raw string) (*services.SessionView, error)
	Complete(ctx context.Context, id string) (*models.CompletionResponse, error)
	Close(ctx context.Context, id string) error
}

type AnswerEvaluator interface {
	Evaluate(ctx context.Context, req models.EvaluationRequest) (models.EvaluationResult, error)
	IsSkippable(ctx context.Context, key repositories.HistoryKey) (bool, error)
}

type SpeechSource interface {
	Generate(ctx context.Context, text string) (*models.SpeechAudio, error)
}

type ContentImporter interface {
	ImportFromFile(ctx context.Context, reader io.Reader, filename string) (*models.ImportSummary, error)
	ExportTemplate() ([]byte, error)
}

// Dependencies are the services the HTTP layer fronts.
type Dependencies struct {
	Loader         ContentDecoder
	Sessions       SessionManager
	Evaluator      AnswerEvaluator
	Speech         SpeechSource
	Importer       ContentImporter
	Identity       IdentityParser
	Validator      Validator
	Logger         utils.Logger
	MaxUploadBytes int64
}

// Validator is the struct validation used for request bodies.
type Validator interface {
	Validate(s interface{}) error
}

type HandlerManager struct {
	widgetHandler     *WidgetHandler
	sessionHandler    *SessionHandler
	verifyHandler     *VerifyHandler
	evaluationHandler *EvaluationHandler
	speechHandler     *SpeechHandler
	importHandler     *ImportHandler
	identity          IdentityParser
}

func NewHandlerManager(deps Dependencies) *HandlerManager {
	return &HandlerManager{
		widgetHandler:     NewWidgetHandler(deps.Loader, deps.Logger),
		sessionHandler:    NewSessionHandler(deps.Sessions, deps.Logger),
		verifyHandler:     NewVerifyHandler(deps.Loader, deps.Validator, deps.Logger),
		evaluationHandler: NewEvaluationHandler(deps.Evaluator, deps.Logger),
		speechHandler:     NewSpeechHandler(deps.Speech, deps.Logger),
		importHandler:     NewImportHandler(deps.Importer, deps.MaxUploadBytes, deps.Logger),
		identity:          deps.Identity,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1", RequestContext())

	// Content decoding, stateless checks and the import tooling need no learner identity.
	v1.GET("/widgets/:type/content", hm.widgetHandler.GetContent)
	v1.GET("/widgets/:type/sample", hm.widgetHandler.GetSample)

	verify := v1.Group("/verify")
	{
		verify.POST("/drag", hm.verifyHandler.VerifyDrag)
		verify.POST("/mark", hm.verifyHandler.VerifyMark)
		verify.POST("/sort", hm.verifyHandler.VerifySort)
		verify.POST("/spell", hm.verifyHandler.VerifySpell)
	}

	contents := v1.Group("/contents")
	{
		contents.POST("/import", hm.importHandler.Import)
		contents.GET("/template", hm.importHandler.Template)
	}

	secured := v1.Group("", AuthMiddleware(hm.identity))

	sessions := secured.Group("/sessions")
	{
		sessions.POST("", hm.sessionHandler.CreateSession)
		sessions.GET("/:id", hm.sessionHandler.GetSession)
		sessions.POST("/:id/actions", hm.sessionHandler.ApplyAction)
		sessions.POST("/:id/reset", hm.sessionHandler.ResetSession)
		sessions.POST("/:id/complete", hm.sessionHandler.CompleteSession)
		sessions.DELETE("/:id", hm.sessionHandler.CloseSession)
	}

	evaluations := secured.Group("/evaluations")
	{
		evaluations.POST("", hm.evaluationHandler.Evaluate)
		evaluations.GET("/skippable", hm.evaluationHandler.IsSkippable)
	}

	secured.POST("/speech", hm.speechHandler.Generate)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "widget-service",
	})
}
