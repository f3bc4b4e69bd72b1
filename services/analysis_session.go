package services

import (
	"context"
	"errors"

	"backend/models"
	"backend/utils"
)

// Event names of the analysis streaming protocol.
const (
	EventAnalyzeImage     = "analyze-image"
	EventAnalysisStart    = "analysis-start"
	EventAnalysisProgress = "analysis-progress"
	EventAnalysisComplete = "analysis-complete"
	EventAnalysisError    = "analysis-error"
	EventHeartbeat        = "heartbeat"
)

// Session stages. A session is created per analyze request and discarded
// after its terminal event.
type SessionStage int

const (
	StageIdle SessionStage = iota
	StageStarted
	StageCompleted
	StageFailed
)

type AnalysisRequest struct {
	ImageURL string `json:"imageUrl"`
	ImageID  string `json:"imageId"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

type StartPayload struct {
	ImageID string `json:"imageId"`
	Message string `json:"message"`
}

type ProgressPayload struct {
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

type ErrorPayload struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// FoodAnalyzer is the gateway dependency of a session.
type FoodAnalyzer interface {
	AnalyzeFood(ctx context.Context, imageURL string) (*models.NutritionAnalysis, map[string]any, error)
}

// ResultSaver persists the normalized record.
type ResultSaver interface {
	Create(ctx context.Context, userUUID string, data *models.NutritionData) (*models.NutritionData, error)
}

// EventEmitter delivers protocol events to the client connection.
type EventEmitter interface {
	Emit(event string, payload any) error
}

// AnalysisSession drives one analyze-image request: gateway call, response
// normalization, best-effort persistence, and the ordered event stream
// start → progress* → complete|error. Each progress event corresponds to a
// real pipeline stage: request accepted (10), model response received (60),
// saving (90).
type AnalysisSession struct {
	user     models.UserPayload
	analyzer FoodAnalyzer
	store    ResultSaver
	emitter  EventEmitter

	stage SessionStage
}

func NewAnalysisSession(user models.UserPayload, analyzer FoodAnalyzer, store ResultSaver, emitter EventEmitter) *AnalysisSession {
	return &AnalysisSession{
		user:     user,
		analyzer: analyzer,
		store:    store,
		emitter:  emitter,
		stage:    StageIdle,
	}
}

func (s *AnalysisSession) Stage() SessionStage {
	return s.stage
}

// Run executes the session to its terminal event. It never returns an error:
// every failure mode ends in exactly one analysis-error or analysis-complete
// event on the connection.
func (s *AnalysisSession) Run(ctx context.Context, req AnalysisRequest) {
	if s.user.UUID == "" {
		s.fail(ErrorPayload{Message: "Unauthorized"})
		return
	}

	utils.Logger.Infow("image analysis requested",
		"userId", s.user.UUID, "imageId", req.ImageID)

	s.stage = StageStarted
	s.emit(EventAnalysisStart, StartPayload{
		ImageID: req.ImageID,
		Message: "Analysis has started",
	})
	s.emit(EventAnalysisProgress, ProgressPayload{
		Progress: 10,
		Message:  "Starting image analysis...",
	})

	analysis, parsed, err := s.analyzer.AnalyzeFood(ctx, req.ImageURL)
	if err != nil {
		payload := ErrorPayload{Message: "Error analyzing image"}
		var gerr *GatewayError
		if errors.As(err, &gerr) {
			payload.Message = gerr.Message
			payload.Details = gerr.Details
		}
		utils.Logger.Errorw("analysis failed", "imageId", req.ImageID, "error", err)
		s.fail(payload)
		return
	}

	s.emit(EventAnalysisProgress, ProgressPayload{
		Progress: 60,
		Message:  "Model response received, extracting nutrition data...",
	})

	result, degraded := NormalizeNutrition(analysis, parsed)
	if degraded {
		utils.Logger.Warnw("nutrition data degraded to placeholder",
			"userId", s.user.UUID, "imageId", req.ImageID)
	}

	s.emit(EventAnalysisProgress, ProgressPayload{
		Progress: 90,
		Message:  "Finalizing results...",
	})

	// Persistence is best effort: the analysis result is the valuable
	// artifact, so a storage failure must not fail the session.
	record := &models.NutritionData{
		ImageURL:        req.ImageURL,
		ImageID:         req.ImageID,
		FileName:        req.FileName,
		FileType:        req.FileType,
		FileSize:        req.FileSize,
		FoodName:        result.FoodName,
		Calories:        result.Calories,
		Carbs:           result.Carbs,
		Protein:         result.Protein,
		Fat:             result.Fat,
		Sugar:           result.Sugar,
		Fiber:           result.Fiber,
		AdditionalInfo:  result.AdditionalInfo,
		RawAnalysisData: result.RawData,
	}
	saved, err := s.store.Create(ctx, s.user.UUID, record)
	if err != nil {
		utils.Logger.Errorw("failed to save nutrition data",
			"userId", s.user.UUID, "imageId", req.ImageID, "error", err)
	} else {
		result.ID = saved.ID.Hex()
	}

	s.stage = StageCompleted
	s.emit(EventAnalysisComplete, result)
	utils.Logger.Infow("analysis completed", "userId", s.user.UUID, "imageId", req.ImageID)
}

func (s *AnalysisSession) fail(payload ErrorPayload) {
	s.stage = StageFailed
	s.emit(EventAnalysisError, payload)
}

func (s *AnalysisSession) emit(event string, payload any) {
	if err := s.emitter.Emit(event, payload); err != nil {
		// Connection gone; the session is abandoned, nothing to roll back.
		utils.Logger.Debugw("failed to emit event", "event", event, "error", err)
	}
}
