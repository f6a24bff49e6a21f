package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finhealth/internal"
	"finhealth/internal/calculator"
	"finhealth/internal/domain"
	"finhealth/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func contextWithLogger(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, logger.ContextKey, log)
}

type ApiHandler struct {
	ScoreService       calculator.ScoreService
	StressTestHandler  internal.StressTestHandler
	TimeMachineHandler internal.TimeMachineHandler
	AnomalyDetector    internal.AnomalyDetector
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddlware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to finhealth"})
	})
	router.POST("/score", m.score)
	router.GET("/stressScenarios", m.getStressScenarios)
	router.POST("/stressTest", m.stressTest)
	router.GET("/timeMachinePresets", m.getTimeMachinePresets)
	router.POST("/timeMachine", m.timeMachine)
	router.POST("/anomalies", m.anomalies)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	var validationErr domain.ValidationError
	var notFoundErr domain.NotFoundError
	code := 500
	if errors.As(err, &validationErr) {
		code = 400
	} else if errors.As(err, &notFoundErr) {
		code = 404
	}
	returnErrorJsonCode(err, c, code)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Warnf("request failed: %v", err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddlware(ctx *gin.Context) {
	log := logger.New().With(
		"requestID", uuid.New().String(),
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	ctx.Request = ctx.Request.WithContext(
		contextWithLogger(ctx.Request.Context(), log),
	)

	start := time.Now().UTC()
	ctx.Next()
	log.Infow("handled request",
		"status", ctx.Writer.Status(),
		"elapsedMs", time.Since(start).Milliseconds(),
	)
}
