package cmd

import (
	"finhealth/api"
	"finhealth/internal"
	"finhealth/internal/calculator"
)

func InitializeDependencies() (*api.ApiHandler, error) {
	scoreService := calculator.NewScoreService()

	return &api.ApiHandler{
		ScoreService: scoreService,
		StressTestHandler: internal.StressTestHandler{
			ScoreService: scoreService,
		},
		TimeMachineHandler: internal.TimeMachineHandler{
			ScoreService: scoreService,
		},
		AnomalyDetector: internal.AnomalyDetector{},
	}, nil
}
