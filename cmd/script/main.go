package main

import (
	"log"

	"finhealth/api"
	"finhealth/cmd"
	"finhealth/internal"
	"finhealth/internal/domain"
	"finhealth/pkg/txcsv"

	"github.com/spf13/cobra"
)

var (
	csvFile    string
	scenarioID string
	horizon    int
	presetIDs  []string
)

func load() (*api.ApiHandler, []domain.Transaction, []domain.MonthlySummary, error) {
	handler, err := cmd.InitializeDependencies()
	if err != nil {
		return nil, nil, nil, err
	}
	transactions, err := txcsv.LoadFile(csvFile)
	if err != nil {
		return nil, nil, nil, err
	}
	return handler, transactions, internal.AggregateMonthly(transactions), nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "finhealth",
		Short: "Run financial health analyses over a CSV of transactions",
	}
	rootCmd.PersistentFlags().StringVarP(&csvFile, "file", "f", "", "path to transaction CSV")
	if err := rootCmd.MarkPersistentFlagRequired("file"); err != nil {
		log.Fatal(err)
	}

	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the five-dimension health score",
		RunE: func(c *cobra.Command, args []string) error {
			handler, _, months, err := load()
			if err != nil {
				return err
			}
			internal.Pprint(handler.ScoreService.Calculate(months))
			return nil
		},
	}

	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a stress test scenario",
		RunE: func(c *cobra.Command, args []string) error {
			handler, _, months, err := load()
			if err != nil {
				return err
			}
			result, err := handler.StressTestHandler.Run(internal.RunStressTestInput{
				ScenarioID:     scenarioID,
				History:        months,
				BaselineScores: handler.ScoreService.Calculate(months),
			})
			if err != nil {
				return err
			}
			internal.Pprint(result)
			return nil
		},
	}
	stressCmd.Flags().StringVar(&scenarioID, "scenario", "emergency_expense", "stress scenario id")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project the history forward under preset modifiers",
		RunE: func(c *cobra.Command, args []string) error {
			handler, transactions, months, err := load()
			if err != nil {
				return err
			}
			input := internal.SimulateInput{
				History:       months,
				Transactions:  transactions,
				HorizonMonths: horizon,
			}
			for _, id := range presetIDs {
				preset, err := handler.TimeMachineHandler.FindPreset(id)
				if err != nil {
					return err
				}
				input.Modifiers = append(input.Modifiers, preset.Modifier)
			}
			result, err := handler.TimeMachineHandler.Simulate(input)
			if err != nil {
				return err
			}
			internal.Pprint(result)
			return nil
		},
	}
	simulateCmd.Flags().IntVar(&horizon, "horizon", internal.DefaultHorizonMonths, "months to project forward")
	simulateCmd.Flags().StringSliceVar(&presetIDs, "preset", nil, "time machine preset ids to apply")

	anomaliesCmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Scan the history for anomalies",
		RunE: func(c *cobra.Command, args []string) error {
			handler, transactions, months, err := load()
			if err != nil {
				return err
			}
			internal.Pprint(handler.AnomalyDetector.Detect(months, transactions))
			return nil
		},
	}

	rootCmd.AddCommand(scoreCmd, stressCmd, simulateCmd, anomaliesCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
