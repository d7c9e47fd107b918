package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	engine "github.com/jason-s-yu/pdwager/engine"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Sample trials and print their phase schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			count, _ := cmd.Flags().GetInt("count")
			if count < 0 {
				return fmt.Errorf("count %d must be >= 0", count)
			}
			task, err := engine.NewTask(cfg.Rules, engine.NewRNG(cfg.Seed))
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			for i := 1; i <= count; i++ {
				tr, err := task.NewTrial(engine.TrialOverrides{})
				if err != nil {
					return err
				}
				if jsonOut {
					if err := enc.Encode(scheduleLine{
						Trial:       i,
						Wager:       tr.Wager,
						GroundTruth: tr.GroundTruth,
						Coherence:   tr.Coherence,
						Length:      task.Schedule.Length,
						Schedule:    task.Schedule.String(),
					}); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(out, "%4d  %s  len=%d  %s\n", i, tr, task.Schedule.Length, task.Schedule)
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 10, "number of trials to sample")
	return cmd
}

type scheduleLine struct {
	Trial       int     `json:"trial"`
	Wager       bool    `json:"wager"`
	GroundTruth int     `json:"ground_truth"`
	Coherence   float64 `json:"coherence"`
	Length      int     `json:"length"`
	Schedule    string  `json:"schedule"`
}
