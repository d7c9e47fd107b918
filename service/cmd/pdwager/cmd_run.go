package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	engine "github.com/jason-s-yu/pdwager/engine"
	"github.com/jason-s-yu/pdwager/engine/agent"
	"github.com/jason-s-yu/pdwager/service/internal/session"
)

// agentNames lists the policies the run command accepts.
var agentNames = []string{"accumulator", "random", "fixate"}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive trials with a scripted agent and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("agent")
			threshold, _ := cmd.Flags().GetFloat64("sure-threshold")
			policy, err := newPolicy(name, threshold, cfg.Seed)
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg)
			s, err := session.New(cfg.Rules, engine.NewRNG(cfg.Seed), logger)
			if err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"session": s.ID.String(),
				"agent":   name,
				"trials":  cfg.Trials,
				"seed":    cfg.Seed,
			}).Info("run start")

			stats, err := s.Run(cmd.Context(), policy, cfg.Trials)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			return printSummary(cmd.OutOrStdout(), newSummary(name, stats), jsonOut)
		},
	}

	cmd.Flags().Int("trials", 0, "number of trials to run (overrides config)")
	cmd.Flags().Bool("abort", false, "end the trial when fixation is broken (overrides config)")
	cmd.Flags().String("agent", "accumulator", "policy: "+strings.Join(agentNames, ", "))
	cmd.Flags().Float64("sure-threshold", agent.DefaultSureThreshold, "accumulator takes the sure option below this mean evidence")
	return cmd
}

// newPolicy builds a policy by name. The random policy draws from its own
// generator so the task's stream does not depend on the agent.
func newPolicy(name string, threshold float64, seed uint64) (agent.Policy, error) {
	switch name {
	case "accumulator":
		return agent.NewAccumulator(threshold), nil
	case "random":
		return agent.Random{Rand: engine.NewRNG(seed + 1)}, nil
	case "fixate":
		return agent.Fixed{Action: engine.ActionFixate}, nil
	}
	return nil, fmt.Errorf("unknown agent %q (want one of %s)", name, strings.Join(agentNames, ", "))
}

// summary is the printable form of session stats.
type summary struct {
	Agent       string         `json:"agent"`
	Trials      int            `json:"trials"`
	Steps       int            `json:"steps"`
	Breaks      int            `json:"fixation_breaks"`
	Outcomes    map[string]int `json:"outcomes"`
	TotalReward float64        `json:"total_reward"`
	MeanReward  float64        `json:"mean_reward"`
	Accuracy    float64        `json:"accuracy"`
}

func newSummary(name string, st session.Stats) summary {
	out := summary{
		Agent:       name,
		Trials:      st.Trials,
		Steps:       st.Steps,
		Breaks:      st.Breaks,
		Outcomes:    make(map[string]int),
		TotalReward: st.TotalReward,
		MeanReward:  st.MeanReward(),
		Accuracy:    st.Accuracy(),
	}
	for o := engine.Outcome(0); o < engine.NumOutcomes; o++ {
		if o != engine.OutcomeNone {
			out.Outcomes[o.String()] = st.Outcomes[o]
		}
	}
	return out
}

func printSummary(w io.Writer, s summary, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	fmt.Fprintf(w, "agent:        %s\n", s.Agent)
	fmt.Fprintf(w, "trials:       %d (%d ticks, %d fixation breaks)\n", s.Trials, s.Steps, s.Breaks)
	for o := engine.Outcome(1); o < engine.NumOutcomes; o++ {
		fmt.Fprintf(w, "  %-17s %d\n", o.String()+":", s.Outcomes[o.String()])
	}
	fmt.Fprintf(w, "total reward: %.2f\n", s.TotalReward)
	fmt.Fprintf(w, "mean reward:  %.3f\n", s.MeanReward)
	_, err := fmt.Fprintf(w, "accuracy:     %.3f\n", s.Accuracy)
	return err
}
