package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"treasury/internal/governance"
	"treasury/internal/infra"
	"treasury/internal/snapshot"
)

func snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect persisted governance state",
	}
	cmd.AddCommand(snapshotShowCommand(), snapshotVerifyCommand())
	return cmd
}

func snapshotShowCommand() *cobra.Command {
	var file, format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored snapshot as json or yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd.Context(), file)
			if err != nil {
				return err
			}
			return renderState(cmd.OutOrStdout(), state, format)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read a snapshot file instead of the configured store")
	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "output format: json or yaml")
	return cmd
}

func snapshotVerifyCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Validate the stored snapshot and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd.Context(), file)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), state)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read a snapshot file instead of the configured store")
	return cmd
}

func loadState(ctx context.Context, file string) (*governance.State, error) {
	var data []byte
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		data = raw
	} else {
		cfg, err := infra.LoadConfig()
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		store, closeStore, err := snapshot.Open(ctx, cfg, zerolog.Nop())
		if err != nil {
			return nil, err
		}
		defer closeStore()
		if data, err = store.Load(ctx); err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
	}
	return governance.DecodeSnapshot(data)
}

func renderState(w io.Writer, state *governance.State, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeSummary(w io.Writer, state *governance.State) error {
	counts := make(map[string]int)
	for _, p := range state.Proposals {
		counts[string(p.Status)]++
	}
	summary := struct {
		Donors          int            `yaml:"donors"`
		Proposals       int            `yaml:"proposals"`
		ByStatus        map[string]int `yaml:"by_status"`
		CharityProjects int            `yaml:"charity_projects"`
		TreasuryTotal   uint64         `yaml:"treasury_total"`
		Settings        any            `yaml:"governance_settings"`
	}{
		Donors:          len(state.Donors),
		Proposals:       len(state.Proposals),
		ByStatus:        counts,
		CharityProjects: len(state.CharityProjects),
		TreasuryTotal:   state.TreasuryTotal,
		Settings:        state.Settings,
	}
	return yaml.NewEncoder(w).Encode(summary)
}
