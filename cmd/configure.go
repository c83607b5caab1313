package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inovacc/grabr/internal/model"
	"github.com/inovacc/grabr/internal/prompt"
	"github.com/inovacc/grabr/internal/store"
)

var (
	showConfig  bool
	resetConfig bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure grabr settings",
	Long:  `Interactively configure settings such as the default clone directory, the preferred transport, and bootstrap behavior.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.GetDB()
		if err != nil {
			return err
		}

		cfg, err := db.GetConfig()
		if err != nil {
			return err
		}

		if showConfig {
			printConfig(cfg)

			return nil
		}

		if resetConfig {
			def := model.DefaultConfig()
			if err := db.SaveConfig(&def); err != nil {
				return err
			}

			fmt.Println("Configuration reset to defaults.")
			printConfig(&def)

			return nil
		}

		p := prompt.New()

		cloneDir := p.Input("Default clone directory (blank for the current directory)", cfg.DefaultCloneDir)
		if cloneDir != "" {
			expanded, expandErr := expandPath(cloneDir)
			if expandErr != nil {
				return expandErr
			}

			cloneDir = expanded
		}

		cfg.DefaultCloneDir = cloneDir

		transports := []string{model.TransportAuto, model.TransportSSH, model.TransportHTTPS}
		current := 0

		for i, tr := range transports {
			if tr == cfg.PreferredTransport {
				current = i
			}
		}

		cfg.PreferredTransport = transports[p.Select("Preferred transport", transports, current)]

		cfg.AutoBootstrap = p.Confirm("Run environment bootstrap without asking?", cfg.AutoBootstrap)

		timeout := p.Input("Secure-shell probe timeout in seconds", strconv.Itoa(cfg.ProbeTimeoutSeconds))
		if n, convErr := strconv.Atoi(timeout); convErr == nil && n > 0 {
			cfg.ProbeTimeoutSeconds = n
		}

		if err := db.SaveConfig(cfg); err != nil {
			return err
		}

		fmt.Println("\nConfiguration saved.")
		printConfig(cfg)

		return nil
	},
}

func printConfig(cfg *model.Config) {
	cloneDir := cfg.DefaultCloneDir
	if cloneDir == "" {
		cloneDir = "(current directory)"
	}

	printInfoBox("Grabr Configuration", map[string]string{
		"Clone directory": cloneDir,
		"Transport":       cfg.PreferredTransport,
		"Auto bootstrap":  strconv.FormatBool(cfg.AutoBootstrap),
		"Probe timeout":   fmt.Sprintf("%ds", cfg.ProbeTimeoutSeconds),
	}, []string{"Clone directory", "Transport", "Auto bootstrap", "Probe timeout"})
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().BoolVarP(&showConfig, "show", "s", false, "Show current configuration")
	configureCmd.Flags().BoolVarP(&resetConfig, "reset", "r", false, "Reset configuration to defaults")
}
