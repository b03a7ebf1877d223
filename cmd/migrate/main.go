package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/aurexia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/aurexia-api/pkg/config"
	"github.com/jhoicas/aurexia-api/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones del esquema de Aurexia ERP",
	Long: `Aplica o revierte las migraciones SQL embebidas en el binario.

La conexión se toma de las mismas variables DB_* que usa la API.`,
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas las migraciones pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(m *postgres.Migrator) error { return m.Up() })
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revierte todas las migraciones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(m *postgres.Migrator) error { return m.Down() })
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps N",
	Short: "Aplica N migraciones (negativo revierte)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n == 0 {
			return fmt.Errorf("steps: N debe ser un entero distinto de cero, recibido %q", args[0])
		}
		return withMigrator(func(m *postgres.Migrator) error { return m.Steps(n) })
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Fija la versión sin ejecutar SQL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("force: versión inválida %q", args[0])
		}
		return withMigrator(func(m *postgres.Migrator) error { return m.Force(v) })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión actual del esquema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(m *postgres.Migrator) error {
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, stepsCmd, forceCmd, versionCmd)
}

func withMigrator(fn func(*postgres.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "migrate"})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("cerrar migrador")
		}
	}()
	return fn(m)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
