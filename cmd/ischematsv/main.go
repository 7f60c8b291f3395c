package main

import (
	"context"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/koustreak/ischematsv/internal/catalog"
	"github.com/koustreak/ischematsv/internal/database"
	"github.com/koustreak/ischematsv/internal/database/mysql"
	"github.com/koustreak/ischematsv/internal/logger"
	"github.com/koustreak/ischematsv/internal/report"
)

var (
	dbUser     string
	dbPassword string
	dbHost     string
	dbPort     int
	configFile string
	outputFile string
	logLevel   string
	logFormat  string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ischematsv <database>",
		Short: "Dump a MySQL schema's columns as tab-separated values",
		Long: `ischematsv connects to a MySQL server, reads the information_schema
catalog of the named database, and prints one tab-separated line per
column of every base table: name, type, size, nullability, default,
and primary/foreign key participation.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	cmd.Flags().StringVarP(&dbUser, "user", "u", "", "user login name (default: current user)")
	cmd.Flags().StringVarP(&dbPassword, "password", "p", "", "user password (default: empty)")
	cmd.Flags().StringVarP(&dbHost, "host", "H", "localhost", "hostname")
	cmd.Flags().IntVarP(&dbPort, "port", "P", 3306, "port number")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file with connection settings")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "log format: console or json")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	// Arguments are valid past this point; runtime failures should not
	// reprint usage.
	cmd.SilenceUsage = true

	log := logger.New(&logger.Config{Level: logLevel, Format: logFormat, Output: os.Stderr})

	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.QueryTimeout)
		defer cancel()
	}

	db, err := mysql.New(ctx, cfg)
	if err != nil {
		log.ErrorWith("connection failed", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return err
	}
	defer db.Close()

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	reporter := report.New(catalog.New(db), log)
	return reporter.Run(ctx, out, cfg.Database)
}

// buildConfig layers the connection settings: defaults, then the config
// file, then any flag the user set explicitly.
func buildConfig(cmd *cobra.Command, schemaName string) (*database.Config, error) {
	cfg := database.DefaultConfig()

	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("user") || cfg.User == "" {
		cfg.User = dbUser
	}
	if cmd.Flags().Changed("password") {
		cfg.Password = dbPassword
	}
	if cmd.Flags().Changed("host") || cfg.Host == "" {
		cfg.Host = dbHost
	}
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = dbPort
	}
	if cfg.User == "" {
		cfg.User = currentUser()
	}
	cfg.Database = schemaName

	return cfg, nil
}

// currentUser returns the OS login name, matching the behavior of
// connecting with no -u flag.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
