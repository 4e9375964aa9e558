package cmd

import (
	"deskflow/api/server"
	"deskflow/internal/config"
	"deskflow/pkg/log"

	"github.com/spf13/cobra"
)

type apiOptions struct {
	ConfigFile string
}

func apiCmd() *cobra.Command {
	var opts apiOptions
	cmd := &cobra.Command{
		Use:          "api",
		SilenceUsage: true,
		Short:        "api starts the account/auth api server",
		Long:         `api starts the HTTP api server serving client endpoints under /api and the admin panel endpoints under /manage.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runApi(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.ConfigFile, "config", "c", "deskflow.yaml", "config file path")
	fs.StringP("listen", "l", "", "server listen address")
	fs.String("log-level", "", "log level (silent, info, error, warning, verbose)")
	fs.String("database-driver", "", "database driver (sqlite, mysql)")
	fs.String("database-dsn", "", "database dsn")
	fs.String("token-secret", "", "symmetric secret signing session tokens")
	fs.StringP("static-dir", "s", "", "serve this directory under /static")
	fs.StringP("download-dir", "d", "", "serve this directory under /download")
	fs.String("id-server", "", "advertised id server address")
	fs.String("relay-server", "", "advertised relay server address")
	fs.String("api-server", "", "advertised api server address")
	fs.String("public-key-file", "", "advertised public key file")

	return cmd
}

func runApi(cmd *cobra.Command, opts apiOptions) error {
	if err := config.NewConfigManager().LoadConf(cmd, opts.ConfigFile); err != nil {
		return err
	}

	log.Loglevel = log.SetLogLevel(config.Conf.LogLevel)

	s, err := server.New(config.Conf)
	if err != nil {
		return err
	}
	return s.Run()
}
