package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/pkg/browser"
	"github.com/sarchlab/irqhal/monitoring"
	"github.com/sarchlab/irqhal/platform"
	"github.com/spf13/cobra"
)

var (
	port        int
	openBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the controllers of the machine over HTTP.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, sync := newLogger()
		defer sync()

		if !cmd.Flags().Changed("port") {
			if p, err := strconv.Atoi(os.Getenv(envPort)); err == nil {
				port = p
			}
		}

		m := monitoring.NewMonitor().WithPortNumber(port)

		r, err := bringUp(logger, platform.WithHook(m))
		if err != nil {
			return err
		}

		m.RegisterRegistry(r)

		addr, err := m.StartServer()
		if err != nil {
			return err
		}
		defer m.Close()

		if openBrowser {
			url := "http://" + addr + "/api/controllers"
			if err := browser.OpenURL(url); err != nil {
				logger.Error(err, "cannot open browser", "url", url)
			}
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop

		fmt.Fprintln(cmd.ErrOrStderr(), "shutting down")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&port, "port", 0,
		"port to listen on, 0 picks one (default $"+envPort+")")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false,
		"open the controller list in a browser")
}
