package main

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/logfwd/logfwd/appender"
	"github.com/logfwd/logfwd/internal"
)

var WriteCmd = &cobra.Command{
	Use:     "write [messages]",
	Aliases: []string{"w"},
	Short:   "Forward messages to the remote server",
	Long:    ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		internal.Debugf(tmpConfig.Verbose, "%+v", tmpConfig)
		return doWrite(tmpConfig, args)
	},
}

func doWrite(conf *appender.Config, args []string) error {
	var sunk error
	sink := appender.ErrorSinkFunc(func(err error) {
		if sunk == nil {
			sunk = err
		}
		internal.Logf("%+v", err)
	})

	app := appender.New(conf).WithErrorSink(sink)
	if err := app.Activate(); err != nil {
		return err
	}
	defer app.Close()

	if len(args) > 0 {
		app.AppendBatch(args)
	}

	// also forward lines from stdin when it is not a terminal
	stat, err := os.Stdin.Stat()
	if err != nil {
		return errors.Wrap(err, "checking stdin failed")
	}
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Split(bufio.ScanLines)
		for scanner.Scan() {
			if len(scanner.Bytes()) == 0 {
				continue
			}
			app.Append(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return errors.Wrap(err, "reading input failed")
		}
	}

	return sunk
}
