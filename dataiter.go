package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kirku1g/dataiter/cmd"
	"github.com/kirku1g/dataiter/pkg/env"

	"github.com/getsentry/sentry-go"
)

func main() {
	err := sentry.Init(sentry.ClientOptions{
		Release:     "dataiter@" + cmd.Version,
		Environment: env.Env,
		SampleRate:  0.1,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sentry.Init: %v", err)
	}
	// Flush buffered events before the program terminates.
	// Set the timeout to the maximum duration the program can afford to wait.
	defer sentry.Flush(2 * time.Second)

	cmd.Execute()
}
