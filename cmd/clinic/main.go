// Command clinic runs the KSM Dental Care website backend.
package main

import (
	"context"
	"os"
	_ "time/tzdata" // CLINIC_TIMEZONE must resolve in minimal containers

	"github.com/ksmdental/clinic/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
