package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

const name = "hwbot"

// Set at build time through -ldflags "-X".
var (
	Version   string
	Commit    string
	Branch    string
	BuildTime string
	BuiltBy   string
)

func PrintVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("Version: %s\n"+
		"Commit: %s\n"+
		"Branch: %s\n"+
		"Build Time: %s\n",
		orDev(Version),
		Commit,
		Branch,
		BuildTime,
	)
}

// UserAgent identifies the bot to the homework api.
func UserAgent() string {
	return fmt.Sprintf("%s/%s", name, orDev(Version))
}

func orDev(v string) string {
	if v == "" {
		return "dev"
	}
	return v
}
