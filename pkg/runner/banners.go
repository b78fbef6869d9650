package runner

import (
	"github.com/projectdiscovery/gologger"
)

const banner = `
                        ____             __
  ____  ____  ____  ___/ __/__  ___  ____/ /
 /_  / / __ \/ __ \/ _ \ /_/ _ \/ _ \/ __  /
  / /_/ /_/ / / / /  __/ __/  __/  __/ /_/ /
 /___/\____/_/ /_/\___/_/  \___/\___/\__,_/
`

// version is the current version of zonefeed
const version = `v1.0.0`

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
}
